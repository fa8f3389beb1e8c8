package services

import (
	"testing"

	"dompet/internal/models"
	"dompet/internal/testutil"
)

func TestUserTransactionIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserLinkService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.PushTransaction(user.ID, "tx-1"))
	testutil.AssertNoError(t, svc.PushTransaction(user.ID, "tx-2"))

	var count int64
	db.Model(&models.UserTransaction{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 index rows, got %d", count)
	}

	testutil.AssertNoError(t, svc.PullTransaction(user.ID, "tx-1"))
	db.Model(&models.UserTransaction{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 index row after pull, got %d", count)
	}

	// Pulling an id that was never pushed is not an error.
	testutil.AssertNoError(t, svc.PullTransaction(user.ID, "never-pushed"))
}

func TestUserWalletIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserLinkService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.PushWallet(user.ID, "w-1"))
	testutil.AssertNoError(t, svc.PushWallet(other.ID, "w-2"))

	testutil.AssertNoError(t, svc.PullWallet(user.ID, "w-1"))

	var mine, theirs int64
	db.Model(&models.UserWallet{}).Where("user_id = ?", user.ID).Count(&mine)
	db.Model(&models.UserWallet{}).Where("user_id = ?", other.ID).Count(&theirs)
	if mine != 0 {
		t.Errorf("expected user's index empty, got %d", mine)
	}
	if theirs != 1 {
		t.Errorf("expected other user's index untouched, got %d", theirs)
	}
}
