package services

import (
	"testing"

	"dompet/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		user, err := svc.CreateUser("Budi@Example.com", "secret123", "Budi")
		testutil.AssertNoError(t, err)
		if user.Email != "budi@example.com" {
			t.Errorf("expected lowercased email, got %q", user.Email)
		}
		if user.Password == "secret123" {
			t.Error("expected password to be hashed")
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("dup@example.com", "secret123", "First")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateUser("DUP@example.com", "secret123", "Second")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db)

		_, err := svc.CreateUser("", "secret123", "Name")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateUser("a@b.com", "", "Name")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.CreateUser("a@b.com", "secret123", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	created, err := svc.CreateUser("siti@example.com", "secret123", "Siti")
	testutil.AssertNoError(t, err)

	byEmail, err := svc.GetUserByEmail("SITI@example.com")
	testutil.AssertNoError(t, err)
	if byEmail.ID != created.ID {
		t.Errorf("expected user %s, got %s", created.ID, byEmail.ID)
	}

	byID, err := svc.GetUserByID(created.ID)
	testutil.AssertNoError(t, err)
	if byID.Email != "siti@example.com" {
		t.Errorf("expected email siti@example.com, got %s", byID.Email)
	}

	_, err = svc.GetUserByEmail("missing@example.com")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	_, err = svc.GetUserByID("no-such-id")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("verify@example.com", "correct-horse", "Verifier")
	testutil.AssertNoError(t, err)

	if !svc.VerifyPassword(user, "correct-horse") {
		t.Error("expected correct password to verify")
	}
	if svc.VerifyPassword(user, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db)

	user, err := svc.CreateUser("token@example.com", "secret123", "Tokener")
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "hash-one"))
	hash, err := svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "hash-one" {
		t.Errorf("expected hash-one, got %q", hash)
	}

	// Storing again rotates the previous hash out.
	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "hash-two"))
	hash, err = svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "hash-two" {
		t.Errorf("expected hash-two, got %q", hash)
	}

	testutil.AssertAppError(t, svc.StoreRefreshTokenHash("no-such-id", "h"), "USER_NOT_FOUND")
}
