package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
	"dompet/internal/services"
)

// --- mock wallet service ---

type mockWalletService struct {
	createWalletFn    func(userID, name string, initialBalance int64) (*models.Wallet, error)
	getUserWalletsFn  func(userID string) ([]models.Wallet, error)
	getWalletByIDFn   func(userID, walletID string) (*models.Wallet, error)
	deleteWalletFn    func(userID, walletID string) (*models.Wallet, error)
	getBalanceFn      func(walletID string) (int64, error)
	increaseBalanceFn func(walletID string, amount int64) error
	decreaseBalanceFn func(walletID string, amount int64) error
	pushTransactionFn func(walletID *string, transactionID string, signedDelta int64) error
	pullTransactionFn func(walletID *string, transactionID string, signedDelta int64) error
}

func (m *mockWalletService) CreateWallet(userID, name string, initialBalance int64) (*models.Wallet, error) {
	if m.createWalletFn != nil {
		return m.createWalletFn(userID, name, initialBalance)
	}
	return &models.Wallet{}, nil
}

func (m *mockWalletService) GetUserWallets(userID string) ([]models.Wallet, error) {
	if m.getUserWalletsFn != nil {
		return m.getUserWalletsFn(userID)
	}
	return []models.Wallet{}, nil
}

func (m *mockWalletService) GetWalletByID(userID, walletID string) (*models.Wallet, error) {
	if m.getWalletByIDFn != nil {
		return m.getWalletByIDFn(userID, walletID)
	}
	return &models.Wallet{}, nil
}

func (m *mockWalletService) DeleteWallet(userID, walletID string) (*models.Wallet, error) {
	if m.deleteWalletFn != nil {
		return m.deleteWalletFn(userID, walletID)
	}
	return &models.Wallet{}, nil
}

func (m *mockWalletService) GetBalance(walletID string) (int64, error) {
	if m.getBalanceFn != nil {
		return m.getBalanceFn(walletID)
	}
	return 0, nil
}

func (m *mockWalletService) IncreaseBalance(walletID string, amount int64) error {
	if m.increaseBalanceFn != nil {
		return m.increaseBalanceFn(walletID, amount)
	}
	return nil
}

func (m *mockWalletService) DecreaseBalance(walletID string, amount int64) error {
	if m.decreaseBalanceFn != nil {
		return m.decreaseBalanceFn(walletID, amount)
	}
	return nil
}

func (m *mockWalletService) PushTransaction(walletID *string, transactionID string, signedDelta int64) error {
	if m.pushTransactionFn != nil {
		return m.pushTransactionFn(walletID, transactionID, signedDelta)
	}
	return nil
}

func (m *mockWalletService) PullTransaction(walletID *string, transactionID string, signedDelta int64) error {
	if m.pullTransactionFn != nil {
		return m.pullTransactionFn(walletID, transactionID, signedDelta)
	}
	return nil
}

var _ services.WalletServicer = (*mockWalletService)(nil)

func setupWalletRouter(handler *WalletHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID("user-1"))
	auth.POST("/wallets", handler.CreateWallet)
	auth.GET("/wallets", handler.ListWallets)
	auth.GET("/wallets/:id", handler.GetWallet)
	auth.DELETE("/wallets/:id", handler.DeleteWallet)
	return r
}

// --- tests ---

func TestWalletHandler_CreateWallet(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		walletSvc := &mockWalletService{
			createWalletFn: func(userID, name string, initialBalance int64) (*models.Wallet, error) {
				return &models.Wallet{Base: models.Base{ID: "w-1"}, UserID: userID, Name: name, Balance: initialBalance}, nil
			},
		}
		handler := NewWalletHandler(walletSvc)
		r := setupWalletRouter(handler)

		rec := doRequest(r, "POST", "/wallets", `{"name":"Cash","initial_balance":2500}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		wallet := result["wallet"].(map[string]interface{})
		if wallet["balance"].(float64) != 2500 {
			t.Errorf("expected balance 2500, got %v", wallet["balance"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewWalletHandler(&mockWalletService{})
		r := setupWalletRouter(handler)

		rec := doRequest(r, "POST", "/wallets", `{"initial_balance":100}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on negative balance", func(t *testing.T) {
		handler := NewWalletHandler(&mockWalletService{})
		r := setupWalletRouter(handler)

		rec := doRequest(r, "POST", "/wallets", `{"name":"Debt","initial_balance":-100}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestWalletHandler_ListWallets(t *testing.T) {
	t.Run("returns 200 with wallets", func(t *testing.T) {
		walletSvc := &mockWalletService{
			getUserWalletsFn: func(userID string) ([]models.Wallet, error) {
				return []models.Wallet{
					{Base: models.Base{ID: "w-1"}, UserID: userID, Name: "Cash"},
					{Base: models.Base{ID: "w-2"}, UserID: userID, Name: "Bank"},
				}, nil
			},
		}
		handler := NewWalletHandler(walletSvc)
		r := setupWalletRouter(handler)

		rec := doRequest(r, "GET", "/wallets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		wallets := result["wallets"].([]interface{})
		if len(wallets) != 2 {
			t.Errorf("expected 2 wallets, got %d", len(wallets))
		}
	})

	t.Run("returns empty array when user has no wallets", func(t *testing.T) {
		walletSvc := &mockWalletService{
			getUserWalletsFn: func(string) ([]models.Wallet, error) { return nil, nil },
		}
		handler := NewWalletHandler(walletSvc)
		r := setupWalletRouter(handler)

		rec := doRequest(r, "GET", "/wallets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		wallets, ok := result["wallets"].([]interface{})
		if !ok {
			t.Fatalf("expected wallets array, got %v", result["wallets"])
		}
		if len(wallets) != 0 {
			t.Errorf("expected empty array, got %d items", len(wallets))
		}
	})
}

func TestWalletHandler_GetWallet(t *testing.T) {
	t.Run("returns 404 for missing wallet", func(t *testing.T) {
		walletSvc := &mockWalletService{
			getWalletByIDFn: func(string, string) (*models.Wallet, error) {
				return nil, apperrors.ErrWalletNotFound
			},
		}
		handler := NewWalletHandler(walletSvc)
		r := setupWalletRouter(handler)

		rec := doRequest(r, "GET", "/wallets/no-such-id", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "WALLET_NOT_FOUND")
	})
}

func TestWalletHandler_DeleteWallet(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deletedID string
		walletSvc := &mockWalletService{
			deleteWalletFn: func(_, walletID string) (*models.Wallet, error) {
				deletedID = walletID
				return &models.Wallet{Base: models.Base{ID: walletID}}, nil
			},
		}
		handler := NewWalletHandler(walletSvc)
		r := setupWalletRouter(handler)

		rec := doRequest(r, "DELETE", "/wallets/w-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deletedID != "w-1" {
			t.Errorf("expected w-1 deleted, got %q", deletedID)
		}
	})

	t.Run("returns 404 for missing wallet", func(t *testing.T) {
		walletSvc := &mockWalletService{
			deleteWalletFn: func(string, string) (*models.Wallet, error) {
				return nil, apperrors.ErrWalletNotFound
			},
		}
		handler := NewWalletHandler(walletSvc)
		r := setupWalletRouter(handler)

		rec := doRequest(r, "DELETE", "/wallets/no-such-id", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
