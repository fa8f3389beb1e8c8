package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
)

// walletService is the wallet store. Balance mutations go through single
// atomic UPDATE ... SET balance = balance + ? statements so that concurrent
// requests against the same wallet serialize in the database, never in
// application code.
type walletService struct {
	db    *gorm.DB
	links UserLinkServicer
}

// NewWalletService creates a new WalletServicer.
func NewWalletService(db *gorm.DB, links UserLinkServicer) WalletServicer {
	return &walletService{db: db, links: links}
}

// CreateWallet creates a wallet with an initial balance, indexes it under the
// user, and makes it the user's default wallet when none is set yet.
func (s *walletService) CreateWallet(userID, name string, initialBalance int64) (*models.Wallet, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet name is required")
	}
	if initialBalance < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "initial balance must not be negative")
	}

	wallet := &models.Wallet{
		UserID:  userID,
		Name:    name,
		Balance: initialBalance,
	}
	if err := s.db.Create(wallet).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.links.PushWallet(userID, wallet.ID); err != nil {
		return nil, err
	}

	err := s.db.Model(&models.User{}).
		Where("id = ? AND default_wallet_id IS NULL", userID).
		Update("default_wallet_id", wallet.ID).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return wallet, nil
}

// GetUserWallets lists the user's wallets, oldest first.
func (s *walletService) GetUserWallets(userID string) ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&wallets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return wallets, nil
}

// GetWalletByID retrieves a wallet by ID for a specific user
func (s *walletService) GetWalletByID(userID, walletID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.db.Where("id = ? AND user_id = ?", walletID, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &wallet, nil
}

// DeleteWallet removes a wallet, its membership entries, and its user-index
// row. Transactions that referenced the wallet are orphaned, not cleaned up.
func (s *walletService) DeleteWallet(userID, walletID string) (*models.Wallet, error) {
	wallet, err := s.GetWalletByID(userID, walletID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(wallet).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Where("wallet_id = ?", walletID).Delete(&models.WalletEntry{}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.links.PullWallet(userID, walletID); err != nil {
		return nil, err
	}

	err = s.db.Model(&models.User{}).
		Where("id = ? AND default_wallet_id = ?", userID, walletID).
		Update("default_wallet_id", nil).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return wallet, nil
}

// GetBalance returns the wallet's current balance.
func (s *walletService) GetBalance(walletID string) (int64, error) {
	var wallet models.Wallet
	if err := s.db.Select("balance").Where("id = ?", walletID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrWalletNotFound
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return wallet.Balance, nil
}

// IncreaseBalance atomically adds amount to the wallet's balance.
func (s *walletService) IncreaseBalance(walletID string, amount int64) error {
	if amount < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	return s.applyDelta(s.db, walletID, amount)
}

// DecreaseBalance atomically subtracts amount from the wallet's balance.
func (s *walletService) DecreaseBalance(walletID string, amount int64) error {
	if amount < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	return s.applyDelta(s.db, walletID, -amount)
}

// applyDelta issues the single atomic balance update shared by all balance
// mutations. The magnitude must be non-negative; the caller carries the sign.
func (s *walletService) applyDelta(tx *gorm.DB, walletID string, signedDelta int64) error {
	res := tx.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Update("balance", gorm.Expr("balance + ?", signedDelta))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrWalletNotFound
	}
	return nil
}

// PushTransaction applies signedDelta to the wallet balance and records the
// transaction in the wallet's membership list as one atomic store operation.
// A nil or empty walletID returns immediately: the transaction is unlinked.
func (s *walletService) PushTransaction(walletID *string, transactionID string, signedDelta int64) error {
	if walletID == nil || *walletID == "" {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.applyDelta(tx, *walletID, signedDelta); err != nil {
			return err
		}
		entry := &models.WalletEntry{WalletID: *walletID, TransactionID: transactionID}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// PullTransaction reverses signedDelta and removes the membership entry,
// atomically. A nil or empty walletID returns immediately.
func (s *walletService) PullTransaction(walletID *string, transactionID string, signedDelta int64) error {
	if walletID == nil || *walletID == "" {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.applyDelta(tx, *walletID, -signedDelta); err != nil {
			return err
		}
		err := tx.Where("wallet_id = ? AND transaction_id = ?", *walletID, transactionID).
			Delete(&models.WalletEntry{}).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
