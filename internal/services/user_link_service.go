package services

import (
	"gorm.io/gorm"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
)

// userLinkService maintains the per-user membership index of transaction and
// wallet ids. Every ledger create/remove and wallet create/delete touches it.
type userLinkService struct {
	db *gorm.DB
}

// NewUserLinkService creates a new UserLinkServicer.
func NewUserLinkService(db *gorm.DB) UserLinkServicer {
	return &userLinkService{db: db}
}

// PushTransaction appends a transaction id to the user's index.
func (s *userLinkService) PushTransaction(userID, transactionID string) error {
	link := &models.UserTransaction{UserID: userID, TransactionID: transactionID}
	if err := s.db.Create(link).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// PullTransaction removes a transaction id from the user's index.
func (s *userLinkService) PullTransaction(userID, transactionID string) error {
	err := s.db.Where("user_id = ? AND transaction_id = ?", userID, transactionID).
		Delete(&models.UserTransaction{}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// PushWallet appends a wallet id to the user's index.
func (s *userLinkService) PushWallet(userID, walletID string) error {
	link := &models.UserWallet{UserID: userID, WalletID: walletID}
	if err := s.db.Create(link).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// PullWallet removes a wallet id from the user's index.
func (s *userLinkService) PullWallet(userID, walletID string) error {
	err := s.db.Where("user_id = ? AND wallet_id = ?", userID, walletID).
		Delete(&models.UserWallet{}).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
