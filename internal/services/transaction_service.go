package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "dompet/internal/errors"
	"dompet/internal/models"
	"dompet/internal/pagination"
)

// transactionService is the transaction ledger. Writes run as an ordered
// sequence: validate against the wallet store, persist the transaction,
// update the user index, reconcile the wallet. There is no store transaction
// spanning those entities; a failure before the persist step aborts with no
// side effects, while a failure after it leaves the transaction persisted but
// unreconciled. Each individual store operation stays atomic, so no single
// entity is ever corrupted.
type transactionService struct {
	db      *gorm.DB
	wallets WalletServicer
	links   UserLinkServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, wallets WalletServicer, links UserLinkServicer) TransactionServicer {
	return &transactionService{db: db, wallets: wallets, links: links}
}

// CreateTransaction creates a transaction and applies its balance effect to
// the linked wallet, if any. An `out` transaction larger than the wallet's
// current balance is rejected before anything is persisted.
func (s *transactionService) CreateTransaction(userID string, walletID *string, txType models.TransactionType, amount int64, description, category string) (*models.Transaction, error) {
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user ID is required")
	}
	if !txType.IsValid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if walletID != nil && *walletID == "" {
		walletID = nil
	}

	if walletID != nil {
		balance, err := s.wallets.GetBalance(*walletID)
		if err != nil {
			return nil, err
		}
		if txType == models.TransactionTypeOut && amount > balance {
			return nil, apperrors.ErrInsufficientBalance
		}
	}

	transaction := &models.Transaction{
		UserID:        userID,
		WalletID:      walletID,
		Description:   description,
		Amount:        amount,
		InitialAmount: amount,
		Type:          txType,
		Category:      category,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.links.PushTransaction(userID, transaction.ID); err != nil {
		return nil, err
	}

	if err := s.wallets.PushTransaction(transaction.WalletID, transaction.ID, transaction.SignedAmount()); err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// getOwned fetches a transaction for mutation. A missing id yields
// (nil, nil): update and delete treat it as a no-op, never an error.
func (s *transactionService) getOwned(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction overwrites the description unconditionally. Type and
// amount are overwritten only when the transaction is linked to a wallet and
// at least one of them actually changes; that is what triggers balance
// reconciliation. Reconciliation reverses the old signed amount and applies
// the new one as a single net balance update, so the wallet never carries a
// stale contribution. InitialAmount is never modified.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.getOwned(userID, transactionID)
	if err != nil || transaction == nil {
		return nil, err
	}

	newType := transaction.Type
	if fields.Type != nil {
		newType = *fields.Type
		if !newType.IsValid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
	}
	newAmount := transaction.Amount
	if fields.Amount != nil {
		newAmount = *fields.Amount
		if newAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
	}

	if fields.Description != nil {
		transaction.Description = *fields.Description
	}

	reconcile := transaction.WalletID != nil &&
		(newType != transaction.Type || newAmount != transaction.Amount)

	oldSigned := transaction.SignedAmount()
	if reconcile {
		transaction.Type = newType
		transaction.Amount = newAmount
	}

	updates := map[string]interface{}{
		"description": transaction.Description,
		"type":        transaction.Type,
		"amount":      transaction.Amount,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if reconcile {
		net := transaction.SignedAmount() - oldSigned
		if net >= 0 {
			err = s.wallets.IncreaseBalance(*transaction.WalletID, net)
		} else {
			err = s.wallets.DecreaseBalance(*transaction.WalletID, -net)
		}
		if err != nil {
			return nil, err
		}
	}

	return transaction, nil
}

// DeleteTransaction hard-deletes a transaction and reverses its balance
// effect. Removing an inflow that the wallet balance now depends on is
// blocked: if the projected balance after removal would be negative, the
// delete fails with ErrCannotDelete and nothing changes.
func (s *transactionService) DeleteTransaction(userID, transactionID string) (*models.Transaction, error) {
	transaction, err := s.getOwned(userID, transactionID)
	if err != nil || transaction == nil {
		return nil, err
	}

	if transaction.WalletID != nil {
		balance, err := s.wallets.GetBalance(*transaction.WalletID)
		if err != nil {
			return nil, err
		}
		if transaction.Type == models.TransactionTypeIn && balance-transaction.Amount < 0 {
			return nil, apperrors.ErrCannotDelete
		}
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.links.PullTransaction(userID, transaction.ID); err != nil {
		return nil, err
	}

	if err := s.wallets.PullTransaction(transaction.WalletID, transaction.ID, transaction.SignedAmount()); err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.WalletID != nil {
		q = q.Where("wallet_id = ?", *f.WalletID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	return q
}

// GetRecentTransactions returns the user's most recent transactions, newest
// first. A non-positive limit returns everything.
func (s *transactionService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}
