package services

import (
	"time"

	"dompet/internal/models"
	"dompet/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// WalletServicer is the wallet store: wallet CRUD plus the atomic balance
// primitives the ledger relies on. Increase/Decrease/Push/Pull are expressed
// as single atomic updates in the store, never read-modify-write, so they are
// safe under concurrent requests against the same wallet.
type WalletServicer interface {
	CreateWallet(userID, name string, initialBalance int64) (*models.Wallet, error)
	GetUserWallets(userID string) ([]models.Wallet, error)
	GetWalletByID(userID, walletID string) (*models.Wallet, error)
	DeleteWallet(userID, walletID string) (*models.Wallet, error)

	GetBalance(walletID string) (int64, error)
	IncreaseBalance(walletID string, amount int64) error
	DecreaseBalance(walletID string, amount int64) error

	// PushTransaction records the transaction in the wallet's membership list
	// and applies signedDelta to the balance in one atomic store operation.
	// A nil or empty walletID is a no-op: transactions may be unlinked.
	PushTransaction(walletID *string, transactionID string, signedDelta int64) error
	// PullTransaction is the inverse of PushTransaction: it removes the
	// membership entry and reverses signedDelta. Same no-op rule.
	PullTransaction(walletID *string, transactionID string, signedDelta int64) error
}

// UserLinkServicer maintains the denormalized per-user index of transaction
// and wallet ids. The index is updated in lockstep with ledger and wallet
// mutations; it is not the source of truth, and repeated pushes with the same
// id are appended, not deduplicated.
type UserLinkServicer interface {
	PushTransaction(userID, transactionID string) error
	PullTransaction(userID, transactionID string) error
	PushWallet(userID, walletID string) error
	PullWallet(userID, walletID string) error
}

// TransactionUpdateFields holds the mutable fields of a transaction. Nil
// pointers mean "leave unchanged".
type TransactionUpdateFields struct {
	Description *string
	Type        *models.TransactionType
	Amount      *int64
}

// TransactionFilter narrows a transaction listing. Nil fields are not
// applied.
type TransactionFilter struct {
	WalletID  *string
	Type      *models.TransactionType
	Category  *string
	MinAmount *int64
	MaxAmount *int64
	From      *time.Time
	To        *time.Time
}

// Period selects the trailing window for totals aggregation.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Days returns the window length in days, or 0 for an unknown period.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return 30
	}
	return 0
}

// DayBucketTransaction is a transaction as it appears inside a day bucket,
// with its time of day rendered in the requested timezone.
type DayBucketTransaction struct {
	ID          string                 `json:"id"`
	Description string                 `json:"description"`
	Amount      int64                  `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Time        string                 `json:"time"`
}

// DayBucket groups one calendar day's transactions for history views.
// Timestamp is the created-at of the day's most recent transaction and is
// what orders buckets newest-day-first.
type DayBucket struct {
	Date         string                 `json:"date"`
	Timestamp    time.Time              `json:"timestamp"`
	Transactions []DayBucketTransaction `json:"transactions"`
}

// PeriodTotal is one day's in/out/total sums inside a fixed trailing window.
// Days with no transactions are present with zero values.
type PeriodTotal struct {
	Day       int       `json:"day"`
	Timestamp time.Time `json:"timestamp"`
	In        int64     `json:"in"`
	Out       int64     `json:"out"`
	Total     int64     `json:"total"`
}

// TransactionServicer is the transaction ledger: it owns transaction records
// and keeps wallet balances and the user index consistent with them.
//
// UpdateTransaction and DeleteTransaction return (nil, nil) when no
// transaction with the given id exists for the user: a no-op, not an error,
// with zero side effects.
type TransactionServicer interface {
	CreateTransaction(userID string, walletID *string, txType models.TransactionType, amount int64, description, category string) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetRecentTransactions(userID string, limit int) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) (*models.Transaction, error)
	GetTransactionsByDate(userID, timezone string) ([]DayBucket, error)
	GetTotalByPeriod(userID string, period Period, timezone string) ([]PeriodTotal, error)
}
