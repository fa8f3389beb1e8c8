package models

// TransactionType carries the direction of a transaction. Amounts are always
// non-negative; the sign of a transaction's balance effect lives here.
type TransactionType string

const (
	TransactionTypeIn  TransactionType = "in"
	TransactionTypeOut TransactionType = "out"
)

// IsValid checks if the transaction type is a known value.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIn, TransactionTypeOut:
		return true
	}
	return false
}

// Transaction represents a single inflow or outflow in the ledger.
//
// WalletID is optional: a transaction need not belong to any wallet, in which
// case it never affects a balance. InitialAmount is a snapshot of Amount at
// creation time and is never updated afterwards.
type Transaction struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	WalletID      *string         `gorm:"type:uuid;index" json:"wallet_id,omitempty"`
	Description   string          `json:"description"`
	Amount        int64           `gorm:"type:bigint;not null" json:"amount"`
	InitialAmount int64           `gorm:"type:bigint;not null" json:"initial_amount"`
	Type          TransactionType `gorm:"not null" json:"type"`
	Category      string          `json:"category"`
}

// SignedAmount returns the transaction's balance effect: +Amount for inflows,
// -Amount for outflows.
func (t *Transaction) SignedAmount() int64 {
	if t.Type == TransactionTypeIn {
		return t.Amount
	}
	return -t.Amount
}
