package models

import "time"

// The linkage tables below are denormalized indexes, not sources of truth.
// They mirror ledger and wallet mutations so that membership lookups never
// scan the owning documents. Rows use a surrogate key on purpose: pushes are
// plain appends, so repeated pushes with the same ids duplicate rather than
// conflict, and callers must not rely on idempotency.

// UserTransaction indexes a transaction under its owning user.
type UserTransaction struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID        string    `gorm:"type:uuid;not null;index" json:"user_id"`
	TransactionID string    `gorm:"type:uuid;not null;index" json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// UserWallet indexes a wallet under its owning user.
type UserWallet struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	WalletID  string    `gorm:"type:uuid;not null;index" json:"wallet_id"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletEntry is the wallet's transaction membership list, maintained in the
// same atomic store operation that applies the transaction's balance delta.
type WalletEntry struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	WalletID      string    `gorm:"type:uuid;not null;index" json:"wallet_id"`
	TransactionID string    `gorm:"type:uuid;not null;index" json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}
