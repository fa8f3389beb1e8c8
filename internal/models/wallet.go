package models

// Wallet represents a money pot owned by a user.
//
// Balance is stored in currency minor units and is only ever mutated through
// atomic increments issued by the wallet store; at rest it equals the wallet's
// initial balance plus the sum of signed amounts of every transaction linked
// to it. Deleting a wallet orphans the transactions that referenced it.
type Wallet struct {
	Base
	UserID  string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name    string `gorm:"not null" json:"name"`
	Balance int64  `gorm:"type:bigint;not null;default:0" json:"balance"`
}
