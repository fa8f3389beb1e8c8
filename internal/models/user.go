package models

// User represents the user model in the database
type User struct {
	Base
	Email            string  `gorm:"uniqueIndex;not null" json:"email"`
	Name             string  `gorm:"not null" json:"name"`
	Password         string  `gorm:"not null" json:"-"`
	RefreshTokenHash string  `gorm:"size:64" json:"-"`
	DefaultWalletID  *string `gorm:"type:uuid" json:"default_wallet_id,omitempty"`
}
