package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a user's spendable balance. Every user owns exactly one.
// The >= 0 invariant is enforced by the application, not the schema.
type Wallet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   float64        `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	Currency  string         `gorm:"size:3;not null;default:'USD'" json:"currency"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Wallet) TableName() string { return "wallets" }
