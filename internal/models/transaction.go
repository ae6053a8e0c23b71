package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction is an append-only ledger entry. Rows are never mutated
// after insert except for a pending status moving to a terminal one.
type Transaction struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Type        string         `gorm:"type:enum('deposit','withdrawal','investment','profit','referral');not null;index" json:"type"`
	Amount      float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency    string         `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Status      string         `gorm:"type:enum('pending','completed','failed','cancelled');not null;default:'pending'" json:"status"`
	Reference   string         `gorm:"size:64;index" json:"reference,omitempty"`
	Description string         `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string { return "transactions" }
