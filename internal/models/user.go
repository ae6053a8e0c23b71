package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash   string         `gorm:"size:255;not null" json:"-"`
	ProfilePicture string         `gorm:"size:512" json:"profile_picture"`
	TotalInvested  float64        `gorm:"type:decimal(15,2);not null;default:0" json:"total_invested"`
	TotalProfit    float64        `gorm:"type:decimal(15,2);not null;default:0" json:"total_profit"`
	ReferralCode   string         `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	ReferredByID   *uint          `gorm:"index" json:"referred_by_id,omitempty"`
	IsAdmin        bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	ReferredBy *User   `gorm:"foreignKey:ReferredByID" json:"-"`
	Wallet     *Wallet `gorm:"foreignKey:UserID" json:"wallet,omitempty"`
}

func (User) TableName() string { return "users" }
