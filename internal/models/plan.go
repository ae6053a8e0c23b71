package models

import (
	"time"

	"gorm.io/gorm"
)

// InvestmentPlan is an admin-created product template. The name is its
// identity and never changes after creation; retired plans are switched
// to is_active=false rather than deleted so historical investments keep
// a valid reference.
type InvestmentPlan struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description string         `gorm:"size:1000;not null" json:"description"`
	MinAmount   float64        `gorm:"type:decimal(15,2);not null" json:"min_amount"`
	MaxAmount   float64        `gorm:"type:decimal(15,2);not null" json:"max_amount"`
	ReturnRate  string         `gorm:"size:50;not null" json:"return_rate"` // advertised rate, e.g. "12" or "8-12% annually"
	Duration    int            `gorm:"not null" json:"duration"`            // days
	RiskLevel   string         `gorm:"type:enum('low','medium','high');not null" json:"risk_level"`
	Features    []string       `gorm:"serializer:json" json:"features"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InvestmentPlan) TableName() string { return "investment_plans" }
