package models

import (
	"time"

	"provest/internal/domain"

	"gorm.io/gorm"
)

// Investment is a user's capital commitment against a plan. ReturnRate
// and Duration are copied from the plan at purchase time so later plan
// edits never move an existing investment's terms.
type Investment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	PlanID     uint           `gorm:"not null;index" json:"plan_id"`
	Amount     float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	ReturnRate string         `gorm:"size:50;not null" json:"return_rate"`
	Duration   int            `gorm:"not null" json:"duration"` // days, snapshot
	StartDate  time.Time      `gorm:"not null" json:"start_date"`
	EndDate    time.Time      `gorm:"not null;index" json:"end_date"`
	Status     string         `gorm:"type:enum('active','completed','cancelled');not null;default:'active';index" json:"status"`
	Profit     float64        `gorm:"type:decimal(15,2);not null;default:0" json:"profit"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User User            `gorm:"foreignKey:UserID" json:"-"`
	Plan *InvestmentPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (Investment) TableName() string { return "investments" }

// NewInvestment builds a fully-formed record from the plan's current
// terms. The end date is derived here, once, by calendar-day addition
// (AddDate, so month and DST boundaries are handled correctly) and is
// never recomputed after the row is persisted.
func NewInvestment(userID uint, plan *InvestmentPlan, amount float64, startDate time.Time) *Investment {
	return &Investment{
		UserID:     userID,
		PlanID:     plan.ID,
		Amount:     amount,
		ReturnRate: plan.ReturnRate,
		Duration:   plan.Duration,
		StartDate:  startDate,
		EndDate:    startDate.AddDate(0, 0, plan.Duration),
		Status:     domain.InvestmentStatusActive,
		Profit:     0,
	}
}

// Matured reports whether the investment's term has completed at t.
func (i *Investment) Matured(t time.Time) bool {
	return !t.Before(i.EndDate)
}
