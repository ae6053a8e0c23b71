package repository

import (
	"provest/internal/models"

	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// ListActive returns the browsable catalog, cheapest entry point first.
func (r *PlanRepository) ListActive() ([]models.InvestmentPlan, error) {
	var plans []models.InvestmentPlan
	err := r.db.Where("is_active = ?", true).Order("min_amount ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) ListAll() ([]models.InvestmentPlan, error) {
	var plans []models.InvestmentPlan
	err := r.db.Order("min_amount ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) GetByID(id uint) (*models.InvestmentPlan, error) {
	var p models.InvestmentPlan
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) GetByName(name string) (*models.InvestmentPlan, error) {
	var p models.InvestmentPlan
	if err := r.db.Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) Create(p *models.InvestmentPlan) error {
	return r.db.Create(p).Error
}

// Update persists attribute edits. The name column is the plan's
// identity and is deliberately excluded.
func (r *PlanRepository) Update(p *models.InvestmentPlan) error {
	return r.db.Model(p).Select(
		"description", "min_amount", "max_amount", "return_rate",
		"duration", "risk_level", "features",
	).Updates(p).Error
}

func (r *PlanRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.InvestmentPlan{}).Where("id = ?", id).
		Update("is_active", active).Error
}
