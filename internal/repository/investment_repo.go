package repository

import (
	"errors"
	"time"

	"provest/internal/domain"
	"provest/internal/models"

	"gorm.io/gorm"
)

// ErrStatusConflict is returned when a compare-and-swap status update
// finds the stored status no longer matching the expected one.
var ErrStatusConflict = errors.New("investment status conflict")

type InvestmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(inv *models.Investment) error {
	return r.db.Create(inv).Error
}

func (r *InvestmentRepository) GetByID(id uint) (*models.Investment, error) {
	var inv models.Investment
	if err := r.db.Preload("Plan").First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvestmentRepository) ListByUser(userID uint) ([]models.Investment, error) {
	var invs []models.Investment
	err := r.db.Preload("Plan").Where("user_id = ?", userID).
		Order("id DESC").Find(&invs).Error
	return invs, err
}

func (r *InvestmentRepository) ListActiveByUser(userID uint) ([]models.Investment, error) {
	var invs []models.Investment
	err := r.db.Preload("Plan").
		Where("user_id = ? AND status = ?", userID, domain.InvestmentStatusActive).
		Order("id DESC").Find(&invs).Error
	return invs, err
}

func (r *InvestmentRepository) ListAll(limit, offset int) ([]models.Investment, error) {
	var invs []models.Investment
	err := r.db.Preload("Plan").Order("id DESC").
		Limit(limit).Offset(offset).Find(&invs).Error
	return invs, err
}

// ListMatured returns active investments whose term has completed at t.
func (r *InvestmentRepository) ListMatured(t time.Time) ([]models.Investment, error) {
	var invs []models.Investment
	err := r.db.Where("status = ? AND end_date <= ?", domain.InvestmentStatusActive, t).
		Find(&invs).Error
	return invs, err
}

// UpdateStatus applies a status transition with compare-and-swap
// semantics: the row is touched only if its stored status equals from.
// Profit is written together with the status so a completed row carries
// its realized profit atomically.
func (r *InvestmentRepository) UpdateStatus(id uint, from, to string, profit float64) error {
	res := r.db.Model(&models.Investment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "profit": profit})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}
