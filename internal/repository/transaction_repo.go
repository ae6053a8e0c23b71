package repository

import (
	"provest/internal/domain"
	"provest/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *models.Transaction) error {
	if tx.Reference == "" {
		tx.Reference = uuid.NewString()
	}
	if tx.Currency == "" {
		tx.Currency = domain.DefaultCurrency
	}
	return r.db.Create(tx).Error
}

// Record inserts a completed ledger entry in one call; the usual path
// for wallet-affecting operations that succeed synchronously.
func (r *TransactionRepository) Record(userID uint, txType string, amount float64, description string) error {
	return r.Create(&models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Status:      domain.TxStatusCompleted,
		Description: description,
	})
}

func (r *TransactionRepository) ListByUser(userID uint, txType string, limit, offset int) ([]models.Transaction, error) {
	q := r.db.Where("user_id = ?", userID)
	if txType != "" {
		q = q.Where("type = ?", txType)
	}
	var txs []models.Transaction
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&txs).Error
	return txs, err
}

// UpdateStatus moves a pending entry to a terminal status. Ledger rows
// are otherwise immutable, so only pending rows can be touched.
func (r *TransactionRepository) UpdateStatus(id uint, to string) error {
	res := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, domain.TxStatusPending).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}
