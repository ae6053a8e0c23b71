package repository

import (
	"errors"

	"provest/internal/domain"
	"provest/internal/models"

	"gorm.io/gorm"
)

var ErrInsufficientBalance = errors.New("insufficient wallet balance")

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	w, err := r.GetByUserID(userID)
	if err == nil {
		return w, nil
	}
	w = &models.Wallet{UserID: userID, Balance: 0, Currency: domain.DefaultCurrency}
	if err := r.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

func (r *WalletRepository) Credit(userID uint, amount float64) error {
	w, err := r.GetOrCreate(userID)
	if err != nil {
		return err
	}
	w.Balance += amount
	return r.db.Model(w).Update("balance", w.Balance).Error
}

func (r *WalletRepository) Debit(userID uint, amount float64) error {
	w, err := r.GetByUserID(userID)
	if err != nil {
		return err
	}
	if w.Balance < amount {
		return ErrInsufficientBalance
	}
	w.Balance -= amount
	return r.db.Model(w).Update("balance", w.Balance).Error
}
