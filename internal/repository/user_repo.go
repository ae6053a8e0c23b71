package repository

import (
	"provest/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByReferralCode(code string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("referral_code = ?", code).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) List(limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, err
}

// AddInvested increments the running total_invested aggregate.
func (r *UserRepository) AddInvested(userID uint, amount float64) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("total_invested", gorm.Expr("total_invested + ?", amount)).Error
}

// AddProfit increments the running total_profit aggregate.
func (r *UserRepository) AddProfit(userID uint, amount float64) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("total_profit", gorm.Expr("total_profit + ?", amount)).Error
}
