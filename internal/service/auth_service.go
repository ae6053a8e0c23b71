package service

import (
	"errors"

	"provest/config"
	"provest/internal/auth"
	"provest/internal/models"
	"provest/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg       *config.Config
	userRepo  *repository.UserRepository
	wallets   *repository.WalletRepository
	referrals *ReferralService
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, wallets *repository.WalletRepository, referrals *ReferralService) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, wallets: wallets, referrals: referrals}
}

// Register creates the user together with their wallet and immutable
// referral code. A supplied referral code links the referrer once and
// triggers signup bonuses; an unknown code is silently ignored.
func (s *AuthService) Register(name, email, password, referralCode string) (*models.User, string, string, error) {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	code, err := s.referrals.GenerateCode()
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		ReferralCode: code,
	}
	referrer := s.referrals.Resolve(referralCode)
	if referrer != nil {
		u.ReferredByID = &referrer.ID
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}
	if _, err := s.wallets.GetOrCreate(u.ID); err != nil {
		return nil, "", "", err
	}
	s.referrals.PayBonuses(referrer, u)

	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.IsAdmin)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}

func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}

func (s *AuthService) RefreshToken(refreshToken string) (access, refresh string, err error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", err
	}
	access, _ = auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.IsAdmin)
	refresh, _ = auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return access, refresh, nil
}
