package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"provest/config"
	"provest/internal/domain"
	"provest/internal/models"

	"gorm.io/gorm"
)

const referralCodeLength = 8
const referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ReferralLookup is the slice of the user store the referral flow needs.
type ReferralLookup interface {
	GetByReferralCode(code string) (*models.User, error)
}

// ReferralService generates referral codes and credits signup bonuses.
type ReferralService struct {
	cfg     *config.ReferralConfig
	users   ReferralLookup
	wallets WalletStore
	ledger  LedgerStore
}

func NewReferralService(cfg *config.ReferralConfig, users ReferralLookup, wallets WalletStore, ledger LedgerStore) *ReferralService {
	return &ReferralService{cfg: cfg, users: users, wallets: wallets, ledger: ledger}
}

// GenerateCode returns a unique uppercase alphanumeric code, retrying
// on the unlikely collision with an existing user.
func (s *ReferralService) GenerateCode() (string, error) {
	for {
		b := make([]byte, referralCodeLength)
		for i := range b {
			b[i] = referralCodeAlphabet[rand.Intn(len(referralCodeAlphabet))]
		}
		code := string(b)
		_, err := s.users.GetByReferralCode(code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return code, nil
			}
			return "", err
		}
	}
}

// Resolve returns the owner of code, or nil when the code is unknown.
// An invalid code is not an error: registration proceeds without a
// referrer, matching the original product's behavior.
func (s *ReferralService) Resolve(code string) *models.User {
	if code == "" {
		return nil
	}
	referrer, err := s.users.GetByReferralCode(code)
	if err != nil {
		return nil
	}
	return referrer
}

// PayBonuses credits both sides of a successful referral and records
// the ledger entries. Failures are logged, not surfaced: a bonus credit
// must never fail a registration that already happened.
func (s *ReferralService) PayBonuses(referrer, referred *models.User) {
	if referrer == nil || referred == nil || referrer.ID == referred.ID {
		return
	}
	if s.cfg.ReferrerBonus > 0 {
		if err := s.wallets.Credit(referrer.ID, s.cfg.ReferrerBonus); err != nil {
			log.Printf("[referral] failed to credit referrer %d: %v", referrer.ID, err)
		} else {
			_ = s.ledger.Record(referrer.ID, domain.TxTypeReferral, s.cfg.ReferrerBonus,
				fmt.Sprintf("Referral bonus for inviting %s", referred.Name))
		}
	}
	if s.cfg.ReferredBonus > 0 {
		if err := s.wallets.Credit(referred.ID, s.cfg.ReferredBonus); err != nil {
			log.Printf("[referral] failed to credit referred user %d: %v", referred.ID, err)
		} else {
			_ = s.ledger.Record(referred.ID, domain.TxTypeReferral, s.cfg.ReferredBonus,
				"Referral signup bonus")
		}
	}
}
