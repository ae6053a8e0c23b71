package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	apperrors "provest/internal/errors"

	"provest/internal/domain"
	"provest/internal/models"
	"provest/internal/repository"

	"gorm.io/gorm"
)

// Narrow store contracts so the lifecycle logic can be exercised
// against stubs. The concrete repositories satisfy these.

type PlanStore interface {
	GetByID(id uint) (*models.InvestmentPlan, error)
}

type InvestmentStore interface {
	Create(inv *models.Investment) error
	GetByID(id uint) (*models.Investment, error)
	ListByUser(userID uint) ([]models.Investment, error)
	ListActiveByUser(userID uint) ([]models.Investment, error)
	UpdateStatus(id uint, from, to string, profit float64) error
}

type WalletStore interface {
	Debit(userID uint, amount float64) error
	Credit(userID uint, amount float64) error
}

type LedgerStore interface {
	Record(userID uint, txType string, amount float64, description string) error
}

type InvestedTotals interface {
	AddInvested(userID uint, amount float64) error
	AddProfit(userID uint, amount float64) error
}

// InvestmentService owns investment creation and status transitions.
type InvestmentService struct {
	plans       PlanStore
	investments InvestmentStore
	wallets     WalletStore
	ledger      LedgerStore
	totals      InvestedTotals
	now         func() time.Time
}

func NewInvestmentService(plans PlanStore, investments InvestmentStore, wallets WalletStore, ledger LedgerStore, totals InvestedTotals) *InvestmentService {
	return &InvestmentService{
		plans:       plans,
		investments: investments,
		wallets:     wallets,
		ledger:      ledger,
		totals:      totals,
		now:         time.Now,
	}
}

// Create places an investment of amount against planID for userID. The
// plan's current return rate and duration are copied onto the record
// and the maturity date is derived once, before the insert. The wallet
// is debited by the principal and an investment ledger entry recorded.
func (s *InvestmentService) Create(userID, planID uint, amount float64) (*models.Investment, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperrors.NewValidation("investment amount must be a positive number")
	}
	plan, err := s.plans.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("investment plan not found")
		}
		return nil, apperrors.NewInternal("failed to load plan", err)
	}
	if !plan.IsActive {
		return nil, apperrors.NewValidation("investment plan is no longer available")
	}
	// Bounds are enforced server-side, not just in the client form.
	if amount < plan.MinAmount {
		return nil, apperrors.NewValidation(fmt.Sprintf("minimum investment for %s is %.2f", plan.Name, plan.MinAmount))
	}
	if amount > plan.MaxAmount {
		return nil, apperrors.NewValidation(fmt.Sprintf("maximum investment for %s is %.2f", plan.Name, plan.MaxAmount))
	}

	if err := s.wallets.Debit(userID, amount); err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, apperrors.NewValidation("insufficient wallet balance")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("wallet not found")
		}
		return nil, apperrors.NewInternal("failed to debit wallet", err)
	}

	inv := models.NewInvestment(userID, plan, amount, s.now())
	if err := s.investments.Create(inv); err != nil {
		// Return the principal; the insert never happened.
		if cerr := s.wallets.Credit(userID, amount); cerr != nil {
			return nil, apperrors.NewInternal("failed to persist investment and refund wallet", cerr)
		}
		return nil, apperrors.NewInternal("failed to persist investment", err)
	}

	// The wallet is already debited and the investment persisted; a
	// failed ledger row or aggregate must not unwind that, but it may
	// not vanish silently either.
	if err := s.ledger.Record(userID, domain.TxTypeInvestment, amount,
		fmt.Sprintf("Investment in %s plan", plan.Name)); err != nil {
		log.Printf("[investment] failed to record ledger entry for user %d investment %d: %v", userID, inv.ID, err)
	}
	if err := s.totals.AddInvested(userID, amount); err != nil {
		log.Printf("[investment] failed to update invested total for user %d: %v", userID, err)
	}
	return inv, nil
}

// Get returns one investment, enforcing ownership unless admin.
func (s *InvestmentService) Get(id, callerID uint, isAdmin bool) (*models.Investment, error) {
	inv, err := s.investments.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("investment not found")
		}
		return nil, apperrors.NewInternal("failed to load investment", err)
	}
	if inv.UserID != callerID && !isAdmin {
		return nil, apperrors.NewAuthorization("you do not own this investment")
	}
	return inv, nil
}

func (s *InvestmentService) ListForUser(userID uint) ([]models.Investment, error) {
	invs, err := s.investments.ListByUser(userID)
	if err != nil {
		return nil, apperrors.NewInternal("failed to list investments", err)
	}
	return invs, nil
}

func (s *InvestmentService) ListActiveForUser(userID uint) ([]models.Investment, error) {
	invs, err := s.investments.ListActiveByUser(userID)
	if err != nil {
		return nil, apperrors.NewInternal("failed to list investments", err)
	}
	return invs, nil
}

// Transition applies from→to with compare-and-swap semantics. The only
// legal transitions are active→completed and active→cancelled; both
// targets are terminal. A mismatch between from and the stored status
// fails with a conflict and leaves the row untouched.
func (s *InvestmentService) Transition(id uint, from, to string, profit float64) error {
	if from != domain.InvestmentStatusActive {
		return apperrors.NewConflict(fmt.Sprintf("no transitions out of %q", from))
	}
	if !domain.InvestmentTerminal(to) {
		return apperrors.NewValidation(fmt.Sprintf("invalid target status %q", to))
	}
	if err := s.investments.UpdateStatus(id, from, to, profit); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return apperrors.NewConflict("investment is not in the expected status")
		}
		return apperrors.NewInternal("failed to update investment status", err)
	}
	return nil
}

// Cancel terminates an active investment early and refunds the
// principal. Admins may cancel any investment; users only their own.
func (s *InvestmentService) Cancel(id, callerID uint, isAdmin bool) (*models.Investment, error) {
	inv, err := s.Get(id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.Transition(inv.ID, domain.InvestmentStatusActive, domain.InvestmentStatusCancelled, 0); err != nil {
		return nil, err
	}
	if err := s.wallets.Credit(inv.UserID, inv.Amount); err != nil {
		return nil, apperrors.NewInternal("cancelled but failed to refund principal", err)
	}
	if err := s.ledger.Record(inv.UserID, domain.TxTypeInvestment, inv.Amount,
		fmt.Sprintf("Refund for cancelled investment #%d", inv.ID)); err != nil {
		log.Printf("[investment] failed to record refund ledger entry for investment %d: %v", inv.ID, err)
	}
	if err := s.totals.AddInvested(inv.UserID, -inv.Amount); err != nil {
		log.Printf("[investment] failed to update invested total for user %d: %v", inv.UserID, err)
	}
	inv.Status = domain.InvestmentStatusCancelled
	return inv, nil
}

// Complete settles a matured investment: CAS to completed with the
// realized profit, then principal plus profit back to the wallet.
// Called by the settlement job, never by request handlers.
func (s *InvestmentService) Complete(inv *models.Investment, profit float64) error {
	if err := s.Transition(inv.ID, domain.InvestmentStatusActive, domain.InvestmentStatusCompleted, profit); err != nil {
		return err
	}
	if err := s.wallets.Credit(inv.UserID, inv.Amount+profit); err != nil {
		return apperrors.NewInternal("completed but failed to credit wallet", err)
	}
	if err := s.ledger.Record(inv.UserID, domain.TxTypeProfit, profit,
		fmt.Sprintf("Matured investment #%d payout", inv.ID)); err != nil {
		log.Printf("[investment] failed to record payout ledger entry for investment %d: %v", inv.ID, err)
	}
	if err := s.totals.AddProfit(inv.UserID, profit); err != nil {
		log.Printf("[investment] failed to update profit total for user %d: %v", inv.UserID, err)
	}
	return nil
}
