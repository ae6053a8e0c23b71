package service

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	apperrors "provest/internal/errors"

	"provest/internal/domain"
	"provest/internal/models"
	"provest/internal/repository"

	"gorm.io/gorm"
)

type stubPlanStore struct {
	plans map[uint]*models.InvestmentPlan
}

func (s *stubPlanStore) GetByID(id uint) (*models.InvestmentPlan, error) {
	p, ok := s.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

type stubInvestmentStore struct {
	created    []*models.Investment
	byID       map[uint]*models.Investment
	createErr  error
	statusErr  error
	statusCalls []struct {
		id       uint
		from, to string
		profit   float64
	}
}

func (s *stubInvestmentStore) Create(inv *models.Investment) error {
	if s.createErr != nil {
		return s.createErr
	}
	inv.ID = uint(len(s.created) + 1)
	s.created = append(s.created, inv)
	return nil
}

func (s *stubInvestmentStore) GetByID(id uint) (*models.Investment, error) {
	inv, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (s *stubInvestmentStore) ListByUser(userID uint) ([]models.Investment, error) {
	return nil, nil
}

func (s *stubInvestmentStore) ListActiveByUser(userID uint) ([]models.Investment, error) {
	return nil, nil
}

func (s *stubInvestmentStore) UpdateStatus(id uint, from, to string, profit float64) error {
	s.statusCalls = append(s.statusCalls, struct {
		id       uint
		from, to string
		profit   float64
	}{id, from, to, profit})
	if s.statusErr != nil {
		return s.statusErr
	}
	if inv, ok := s.byID[id]; ok {
		if inv.Status != from {
			return repository.ErrStatusConflict
		}
		inv.Status = to
		inv.Profit = profit
	}
	return nil
}

type stubWalletStore struct {
	balances map[uint]float64
	debits   []float64
	credits  []float64
}

func (s *stubWalletStore) Debit(userID uint, amount float64) error {
	if s.balances[userID] < amount {
		return repository.ErrInsufficientBalance
	}
	s.balances[userID] -= amount
	s.debits = append(s.debits, amount)
	return nil
}

func (s *stubWalletStore) Credit(userID uint, amount float64) error {
	s.balances[userID] += amount
	s.credits = append(s.credits, amount)
	return nil
}

type stubLedger struct {
	recordErr error
	entries   []struct {
		userID uint
		txType string
		amount float64
	}
}

func (s *stubLedger) Record(userID uint, txType string, amount float64, description string) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.entries = append(s.entries, struct {
		userID uint
		txType string
		amount float64
	}{userID, txType, amount})
	return nil
}

type stubTotals struct {
	err      error
	invested float64
	profit   float64
}

func (s *stubTotals) AddInvested(userID uint, amount float64) error {
	if s.err != nil {
		return s.err
	}
	s.invested += amount
	return nil
}

func (s *stubTotals) AddProfit(userID uint, amount float64) error {
	if s.err != nil {
		return s.err
	}
	s.profit += amount
	return nil
}

func fixture() (*InvestmentService, *stubPlanStore, *stubInvestmentStore, *stubWalletStore, *stubLedger, *stubTotals) {
	plans := &stubPlanStore{plans: map[uint]*models.InvestmentPlan{
		1: {ID: 1, Name: "Growth", MinAmount: 1000, MaxAmount: 20000, ReturnRate: "8-12% annually", Duration: 180, IsActive: true},
		2: {ID: 2, Name: "Retired", MinAmount: 100, MaxAmount: 1000, ReturnRate: "5%", Duration: 90, IsActive: false},
	}}
	invs := &stubInvestmentStore{byID: map[uint]*models.Investment{}}
	wallets := &stubWalletStore{balances: map[uint]float64{7: 10000}}
	ledger := &stubLedger{}
	totals := &stubTotals{}
	svc := NewInvestmentService(plans, invs, wallets, ledger, totals)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return svc, plans, invs, wallets, ledger, totals
}

func TestCreateSnapshotsTermsAndDerivesEndDate(t *testing.T) {
	svc, plans, invs, wallets, ledger, totals := fixture()

	inv, err := svc.Create(7, 1, 5000)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.ReturnRate != "8-12% annually" || inv.Duration != 180 {
		t.Errorf("terms not snapshotted: %q / %d", inv.ReturnRate, inv.Duration)
	}
	want := time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC)
	if !inv.EndDate.Equal(want) {
		t.Errorf("EndDate = %v, want %v", inv.EndDate, want)
	}
	if inv.Status != domain.InvestmentStatusActive || inv.Profit != 0 {
		t.Errorf("new investment status=%q profit=%v", inv.Status, inv.Profit)
	}
	if wallets.balances[7] != 5000 {
		t.Errorf("wallet balance = %v, want 5000", wallets.balances[7])
	}
	if len(ledger.entries) != 1 || ledger.entries[0].txType != domain.TxTypeInvestment {
		t.Errorf("ledger entries = %+v", ledger.entries)
	}
	if totals.invested != 5000 {
		t.Errorf("total invested = %v, want 5000", totals.invested)
	}
	if len(invs.created) != 1 {
		t.Fatalf("created %d investments", len(invs.created))
	}

	// Editing the plan afterwards must not move the stored snapshot.
	plans.plans[1].ReturnRate = "20%"
	plans.plans[1].Duration = 10
	if inv.ReturnRate != "8-12% annually" || inv.Duration != 180 {
		t.Error("plan edit leaked into stored investment")
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		planID uint
		amount float64
		want   apperrors.Type
	}{
		{name: "zero amount", planID: 1, amount: 0, want: apperrors.TypeValidation},
		{name: "negative amount", planID: 1, amount: -5, want: apperrors.TypeValidation},
		{name: "unknown plan", planID: 99, amount: 5000, want: apperrors.TypeNotFound},
		{name: "inactive plan", planID: 2, amount: 500, want: apperrors.TypeValidation},
		{name: "below minimum", planID: 1, amount: 500, want: apperrors.TypeValidation},
		{name: "above maximum", planID: 1, amount: 50000, want: apperrors.TypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, invs, _, _, _ := fixture()
			_, err := svc.Create(7, tt.planID, tt.amount)
			var appErr *apperrors.Error
			if !errors.As(err, &appErr) || appErr.Type != tt.want {
				t.Fatalf("Create error = %v, want type %v", err, tt.want)
			}
			if len(invs.created) != 0 {
				t.Error("investment persisted despite validation failure")
			}
		})
	}
}

func TestCreateInsufficientBalance(t *testing.T) {
	svc, _, invs, wallets, _, _ := fixture()
	wallets.balances[7] = 100

	_, err := svc.Create(7, 1, 5000)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Type != apperrors.TypeValidation {
		t.Fatalf("error = %v, want validation", err)
	}
	if len(invs.created) != 0 {
		t.Error("investment persisted despite failed debit")
	}
	if wallets.balances[7] != 100 {
		t.Errorf("balance changed to %v", wallets.balances[7])
	}
}

func TestCreateRefundsOnPersistFailure(t *testing.T) {
	svc, _, invs, wallets, _, _ := fixture()
	invs.createErr = errors.New("insert failed")

	_, err := svc.Create(7, 1, 5000)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Type != apperrors.TypeInternal {
		t.Fatalf("error = %v, want internal", err)
	}
	if wallets.balances[7] != 10000 {
		t.Errorf("principal not refunded, balance = %v", wallets.balances[7])
	}
}

func TestTransitionRules(t *testing.T) {
	svc, _, invs, _, _, _ := fixture()
	invs.byID[1] = &models.Investment{ID: 1, UserID: 7, Amount: 5000, Status: domain.InvestmentStatusActive}

	if err := svc.Transition(1, domain.InvestmentStatusActive, domain.InvestmentStatusCompleted, 250); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	if invs.byID[1].Status != domain.InvestmentStatusCompleted || invs.byID[1].Profit != 250 {
		t.Errorf("stored row = %+v", invs.byID[1])
	}

	// Applying the same transition again must conflict, not silently succeed.
	err := svc.Transition(1, domain.InvestmentStatusActive, domain.InvestmentStatusCompleted, 250)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Type != apperrors.TypeConflict {
		t.Fatalf("second transition error = %v, want conflict", err)
	}
}

func TestTransitionFromTerminalRejectedWithoutStoreCall(t *testing.T) {
	svc, _, invs, _, _, _ := fixture()

	for _, from := range []string{domain.InvestmentStatusCompleted, domain.InvestmentStatusCancelled} {
		err := svc.Transition(1, from, domain.InvestmentStatusCompleted, 0)
		var appErr *apperrors.Error
		if !errors.As(err, &appErr) || appErr.Type != apperrors.TypeConflict {
			t.Errorf("transition from %q error = %v, want conflict", from, err)
		}
	}
	if len(invs.statusCalls) != 0 {
		t.Errorf("store touched for illegal transitions: %+v", invs.statusCalls)
	}
}

func TestCancelledInvestmentStaysCancelled(t *testing.T) {
	svc, _, invs, _, _, _ := fixture()
	invs.byID[1] = &models.Investment{ID: 1, UserID: 7, Amount: 5000, Status: domain.InvestmentStatusCancelled}

	err := svc.Transition(1, domain.InvestmentStatusActive, domain.InvestmentStatusCompleted, 100)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Type != apperrors.TypeConflict {
		t.Fatalf("error = %v, want conflict", err)
	}
	if invs.byID[1].Status != domain.InvestmentStatusCancelled {
		t.Errorf("stored status = %q, want cancelled", invs.byID[1].Status)
	}
}

func TestTransitionTargetMustBeTerminal(t *testing.T) {
	svc, _, _, _, _, _ := fixture()
	err := svc.Transition(1, domain.InvestmentStatusActive, domain.InvestmentStatusActive, 0)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Type != apperrors.TypeValidation {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc, _, invs, _, _, _ := fixture()
	invs.byID[1] = &models.Investment{ID: 1, UserID: 7, Status: domain.InvestmentStatusActive}

	if _, err := svc.Get(1, 7, false); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	_, err := svc.Get(1, 8, false)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Type != apperrors.TypeAuthorization {
		t.Errorf("foreign read error = %v, want authorization", err)
	}
	if _, err := svc.Get(1, 8, true); err != nil {
		t.Errorf("admin read failed: %v", err)
	}
}

func TestCancelRefundsPrincipal(t *testing.T) {
	svc, _, invs, wallets, ledger, totals := fixture()
	invs.byID[1] = &models.Investment{ID: 1, UserID: 7, Amount: 5000, Status: domain.InvestmentStatusActive}

	inv, err := svc.Cancel(1, 7, false)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if inv.Status != domain.InvestmentStatusCancelled {
		t.Errorf("status = %q", inv.Status)
	}
	if wallets.balances[7] != 15000 {
		t.Errorf("balance = %v, want 15000", wallets.balances[7])
	}
	if len(ledger.entries) != 1 {
		t.Errorf("ledger entries = %+v", ledger.entries)
	}
	if totals.invested != -5000 {
		t.Errorf("total invested delta = %v, want -5000", totals.invested)
	}
}

func TestCompleteCreditsPrincipalPlusProfit(t *testing.T) {
	svc, _, invs, wallets, ledger, totals := fixture()
	invs.byID[1] = &models.Investment{ID: 1, UserID: 7, Amount: 5000, Status: domain.InvestmentStatusActive}

	if err := svc.Complete(invs.byID[1], 246.58); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if diff := wallets.balances[7] - 15246.58; diff > 0.001 || diff < -0.001 {
		t.Errorf("balance = %v, want ≈15246.58", wallets.balances[7])
	}
	if len(ledger.entries) != 1 || ledger.entries[0].txType != domain.TxTypeProfit {
		t.Errorf("ledger entries = %+v", ledger.entries)
	}
	if totals.profit != 246.58 {
		t.Errorf("total profit = %v", totals.profit)
	}
}

func TestCreateSucceedsButLogsWhenLedgerWriteFails(t *testing.T) {
	svc, _, invs, wallets, ledger, totals := fixture()
	ledger.recordErr = errors.New("ledger insert failed")
	totals.err = errors.New("aggregate update failed")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	inv, err := svc.Create(7, 1, 5000)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// The debit and the investment row stand even when the bookkeeping
	// writes fail.
	if wallets.balances[7] != 5000 {
		t.Errorf("wallet balance = %v, want 5000", wallets.balances[7])
	}
	if len(invs.created) != 1 || inv.Status != domain.InvestmentStatusActive {
		t.Fatalf("created %d investments, status %q", len(invs.created), inv.Status)
	}
	out := buf.String()
	if !strings.Contains(out, "failed to record ledger entry") {
		t.Errorf("ledger failure not logged: %q", out)
	}
	if !strings.Contains(out, "failed to update invested total") {
		t.Errorf("aggregate failure not logged: %q", out)
	}
}
