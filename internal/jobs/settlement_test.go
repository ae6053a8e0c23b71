package jobs

import (
	"testing"
	"time"

	"provest/internal/domain"
	"provest/internal/models"
	"provest/internal/repository"
	"provest/internal/service"
	"provest/pkg/returns"

	"gorm.io/gorm"
)

type stubLister struct {
	matured []models.Investment
	err     error
}

func (s *stubLister) ListMatured(t time.Time) ([]models.Investment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.matured, nil
}

type stubPlanStore struct{}

func (s *stubPlanStore) GetByID(id uint) (*models.InvestmentPlan, error) {
	return nil, gorm.ErrRecordNotFound
}

// stubInvestmentStore mirrors the CAS transition: the update applies
// only when the stored row still carries the expected status.
type stubInvestmentStore struct {
	byID map[uint]*models.Investment
}

func (s *stubInvestmentStore) Create(inv *models.Investment) error { return nil }

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
	inv, ok := s.byID[id]
	if !ok || inv.Status != from {
		return repository.ErrStatusConflict
	}
	inv.Status = to
	inv.Profit = profit
	return nil
}

type stubWalletStore struct {
	balances map[uint]float64
}

func (s *stubWalletStore) Debit(userID uint, amount float64) error {
	s.balances[userID] -= amount
	return nil
}

func (s *stubWalletStore) Credit(userID uint, amount float64) error {
	s.balances[userID] += amount
	return nil
}

type stubLedger struct {
	entries []struct {
		userID uint
		txType string
		amount float64
	}
}

func (s *stubLedger) Record(userID uint, txType string, amount float64, description string) error {
	s.entries = append(s.entries, struct {
		userID uint
		txType string
		amount float64
	}{userID, txType, amount})
	return nil
}

type stubTotals struct {
	profit float64
}

func (s *stubTotals) AddInvested(userID uint, amount float64) error { return nil }

func (s *stubTotals) AddProfit(userID uint, amount float64) error {
	s.profit += amount
	return nil
}

func TestRunSettlesMaturedAndSkipsConflicts(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 180)

	// Row 1 was cancelled after the listing snapshot, so its CAS
	// transition must conflict. Row 2 is still active and settles.
	stored := &stubInvestmentStore{byID: map[uint]*models.Investment{
		1: {ID: 1, UserID: 7, Amount: 2000, ReturnRate: "8-12% annually", Duration: 180,
			StartDate: start, EndDate: end, Status: domain.InvestmentStatusCancelled},
		2: {ID: 2, UserID: 9, Amount: 5000, ReturnRate: "8-12% annually", Duration: 180,
			StartDate: start, EndDate: end, Status: domain.InvestmentStatusActive},
	}}
	listed := make([]models.Investment, 0, 2)
	for _, id := range []uint{1, 2} {
		cp := *stored.byID[id]
		cp.Status = domain.InvestmentStatusActive
		listed = append(listed, cp)
	}

	wallets := &stubWalletStore{balances: map[uint]float64{7: 0, 9: 0}}
	ledger := &stubLedger{}
	totals := &stubTotals{}
	svc := service.NewInvestmentService(&stubPlanStore{}, stored, wallets, ledger, totals)

	job := NewSettlementJob(&stubLister{matured: listed}, svc)
	job.now = func() time.Time { return end.AddDate(0, 0, 1) }
	job.Run()

	if stored.byID[1].Status != domain.InvestmentStatusCancelled {
		t.Errorf("cancelled row mutated: %+v", stored.byID[1])
	}
	if wallets.balances[7] != 0 {
		t.Errorf("cancelled row paid out: balance = %v", wallets.balances[7])
	}

	// The conflict on row 1 must not stop the sweep from settling row 2.
	wantProfit := returns.Project("8-12% annually", 180, 5000).Total
	if stored.byID[2].Status != domain.InvestmentStatusCompleted {
		t.Fatalf("row 2 status = %q, want completed", stored.byID[2].Status)
	}
	if diff := stored.byID[2].Profit - wantProfit; diff > 0.001 || diff < -0.001 {
		t.Errorf("row 2 profit = %v, want %v", stored.byID[2].Profit, wantProfit)
	}
	if diff := wallets.balances[9] - (5000 + wantProfit); diff > 0.001 || diff < -0.001 {
		t.Errorf("wallet balance = %v, want principal plus %v", wallets.balances[9], wantProfit)
	}
	if len(ledger.entries) != 1 || ledger.entries[0].txType != domain.TxTypeProfit || ledger.entries[0].userID != 9 {
		t.Errorf("ledger entries = %+v", ledger.entries)
	}
	if diff := totals.profit - wantProfit; diff > 0.001 || diff < -0.001 {
		t.Errorf("profit total = %v, want %v", totals.profit, wantProfit)
	}
}

func TestRunRerunAfterSettlementIsIdempotent(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 180)
	stored := &stubInvestmentStore{byID: map[uint]*models.Investment{
		1: {ID: 1, UserID: 9, Amount: 5000, ReturnRate: "10%", Duration: 180,
			StartDate: start, EndDate: end, Status: domain.InvestmentStatusActive},
	}}
	listed := []models.Investment{*stored.byID[1]}

	wallets := &stubWalletStore{balances: map[uint]float64{9: 0}}
	ledger := &stubLedger{}
	svc := service.NewInvestmentService(&stubPlanStore{}, stored, wallets, ledger, &stubTotals{})

	job := NewSettlementJob(&stubLister{matured: listed}, svc)
	job.now = func() time.Time { return end }
	job.Run()
	// Second sweep sees the same stale listing; the CAS must reject a
	// double payout.
	job.Run()

	wantProfit := returns.Project("10%", 180, 5000).Total
	if diff := wallets.balances[9] - (5000 + wantProfit); diff > 0.001 || diff < -0.001 {
		t.Errorf("wallet balance = %v, want single payout %v", wallets.balances[9], 5000+wantProfit)
	}
	if len(ledger.entries) != 1 {
		t.Errorf("ledger entries = %+v", ledger.entries)
	}
}
