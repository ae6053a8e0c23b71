package jobs

import (
	"log"
	"time"

	"provest/internal/models"
	"provest/internal/service"
	"provest/pkg/returns"
)

// MaturedLister yields investments whose end date has passed. Satisfied
// by repository.InvestmentRepository.
type MaturedLister interface {
	ListMatured(t time.Time) ([]models.Investment, error)
}

// SettlementJob sweeps matured investments and settles them: realized
// profit is derived from the terms snapshotted at purchase, the status
// moves active→completed through the lifecycle manager's CAS
// transition, and principal plus profit land back in the wallet.
type SettlementJob struct {
	investments MaturedLister
	svc         *service.InvestmentService
	now         func() time.Time
}

func NewSettlementJob(investments MaturedLister, svc *service.InvestmentService) *SettlementJob {
	return &SettlementJob{investments: investments, svc: svc, now: time.Now}
}

// Run executes one sweep. A conflict on a row means it was settled or
// cancelled by someone else since the listing; it is skipped, never
// retried within the sweep.
func (j *SettlementJob) Run() {
	matured, err := j.investments.ListMatured(j.now())
	if err != nil {
		log.Printf("[settlement] listing matured investments failed: %v", err)
		return
	}
	if len(matured) == 0 {
		return
	}
	settled := 0
	for i := range matured {
		inv := &matured[i]
		profit := returns.Project(inv.ReturnRate, inv.Duration, inv.Amount).Total
		if err := j.svc.Complete(inv, profit); err != nil {
			log.Printf("[settlement] investment %d not settled: %v", inv.ID, err)
			continue
		}
		settled++
	}
	log.Printf("[settlement] settled %d of %d matured investments", settled, len(matured))
}
