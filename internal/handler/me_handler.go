package handler

import (
	"net/http"

	"provest/internal/middleware"
	"provest/internal/repository"
	"provest/internal/service"
	"provest/pkg/returns"

	"github.com/gin-gonic/gin"
)

type MeHandler struct {
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
	invSvc     *service.InvestmentService
}

func NewMeHandler(userRepo *repository.UserRepository, walletRepo *repository.WalletRepository, invSvc *service.InvestmentService) *MeHandler {
	return &MeHandler{userRepo: userRepo, walletRepo: walletRepo, invSvc: invSvc}
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, u)
}

// GetDashboard returns the wallet summary and each active investment
// with the valuation projected from its snapshotted terms.
func (h *MeHandler) GetDashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	w, err := h.walletRepo.GetOrCreate(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	invs, svcErr := h.invSvc.ListActiveForUser(userID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	active := make([]gin.H, 0, len(invs))
	for i := range invs {
		inv := &invs[i]
		active = append(active, gin.H{
			"investment": inv,
			"projection": returns.Project(inv.ReturnRate, inv.Duration, inv.Amount),
		})
	}
	respondOK(c, http.StatusOK, gin.H{
		"wallet": gin.H{
			"balance":  w.Balance,
			"currency": w.Currency,
		},
		"total_invested":     u.TotalInvested,
		"total_profit":       u.TotalProfit,
		"referral_code":      u.ReferralCode,
		"active_investments": active,
	})
}
