package handler

import (
	"errors"
	"net/http"
	"strconv"

	"provest/internal/middleware"
	"provest/internal/repository"
	"provest/internal/service"
	"provest/pkg/returns"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InvestmentHandler struct {
	svc      *service.InvestmentService
	planRepo *repository.PlanRepository
}

func NewInvestmentHandler(svc *service.InvestmentService, planRepo *repository.PlanRepository) *InvestmentHandler {
	return &InvestmentHandler{svc: svc, planRepo: planRepo}
}

type CreateInvestmentRequest struct {
	PlanID uint    `json:"plan_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	inv, err := h.svc.Create(userID, req.PlanID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, inv)
}

func (h *InvestmentHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	invs, err := h.svc.ListForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, invs)
}

// Get returns one investment together with the projection derived from
// its snapshotted terms, so the client can render current valuation.
func (h *InvestmentHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid investment id")
		return
	}
	inv, svcErr := h.svc.Get(uint(id), userID, middleware.IsAdmin(c))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"investment": inv,
		"projection": returns.Project(inv.ReturnRate, inv.Duration, inv.Amount),
	})
}

func (h *InvestmentHandler) Cancel(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid investment id")
		return
	}
	inv, svcErr := h.svc.Cancel(uint(id), userID, middleware.IsAdmin(c))
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	respondOK(c, http.StatusOK, inv)
}

// Preview computes a non-authoritative projection for a prospective
// amount against a plan, before anything is persisted.
func (h *InvestmentHandler) Preview(c *gin.Context) {
	planID, err := strconv.ParseUint(c.Query("plan_id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid plan_id")
		return
	}
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		respondBadRequest(c, "invalid amount")
		return
	}
	plan, err := h.planRepo.GetByID(uint(planID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND", "message": "plan not found"}})
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"plan_id":    plan.ID,
		"amount":     amount,
		"duration":   plan.Duration,
		"projection": returns.Project(plan.ReturnRate, plan.Duration, amount),
	})
}
