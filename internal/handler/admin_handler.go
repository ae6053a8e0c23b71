package handler

import (
	"net/http"
	"strconv"

	"provest/internal/repository"
	"provest/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userRepo *repository.UserRepository
	invRepo  *repository.InvestmentRepository
	planRepo *repository.PlanRepository
	invSvc   *service.InvestmentService
}

func NewAdminHandler(userRepo *repository.UserRepository, invRepo *repository.InvestmentRepository, planRepo *repository.PlanRepository, invSvc *service.InvestmentService) *AdminHandler {
	return &AdminHandler{userRepo: userRepo, invRepo: invRepo, planRepo: planRepo, invSvc: invSvc}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := paging(c)
	users, err := h.userRepo.List(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, users)
}

func (h *AdminHandler) ListInvestments(c *gin.Context) {
	limit, offset := paging(c)
	invs, err := h.invRepo.ListAll(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, invs)
}

func (h *AdminHandler) ListPlans(c *gin.Context) {
	plans, err := h.planRepo.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, plans)
}

// CancelInvestment force-cancels any active investment, refunding the
// principal to its owner. Uses the same guarded transition as the user
// path, so terminal investments are rejected with a conflict.
func (h *AdminHandler) CancelInvestment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid investment id")
		return
	}
	inv, svcErr := h.invSvc.Cancel(uint(id), 0, true)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	respondOK(c, http.StatusOK, inv)
}

func paging(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
