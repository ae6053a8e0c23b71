package handler

import (
	"errors"
	"net/http"
	"strconv"

	"provest/internal/models"
	"provest/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlanHandler struct {
	planRepo *repository.PlanRepository
}

func NewPlanHandler(planRepo *repository.PlanRepository) *PlanHandler {
	return &PlanHandler{planRepo: planRepo}
}

// List returns active plans, cheapest minimum first.
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planRepo.ListActive()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, plans)
}

func (h *PlanHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid plan id")
		return
	}
	plan, err := h.planRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND", "message": "plan not found"}})
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, plan)
}

type CreatePlanRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=100"`
	Description string   `json:"description" binding:"required"`
	MinAmount   float64  `json:"min_amount" binding:"min=0"`
	MaxAmount   float64  `json:"max_amount" binding:"min=0"`
	ReturnRate  string   `json:"return_rate" binding:"required"`
	Duration    int      `json:"duration" binding:"required,min=1"`
	RiskLevel   string   `json:"risk_level" binding:"required,oneof=low medium high"`
	Features    []string `json:"features"`
}

// Create adds a plan to the catalog (admin only).
func (h *PlanHandler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if req.MinAmount > req.MaxAmount {
		respondBadRequest(c, "min_amount must not exceed max_amount")
		return
	}
	if _, err := h.planRepo.GetByName(req.Name); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": gin.H{"code": "CONFLICT", "message": "a plan with this name already exists"}})
		return
	}
	plan := &models.InvestmentPlan{
		Name:        req.Name,
		Description: req.Description,
		MinAmount:   req.MinAmount,
		MaxAmount:   req.MaxAmount,
		ReturnRate:  req.ReturnRate,
		Duration:    req.Duration,
		RiskLevel:   req.RiskLevel,
		Features:    req.Features,
		IsActive:    true,
	}
	if err := h.planRepo.Create(plan); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, plan)
}

type UpdatePlanRequest struct {
	Description string   `json:"description" binding:"required"`
	MinAmount   float64  `json:"min_amount" binding:"min=0"`
	MaxAmount   float64  `json:"max_amount" binding:"min=0"`
	ReturnRate  string   `json:"return_rate" binding:"required"`
	Duration    int      `json:"duration" binding:"required,min=1"`
	RiskLevel   string   `json:"risk_level" binding:"required,oneof=low medium high"`
	Features    []string `json:"features"`
}

// Update edits a plan's attributes. The name (identity) is immutable.
// Existing investments are unaffected: they hold their own snapshot of
// return rate and duration.
func (h *PlanHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid plan id")
		return
	}
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if req.MinAmount > req.MaxAmount {
		respondBadRequest(c, "min_amount must not exceed max_amount")
		return
	}
	plan, err := h.planRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND", "message": "plan not found"}})
			return
		}
		respondError(c, err)
		return
	}
	plan.Description = req.Description
	plan.MinAmount = req.MinAmount
	plan.MaxAmount = req.MaxAmount
	plan.ReturnRate = req.ReturnRate
	plan.Duration = req.Duration
	plan.RiskLevel = req.RiskLevel
	plan.Features = req.Features
	if err := h.planRepo.Update(plan); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, plan)
}

// SetActive retires or reactivates a plan without deleting it, so
// historical investments keep their reference.
func (h *PlanHandler) SetActive(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid plan id")
		return
	}
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if _, err := h.planRepo.GetByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND", "message": "plan not found"}})
			return
		}
		respondError(c, err)
		return
	}
	if err := h.planRepo.SetActive(uint(id), *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id, "is_active": *req.IsActive})
}
