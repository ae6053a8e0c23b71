package handler

import (
	"net/http"
	"strconv"

	"provest/internal/middleware"
	"provest/internal/repository"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	txRepo *repository.TransactionRepository
}

func NewTransactionHandler(txRepo *repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{txRepo: txRepo}
}

// List returns the caller's ledger entries, newest first. Supports
// ?type=deposit|withdrawal|investment|profit|referral and paging.
func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	txType := c.Query("type")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	txs, err := h.txRepo.ListByUser(userID, txType, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, txs)
}
