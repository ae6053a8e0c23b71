package handler

import (
	"errors"
	"log"
	"net/http"

	"provest/internal/domain"
	"provest/internal/middleware"
	"provest/internal/repository"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletRepo *repository.WalletRepository
	userRepo   *repository.UserRepository
	txRepo     *repository.TransactionRepository
}

func NewWalletHandler(walletRepo *repository.WalletRepository, userRepo *repository.UserRepository, txRepo *repository.TransactionRepository) *WalletHandler {
	return &WalletHandler{walletRepo: walletRepo, userRepo: userRepo, txRepo: txRepo}
}

// GetBalance returns the wallet plus the user's running aggregates.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	w, err := h.walletRepo.GetOrCreate(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"balance":        w.Balance,
		"currency":       w.Currency,
		"total_invested": u.TotalInvested,
		"total_profit":   u.TotalProfit,
	})
}

type AmountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (h *WalletHandler) Deposit(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.walletRepo.Credit(userID, req.Amount); err != nil {
		respondError(c, err)
		return
	}
	if err := h.txRepo.Record(userID, domain.TxTypeDeposit, req.Amount, "Wallet deposit"); err != nil {
		log.Printf("[wallet] failed to record deposit for user %d: %v", userID, err)
	}
	w, err := h.walletRepo.GetByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"balance": w.Balance, "currency": w.Currency})
}

func (h *WalletHandler) Withdraw(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := h.walletRepo.Debit(userID, req.Amount); err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			respondBadRequest(c, "insufficient wallet balance")
			return
		}
		respondError(c, err)
		return
	}
	if err := h.txRepo.Record(userID, domain.TxTypeWithdrawal, req.Amount, "Wallet withdrawal"); err != nil {
		log.Printf("[wallet] failed to record withdrawal for user %d: %v", userID, err)
	}
	w, err := h.walletRepo.GetByUserID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"balance": w.Balance, "currency": w.Currency})
}
