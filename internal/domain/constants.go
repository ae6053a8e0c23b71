package domain

const (
	InvestmentStatusActive    = "active"
	InvestmentStatusCompleted = "completed"
	InvestmentStatusCancelled = "cancelled"
)

const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

const (
	TxTypeDeposit    = "deposit"
	TxTypeWithdrawal = "withdrawal"
	TxTypeInvestment = "investment"
	TxTypeProfit     = "profit"
	TxTypeReferral   = "referral"
)

const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
	TxStatusCancelled = "cancelled"
)

const DefaultCurrency = "USD"

// InvestmentTerminal reports whether a status has no outgoing transitions.
func InvestmentTerminal(status string) bool {
	return status == InvestmentStatusCompleted || status == InvestmentStatusCancelled
}

func ValidRiskLevel(s string) bool {
	return s == RiskLevelLow || s == RiskLevelMedium || s == RiskLevelHigh
}
