package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/application/usecase/dashboard"
)

// DashboardSummaryResponse represents the aggregated dashboard figures.
type DashboardSummaryResponse struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Net          decimal.Decimal `json:"net"`
}

// ToDashboardSummaryResponse converts a summary output to its response DTO.
func ToDashboardSummaryResponse(output *dashboard.GetSummaryOutput) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		TotalBalance: output.TotalBalance,
		Income:       output.Income,
		Expense:      output.Expense,
		Net:          output.Net,
	}
}
