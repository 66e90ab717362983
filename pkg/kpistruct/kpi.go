package kpistruct

import (
	"math"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/parser"
)

// SafeDivide returns num/den, or nil when either operand is nil, den is zero
// or the quotient is not finite.
func SafeDivide(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	q := *num / *den
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return nil
	}
	return &q
}

// ExtractScalars reads the labelled values from the workbook sheets.
func ExtractScalars(wb models.Workbook) models.Scalars {
	return models.Scalars{
		CapitalAccount: parser.FindNumeric(wb.BalanceSheet, models.LabelCapitalAccount),
		GrossProfit:    parser.FindNumeric(wb.ProfitAndLoss, models.LabelGrossProfit),
		NetProfit:      parser.FindNumeric(wb.ProfitAndLoss, models.LabelNetProfit),
		Revenue:        parser.FindNumeric(wb.ProfitAndLoss, models.LabelRevenue),
	}
}

// DeriveRatios computes the KPIs from the extracted scalars.
func DeriveRatios(s models.Scalars) models.Ratios {
	return models.Ratios{
		ReturnOnEquity:    SafeDivide(s.NetProfit, s.CapitalAccount),
		GrossProfitMargin: SafeDivide(s.GrossProfit, s.Revenue),
		NetProfitMargin:   SafeDivide(s.NetProfit, s.Revenue),
	}
}
