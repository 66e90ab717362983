package models

import "time"

// Row labels anchoring the extracted scalars.
const (
	LabelCapitalAccount = "Capital Account"
	LabelGrossProfit    = "By Gross Profit"
	LabelNetProfit      = "To Net Profit"
	LabelRevenue        = "By Gross Income"
)

// TimestampLayout renders record timestamps as UTC ISO-8601 with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Scalars holds the values read from the workbook. A nil field means the
// label was not found or its value did not parse.
type Scalars struct {
	// CapitalAccount is read from the balance sheet.
	CapitalAccount *float64 `json:"capital_account"`
	// GrossProfit is read from the profit & loss sheet.
	GrossProfit *float64 `json:"gross_profit"`
	// NetProfit is read from the profit & loss sheet.
	NetProfit *float64 `json:"net_profit"`
	// Revenue is read from the profit & loss sheet.
	Revenue *float64 `json:"revenue"`
}

// Ratios holds the derived KPIs. A nil field means an operand was missing
// or the denominator was zero.
type Ratios struct {
	ReturnOnEquity    *float64 `json:"return_on_equity"`
	GrossProfitMargin *float64 `json:"gross_profit_margin"`
	NetProfitMargin   *float64 `json:"net_profit_margin"`
}

// KpiRecord is the persisted output of one extraction run.
type KpiRecord struct {
	// SourceKey is the storage key of the uploaded workbook.
	SourceKey string `json:"source_key"`
	// ParsedValues are the extracted scalars.
	ParsedValues Scalars `json:"parsed_values"`
	// KPIs are the derived ratios.
	KPIs Ratios `json:"kpis"`
	// Embedding is the vector from the inference service, nil when unavailable.
	Embedding []float64 `json:"embedding"`
	// Timestamp is when the record was assembled, formatted with TimestampLayout.
	Timestamp string `json:"timestamp"`
}

// FormatTimestamp renders t in the record timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
