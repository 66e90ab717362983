package index

import (
	"encoding/csv"
	"io"
	"strconv"
)

// TrainingHeader is the header row of the forecast training CSV.
var TrainingHeader = []string{
	"gross_profit_margin", "net_profit_margin", "revenue",
	"net_profit", "next_net_profit", "next_revenue",
}

// TrainingRow pairs one period's KPIs with the following period's outcomes.
type TrainingRow struct {
	GrossProfitMargin float64
	NetProfitMargin   float64
	Revenue           float64
	NetProfit         float64
	NextNetProfit     float64
	NextRevenue       float64
}

// BuildTrainingRows pairs each entry with the next entry of the same owner.
// Entries must be ordered by owner then period (as List returns them).
// Missing values become 0.
func BuildTrainingRows(entries []Entry) []TrainingRow {
	var rows []TrainingRow
	for i := 0; i+1 < len(entries); i++ {
		current, next := entries[i], entries[i+1]
		if current.OwnerID != next.OwnerID {
			continue
		}
		rows = append(rows, TrainingRow{
			GrossProfitMargin: orZero(current.KPIs.GrossProfitMargin),
			NetProfitMargin:   orZero(current.KPIs.NetProfitMargin),
			Revenue:           orZero(current.ParsedValues.Revenue),
			NetProfit:         orZero(current.ParsedValues.NetProfit),
			NextNetProfit:     orZero(next.ParsedValues.NetProfit),
			NextRevenue:       orZero(next.ParsedValues.Revenue),
		})
	}
	return rows
}

// WriteTrainingCSV writes the header and rows as CSV.
func WriteTrainingCSV(w io.Writer, rows []TrainingRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TrainingHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			formatFloat(r.GrossProfitMargin),
			formatFloat(r.NetProfitMargin),
			formatFloat(r.Revenue),
			formatFloat(r.NetProfit),
			formatFloat(r.NextNetProfit),
			formatFloat(r.NextRevenue),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
