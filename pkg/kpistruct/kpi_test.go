package kpistruct

import (
	"math"
	"testing"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name     string
		num, den *float64
		want     *float64
	}{
		{"plain", f64(5000), f64(50000), f64(0.1)},
		{"negative", f64(-10), f64(4), f64(-2.5)},
		{"zero numerator", f64(0), f64(4), f64(0)},
		{"zero denominator", f64(5), f64(0), nil},
		{"negative zero denominator", f64(5), f64(math.Copysign(0, -1)), nil},
		{"nil numerator", nil, f64(4), nil},
		{"nil denominator", f64(4), nil, nil},
		{"both nil", nil, nil, nil},
		{"overflow", f64(math.MaxFloat64), f64(1e-300), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeDivide(tt.num, tt.den)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-12)
		})
	}
}

func TestDeriveRatios(t *testing.T) {
	got := DeriveRatios(models.Scalars{
		CapitalAccount: f64(50000),
		NetProfit:      f64(5000),
		GrossProfit:    f64(20000),
		Revenue:        f64(100000),
	})

	require.NotNil(t, got.ReturnOnEquity)
	require.NotNil(t, got.GrossProfitMargin)
	require.NotNil(t, got.NetProfitMargin)
	assert.InDelta(t, 0.1, *got.ReturnOnEquity, 1e-12)
	assert.InDelta(t, 0.2, *got.GrossProfitMargin, 1e-12)
	assert.InDelta(t, 0.05, *got.NetProfitMargin, 1e-12)
}

func TestDeriveRatiosGuards(t *testing.T) {
	t.Run("zero revenue", func(t *testing.T) {
		got := DeriveRatios(models.Scalars{
			CapitalAccount: f64(50000), NetProfit: f64(5000), GrossProfit: f64(20000), Revenue: f64(0),
		})
		assert.NotNil(t, got.ReturnOnEquity)
		assert.Nil(t, got.GrossProfitMargin)
		assert.Nil(t, got.NetProfitMargin)
	})

	t.Run("missing revenue", func(t *testing.T) {
		got := DeriveRatios(models.Scalars{GrossProfit: f64(20000), NetProfit: f64(1)})
		assert.Nil(t, got.GrossProfitMargin)
		assert.Nil(t, got.NetProfitMargin)
		assert.Nil(t, got.ReturnOnEquity)
	})

	t.Run("zero capital", func(t *testing.T) {
		got := DeriveRatios(models.Scalars{CapitalAccount: f64(0), NetProfit: f64(5000)})
		assert.Nil(t, got.ReturnOnEquity)
	})

	t.Run("nothing extracted", func(t *testing.T) {
		assert.Equal(t, models.Ratios{}, DeriveRatios(models.Scalars{}))
	})
}

func TestExtractScalars(t *testing.T) {
	wb := models.Workbook{
		BalanceSheet: models.NewSheetTable("balancesheet", [][]any{
			{"Liabilities", nil},
			{"Capital Account", "50,000"},
		}),
		ProfitAndLoss: models.NewSheetTable("pnl", [][]any{
			{"To Opening Stock", 100, nil, nil, "By Gross Income", 100000},
			{"To Gross Profit c/o", 20000, nil, nil, "By Gross Profit", "20,000.00"},
			{"To Net Profit", 5000},
		}),
	}

	got := ExtractScalars(wb)
	assert.Equal(t, models.Scalars{
		CapitalAccount: f64(50000),
		GrossProfit:    f64(20000),
		NetProfit:      f64(5000),
		Revenue:        f64(100000),
	}, got)
}
