package index

import (
	"bytes"
	"testing"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func entry(owner, base string, revenue, netProfit, gpm, npm *float64) Entry {
	return Entry{
		OwnerID:      owner,
		BaseName:     base,
		ParsedValues: models.Scalars{Revenue: revenue, NetProfit: netProfit},
		KPIs:         models.Ratios{GrossProfitMargin: gpm, NetProfitMargin: npm},
	}
}

func TestBuildTrainingRows(t *testing.T) {
	entries := []Entry{
		entry("a", "2023-Q3", f(100), f(10), f(0.2), f(0.1)),
		entry("a", "2023-Q4", f(120), f(15), f(0.25), f(0.125)),
		entry("a", "2024-Q1", nil, nil, nil, nil),
		entry("b", "2023-Q4", f(50), f(5), f(0.3), f(0.1)),
	}

	rows := BuildTrainingRows(entries)
	require.Len(t, rows, 2)

	assert.Equal(t, TrainingRow{
		GrossProfitMargin: 0.2, NetProfitMargin: 0.1, Revenue: 100,
		NetProfit: 10, NextNetProfit: 15, NextRevenue: 120,
	}, rows[0])
	assert.Equal(t, TrainingRow{
		GrossProfitMargin: 0.25, NetProfitMargin: 0.125, Revenue: 120,
		NetProfit: 15, NextNetProfit: 0, NextRevenue: 0,
	}, rows[1])

	assert.Empty(t, BuildTrainingRows(nil))
	assert.Empty(t, BuildTrainingRows(entries[3:]))
}

func TestWriteTrainingCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTrainingCSV(&buf, []TrainingRow{
		{GrossProfitMargin: 0.2, NetProfitMargin: 0.05, Revenue: 100000, NetProfit: 5000, NextNetProfit: 6000, NextRevenue: 110000},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"gross_profit_margin,net_profit_margin,revenue,net_profit,next_net_profit,next_revenue\n"+
			"0.2,0.05,100000,5000,6000,110000\n",
		buf.String())
}
