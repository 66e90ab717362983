package kpistruct

import (
	"testing"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  string
		want models.WorkbookKey
	}{
		{"owner123/report.xlsx", models.WorkbookKey{Raw: "owner123/report.xlsx", OwnerID: "owner123", BaseName: "report", Extension: "xlsx"}},
		{"owner123/Q4 Report.XLSX", models.WorkbookKey{Raw: "owner123/Q4 Report.XLSX", OwnerID: "owner123", BaseName: "Q4 Report", Extension: "xlsx"}},
		{"owner123/2024/q1.v2.xlsx", models.WorkbookKey{Raw: "owner123/2024/q1.v2.xlsx", OwnerID: "owner123", BaseName: "q1.v2", Extension: "xlsx"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok, err := ParseKey(tt.key)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyMalformed(t *testing.T) {
	for _, key := range []string{"report.xlsx", "/report.xlsx", ".xlsx"} {
		_, ok, err := ParseKey(key)
		assert.ErrorIs(t, err, ErrMalformedKey, key)
		assert.False(t, ok, key)
	}
}

func TestParseKeySkip(t *testing.T) {
	for _, key := range []string{"owner123/report.pdf", "owner123/report", "owner123/report.xls", "owner123/report.xlsx.bak", "report.csv", ""} {
		got, ok, err := ParseKey(key)
		assert.NoError(t, err, key)
		assert.False(t, ok, key)
		assert.Equal(t, models.WorkbookKey{}, got, key)
	}
}

func TestDecodeEventKey(t *testing.T) {
	got, err := DecodeEventKey("owner%2Dx/Q4+Report%281%29.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "owner-x/Q4 Report(1).xlsx", got)

	_, err = DecodeEventKey("owner/bad%zz.xlsx")
	assert.ErrorIs(t, err, ErrMalformedKey)
}

func TestProcessedKey(t *testing.T) {
	wk := models.WorkbookKey{OwnerID: "owner123", BaseName: "report"}
	assert.Equal(t, "processed/owner123/report.json", ProcessedKey("processed", wk))
}
