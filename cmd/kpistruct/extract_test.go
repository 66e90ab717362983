package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func writeWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "balancesheet"))
	_, err := f.NewSheet("pnl")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("balancesheet", "A1", "Capital Account"))
	require.NoError(t, f.SetCellValue("balancesheet", "B1", 1000))
	require.NoError(t, f.SetCellValue("pnl", "A1", "To Net Profit"))
	require.NoError(t, f.SetCellValue("pnl", "B1", 250))
	require.NoError(t, f.SaveAs(path))
}

func TestExtractLocal(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "2024-Q1.xlsx")
	writeWorkbook(t, input)

	storeRoot := filepath.Join(dir, "store")
	data, err := extractLocal(context.Background(), storage.NewFSStore(storeRoot), input, "owner123", zap.NewNop())
	require.NoError(t, err)

	var rec struct {
		SourceKey string              `json:"source_key"`
		KPIs      map[string]*float64 `json:"kpis"`
	}
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "owner123/2024-Q1.xlsx", rec.SourceKey)
	require.NotNil(t, rec.KPIs["return_on_equity"])
	assert.InDelta(t, 0.25, *rec.KPIs["return_on_equity"], 1e-12)

	_, err = os.Stat(filepath.Join(storeRoot, "local", "processed", "owner123", "2024-Q1.json"))
	assert.NoError(t, err)
}

func TestExtractLocalRejectsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.csv")
	require.NoError(t, os.WriteFile(input, []byte("a,b\n"), 0644))

	_, err := extractLocal(context.Background(), storage.NewFSStore(dir), input, "owner123", zap.NewNop())
	assert.ErrorContains(t, err, "not an .xlsx file")
}
