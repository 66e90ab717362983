// Package parser reads the financial sheets of an xlsx workbook.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
	"github.com/xuri/excelize/v2"
)

// Required sheet names. Matching is case-sensitive.
const (
	SheetBalance       = "balancesheet"
	SheetProfitAndLoss = "pnl"
)

// ErrInvalidWorkbook indicates the bytes are not a readable xlsx workbook.
var ErrInvalidWorkbook = errors.New("invalid xlsx workbook")

// MissingSheetsError reports which required sheets a workbook lacks.
type MissingSheetsError struct {
	Missing []string
	Found   []string
}

func (e *MissingSheetsError) Error() string {
	return fmt.Sprintf("workbook must contain %q and %q sheets; missing: %s; found: %s",
		SheetBalance, SheetProfitAndLoss,
		strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// ResolveWorkbook decodes workbook bytes and reads the balance sheet and
// profit & loss sheets into tables.
func ResolveWorkbook(data []byte) (models.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return models.Workbook{}, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()

	var missing []string
	for _, name := range []string{SheetBalance, SheetProfitAndLoss} {
		if !slices.Contains(sheetList, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return models.Workbook{}, &MissingSheetsError{Missing: missing, Found: sheetList}
	}

	balance, err := ReadSheet(f, SheetBalance)
	if err != nil {
		return models.Workbook{}, fmt.Errorf("%w: sheet %q: %v", ErrInvalidWorkbook, SheetBalance, err)
	}
	pnl, err := ReadSheet(f, SheetProfitAndLoss)
	if err != nil {
		return models.Workbook{}, fmt.Errorf("%w: sheet %q: %v", ErrInvalidWorkbook, SheetProfitAndLoss, err)
	}

	return models.Workbook{
		SheetNames:    sheetList,
		BalanceSheet:  balance,
		ProfitAndLoss: pnl,
	}, nil
}
