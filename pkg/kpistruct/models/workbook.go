package models

// WorkbookKey identifies an uploaded workbook in object storage.
type WorkbookKey struct {
	// Raw is the decoded storage key the parts were parsed from.
	Raw string `json:"raw"`
	// OwnerID is the first path segment (the uploading user's id).
	OwnerID string `json:"owner_id"`
	// BaseName is the file name without its extension.
	BaseName string `json:"base_name"`
	// Extension is the file extension without the dot, lower-cased.
	Extension string `json:"extension"`
}

// Workbook holds the two sheets the extractor reads.
type Workbook struct {
	// SheetNames lists every sheet present in the workbook, in order.
	SheetNames []string `json:"sheet_names"`
	// BalanceSheet is the "balancesheet" sheet.
	BalanceSheet SheetTable `json:"balance_sheet"`
	// ProfitAndLoss is the "pnl" sheet.
	ProfitAndLoss SheetTable `json:"profit_and_loss"`
}
