package dto

// ImportTransactionsRequest carries rows already parsed from a spreadsheet by
// the client. The backend validates and batch-inserts them; it never sees the
// original file.
type ImportTransactionsRequest struct {
	Rows []CreateTransactionRequest `json:"rows" binding:"required,min=1,dive"`
}

// ImportRowError reports why a single row was rejected.
type ImportRowError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Imported int              `json:"imported"`
	Rejected int              `json:"rejected"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
