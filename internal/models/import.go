package models

// ImportResult summarizes one spreadsheet import run. It is never persisted.
type ImportResult struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	TotalRows     int      `json:"totalRows"`
	InsertedCount int      `json:"insertedCount"`
	UpdatedCount  int      `json:"updatedCount"`
	ErrorCount    int      `json:"errorCount"`
	Errors        []string `json:"errors"`
}
