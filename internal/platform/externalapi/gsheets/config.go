// Package gsheets reads the candidate worksheet through the Google Drive and
// Sheets APIs.
package gsheets

import "time"

// DefaultSpreadsheetName is the title of the sheet the upstream scanner appends to.
const DefaultSpreadsheetName = "작전주_포착_로그"

// Config holds configuration for the spreadsheet client.
type Config struct {
	SpreadsheetName string        // exact, case-sensitive spreadsheet title
	SheetsEndpoint  string        // optional override of the Sheets API base URL
	DriveEndpoint   string        // optional override of the Drive API base URL
	Timeout         time.Duration // deadline for one whole FetchGrid call
	MaxAttempts     int           // attempts per API call, including the first
}

func (c Config) withDefaults() Config {
	if c.SpreadsheetName == "" {
		c.SpreadsheetName = DefaultSpreadsheetName
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	return c
}
