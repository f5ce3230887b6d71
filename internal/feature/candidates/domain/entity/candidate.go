// Package entity defines the domain models for the candidates feature.
package entity

// RawGrid is the cell grid of a worksheet exactly as the spreadsheet returned it.
// Row 0 is the header. Rows may be shorter or longer than the header.
type RawGrid [][]string

// Header returns the header row, or nil when the grid is empty.
func (g RawGrid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

// DataRows returns every row after the header.
func (g RawGrid) DataRows() [][]string {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// CandidateRecord is one normalized spreadsheet row describing a stock suspected
// of accumulation activity.
type CandidateRecord struct {
	DiscoveryDate string  `json:"discoveryDate"` // raw date string, also the sort key
	SymbolName    string  `json:"symbolName"`
	SymbolCode    string  `json:"symbolCode"`    // quote-stripped, used as market-data key
	ProfitPercent float64 `json:"profitPercent"` // 0 when the cell is not numeric
	LivePrice     string  `json:"livePrice"`
	CaptureReason string  `json:"captureReason"`
	CapturePrice  string  `json:"capturePrice"`

	// Cells holds every header column of the row untouched, so columns the
	// schema does not know about still reach the renderer.
	Cells map[string]string `json:"cells"`
}
