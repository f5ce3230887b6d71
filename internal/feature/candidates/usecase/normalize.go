package usecase

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"stock_dashboard/internal/feature/candidates/domain"
	"stock_dashboard/internal/feature/candidates/domain/entity"
)

// Normalize converts a raw worksheet grid into candidate records.
//
// The header row is checked once against entity.CandidateSchema: a missing
// required column yields a *domain.SchemaError, a missing optional column reads
// as an empty string. Cells that are absent because a row is short also read
// as empty strings. Header names are trimmed of surrounding spaces; the
// returned columns and every record's Cells use the trimmed names, in sheet
// order. The input grid is never modified.
func Normalize(grid entity.RawGrid) ([]entity.CandidateRecord, []string, error) {
	header := grid.Header()
	if len(header) == 0 {
		return []entity.CandidateRecord{}, nil, nil
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		columns[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	fields := make(map[entity.Field]int, len(entity.CandidateSchema))
	var missing []string
	for _, col := range entity.CandidateSchema {
		i, ok := index[col.Header]
		if !ok {
			if col.Required {
				missing = append(missing, col.Header)
			}
			fields[col.Field] = -1
			continue
		}
		fields[col.Field] = i
	}
	if len(missing) > 0 {
		return nil, nil, &domain.SchemaError{Missing: missing}
	}

	rows := grid.DataRows()
	records := make([]entity.CandidateRecord, 0, len(rows))
	for _, row := range rows {
		get := func(f entity.Field) string { return cell(row, fields[f]) }

		cells := make(map[string]string, len(columns))
		for i, name := range columns {
			if _, seen := cells[name]; !seen {
				cells[name] = cell(row, i)
			}
		}

		records = append(records, entity.CandidateRecord{
			DiscoveryDate: get(entity.FieldDiscoveryDate),
			SymbolName:    get(entity.FieldSymbolName),
			SymbolCode:    CleanSymbolCode(get(entity.FieldSymbolCode)),
			ProfitPercent: ParsePercent(get(entity.FieldProfitPercent)),
			LivePrice:     DisplayLivePrice(get(entity.FieldLivePrice)),
			CaptureReason: get(entity.FieldCaptureReason),
			CapturePrice:  get(entity.FieldCapturePrice),
			Cells:         cells,
		})
	}
	return records, columns, nil
}

// cell reads row[i], treating a negative index or a short row as empty.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ParsePercent parses a percent cell such as "12.5%" or "1,234.5%".
// Percent signs and thousands separators are removed first. Anything that is
// still not a decimal number, including NaN and Inf, becomes 0, as does a
// number too large for a float64.
func ParsePercent(s string) float64 {
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// CleanSymbolCode strips the single quotes a spreadsheet adds to force text
// formatting, e.g. "'005930" becomes "005930".
func CleanSymbolCode(s string) string {
	return strings.Trim(s, "'")
}

// DisplayLivePrice replaces the "symbol unresolved" sentinel with a dash.
func DisplayLivePrice(s string) string {
	if strings.TrimSpace(s) == entity.UnresolvedPriceSentinel {
		return entity.PricePlaceholder
	}
	return s
}
