package usecase

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"stock_dashboard/internal/feature/candidates/domain/entity"
)

// DateOrder selects how records are ordered by discovery date.
type DateOrder string

const (
	// DateOrderLexical compares the raw date strings byte-wise, newest first.
	// It matches chronological order only for zero-padded, fixed-width dates.
	DateOrderLexical DateOrder = "lexical"
	// DateOrderChronological parses the dates and orders them newest first.
	// Unparsable dates sort after parsable ones.
	DateOrderChronological DateOrder = "chronological"
)

// ParseDateOrder validates a configured ordering name. Empty means lexical.
func ParseDateOrder(s string) (DateOrder, error) {
	switch DateOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", DateOrderLexical:
		return DateOrderLexical, nil
	case DateOrderChronological:
		return DateOrderChronological, nil
	default:
		return "", fmt.Errorf("unknown date order %q", s)
	}
}

var discoveryDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006.01.02",
	"2006/01/02",
	"2006-1-2",
}

func parseDiscoveryDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range discoveryDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortByDiscoveryDate orders records newest first in place. The sort is stable
// so rows sharing a date keep their sheet order.
func SortByDiscoveryDate(records []entity.CandidateRecord, order DateOrder) {
	if order != DateOrderChronological {
		slices.SortStableFunc(records, func(a, b entity.CandidateRecord) int {
			return strings.Compare(b.DiscoveryDate, a.DiscoveryDate)
		})
		return
	}

	slices.SortStableFunc(records, func(a, b entity.CandidateRecord) int {
		ta, okA := parseDiscoveryDate(a.DiscoveryDate)
		tb, okB := parseDiscoveryDate(b.DiscoveryDate)
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return strings.Compare(b.DiscoveryDate, a.DiscoveryDate)
		}
	})
}
