// Package entity defines the assembled dashboard view.
package entity

import (
	candidates "stock_dashboard/internal/feature/candidates/domain/entity"
	pricehistory "stock_dashboard/internal/feature/pricehistory/domain/entity"
)

// Row is one candidate with its price chart.
type Row struct {
	Candidate candidates.CandidateRecord `json:"candidate"`
	Chart     pricehistory.Chart         `json:"chart"`
}

// Dashboard is what one render shows: the snapshot status, the total number of
// candidates, and the rows that were expanded with charts.
type Dashboard struct {
	Snapshot candidates.Snapshot `json:"snapshot"`
	Count    int                 `json:"count"`
	Rows     []Row               `json:"rows"`
}
