package dto

import (
	"time"

	candidatesdto "stock_dashboard/internal/feature/candidates/transport/http/dto"
	"stock_dashboard/internal/feature/dashboard/domain/entity"
	pricehistorydto "stock_dashboard/internal/feature/pricehistory/transport/http/dto"
)

// RowResponse は候補銘柄とチャートの1行分のレスポンスDTOです。
type RowResponse struct {
	Candidate candidatesdto.CandidateResponse `json:"candidate"`
	Chart     pricehistorydto.ChartResponse   `json:"chart"`
}

// DashboardResponse はダッシュボード全体のレスポンスDTOです。
type DashboardResponse struct {
	Status    string        `json:"status"`
	Count     int           `json:"count"` // 총 N개
	Columns   []string      `json:"columns"`
	Rows      []RowResponse `json:"rows"`
	Error     string        `json:"error,omitempty"`
	ErrorKind string        `json:"errorKind,omitempty"`
	FetchedAt string        `json:"fetchedAt"`
}

// NewDashboardResponse はエンティティをレスポンスDTOへ変換します。
func NewDashboardResponse(d entity.Dashboard) DashboardResponse {
	rows := make([]RowResponse, 0, len(d.Rows))
	for _, r := range d.Rows {
		rows = append(rows, RowResponse{
			Candidate: candidatesdto.NewCandidateResponse(r.Candidate),
			Chart:     pricehistorydto.NewChartResponse(r.Chart),
		})
	}
	columns := d.Snapshot.Columns
	if columns == nil {
		columns = []string{}
	}
	return DashboardResponse{
		Status:    string(d.Snapshot.Status),
		Count:     d.Count,
		Columns:   columns,
		Rows:      rows,
		Error:     d.Snapshot.Error,
		ErrorKind: d.Snapshot.ErrorKind,
		FetchedAt: d.Snapshot.FetchedAt.UTC().Format(time.RFC3339),
	}
}
