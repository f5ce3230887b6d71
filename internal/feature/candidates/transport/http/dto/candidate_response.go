package dto

import (
	"time"

	"stock_dashboard/internal/feature/candidates/domain/entity"
)

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// CandidateResponse は候補銘柄1行のレスポンスDTOです。
type CandidateResponse struct {
	DiscoveryDate string            `json:"discoveryDate"` // 탐색일
	SymbolName    string            `json:"symbolName"`    // 종목명
	SymbolCode    string            `json:"symbolCode"`    // 코드
	ProfitPercent float64           `json:"profitPercent"` // 수익률(%)
	LivePrice     string            `json:"livePrice"`     // 현재가(Live)
	CaptureReason string            `json:"captureReason,omitempty"`
	CapturePrice  string            `json:"capturePrice,omitempty"`
	Cells         map[string]string `json:"cells,omitempty"`
}

// SnapshotResponse はシートのスナップショットのレスポンスDTOです。
type SnapshotResponse struct {
	Status     string              `json:"status"`
	Count      int                 `json:"count"`
	Columns    []string            `json:"columns"`
	Candidates []CandidateResponse `json:"candidates"`
	Error      string              `json:"error,omitempty"`
	ErrorKind  string              `json:"errorKind,omitempty"`
	FetchedAt  string              `json:"fetchedAt"`
}

// NewCandidateResponse はエンティティをレスポンスDTOへ変換します。
func NewCandidateResponse(r entity.CandidateRecord) CandidateResponse {
	return CandidateResponse{
		DiscoveryDate: r.DiscoveryDate,
		SymbolName:    r.SymbolName,
		SymbolCode:    r.SymbolCode,
		ProfitPercent: r.ProfitPercent,
		LivePrice:     r.LivePrice,
		CaptureReason: r.CaptureReason,
		CapturePrice:  r.CapturePrice,
		Cells:         r.Cells,
	}
}

// NewSnapshotResponse はスナップショットをレスポンスDTOへ変換します。
func NewSnapshotResponse(s entity.Snapshot) SnapshotResponse {
	out := make([]CandidateResponse, 0, len(s.Records))
	for _, r := range s.Records {
		out = append(out, NewCandidateResponse(r))
	}
	columns := s.Columns
	if columns == nil {
		columns = []string{}
	}
	return SnapshotResponse{
		Status:     string(s.Status),
		Count:      len(out),
		Columns:    columns,
		Candidates: out,
		Error:      s.Error,
		ErrorKind:  s.ErrorKind,
		FetchedAt:  s.FetchedAt.UTC().Format(time.RFC3339),
	}
}
