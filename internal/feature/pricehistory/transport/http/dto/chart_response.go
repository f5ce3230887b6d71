package dto

import (
	"time"

	"stock_dashboard/internal/feature/pricehistory/domain/entity"
)

// PricePointResponse は終値1件のレスポンスDTOです。
type PricePointResponse struct {
	Date  string  `json:"date"`  // 日付
	Close float64 `json:"close"` // 終値
}

// ChartResponse は銘柄チャートのレスポンスDTOです。
type ChartResponse struct {
	Symbol    string               `json:"symbol"`
	Available bool                 `json:"available"`
	Points    []PricePointResponse `json:"points"`
}

// NewChartResponse はエンティティをレスポンスDTOへ変換します。
func NewChartResponse(c entity.Chart) ChartResponse {
	out := make([]PricePointResponse, 0, len(c.Points))
	for _, p := range c.Points {
		out = append(out, PricePointResponse{
			Date:  p.Date.UTC().Format(time.DateOnly),
			Close: p.Close,
		})
	}
	return ChartResponse{Symbol: c.Symbol, Available: c.Available, Points: out}
}
