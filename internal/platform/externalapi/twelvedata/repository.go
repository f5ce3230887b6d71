package twelvedata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"resty.dev/v3"

	"stock_dashboard/internal/feature/pricehistory/domain/entity"
	"stock_dashboard/internal/feature/pricehistory/usecase"
	"stock_dashboard/internal/platform/externalapi/twelvedata/dto"
)

// TwelveDataMarket はTwelve Data外部APIから日足終値を取得するPriceSource実装です。
type TwelveDataMarket struct {
	cfg    Config
	client *resty.Client
}

// TwelveDataMarketがPriceSourceを実装していることをコンパイル時に検証します。
var _ usecase.PriceSource = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とRESTクライアントでTwelveDataMarketの新しいインスタンスを生成します。
// クライアントのベースURLはcfg.BaseURLで上書きされます。
func NewTwelveDataMarket(cfg Config, client *resty.Client) *TwelveDataMarket {
	cfg = cfg.withDefaults()
	client.SetBaseURL(cfg.BaseURL)
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// GetDailyCloses はfromからtoまでの日足終値を取得します。並び順はAPIの返却順のままです。
func (t *TwelveDataMarket) GetDailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]entity.PricePoint, error) {
	q := map[string]string{
		"symbol":     symbol,
		"interval":   "1day",
		"start_date": from.Format(time.DateOnly),
		"end_date":   to.Format(time.DateOnly),
		"outputsize": "5000",
		"apikey":     t.cfg.APIKey,
	}
	if t.cfg.Exchange != "" {
		q["exchange"] = t.cfg.Exchange
	}

	var body dto.TimeSeriesResponse
	res, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(q).
		SetResult(&body).
		Get("/time_series")
	if err != nil {
		return nil, fmt.Errorf("twelvedata request %s: %w", symbol, err)
	}
	if res.StatusCode() >= 400 {
		return nil, fmt.Errorf("twelvedata http %d", res.StatusCode())
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	points := make([]entity.PricePoint, 0, len(body.Values))
	for _, v := range body.Values {
		// タイムスタンプをパース
		tm, err := time.Parse(time.DateTime, v.Datetime)
		if err != nil {
			tm, err = time.Parse(time.DateOnly, v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		// 終値をパース
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		points = append(points, entity.PricePoint{Date: tm, Close: c})
	}
	return points, nil
}
