// Package di provides dependency injection factories for creating application components.
package di

import (
	"stock_dashboard/internal/platform/config"
	"stock_dashboard/internal/platform/externalapi/gsheets"
	"stock_dashboard/internal/platform/externalapi/twelvedata"
	infrahttp "stock_dashboard/internal/platform/http"
	"stock_dashboard/internal/platform/ratelimiter"
)

// NewMarket creates a fully configured TwelveDataMarket with a retrying REST client.
func NewMarket(cfg config.TwelveDataConfig) *twelvedata.TwelveDataMarket {
	tdCfg := twelvedata.Config{
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Exchange: cfg.Exchange,
	}
	client := infrahttp.NewRestyClient(infrahttp.RestyOptions{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	return twelvedata.NewTwelveDataMarket(tdCfg, client)
}

// NewMarketLimiter creates the limiter shared by every Twelve Data call.
func NewMarketLimiter(cfg config.TwelveDataConfig) *ratelimiter.RateLimiter {
	return ratelimiter.NewPerMinute("twelvedata", cfg.RatePerMinute)
}

// NewSheetsClient creates the spreadsheet client on top of the shared HTTP transport.
func NewSheetsClient(cfg config.SheetsConfig) *gsheets.Client {
	return gsheets.NewClient(gsheets.Config{
		SpreadsheetName: cfg.Name,
		SheetsEndpoint:  cfg.SheetsEndpoint,
		DriveEndpoint:   cfg.DriveEndpoint,
		Timeout:         cfg.Timeout,
	}, infrahttp.NewHTTPClient(cfg.Timeout))
}
