// Package entity defines the domain models for the price history feature.
package entity

import "time"

// PricePoint is one trading session's closing price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Chart is the recent closing-price series of one symbol, oldest first.
// Available is false when no data could be obtained; the row then renders
// without a chart.
type Chart struct {
	Symbol    string       `json:"symbol"`
	Available bool         `json:"available"`
	Points    []PricePoint `json:"points"`
}

// Absent returns the chart of a symbol without price data.
func Absent(symbol string) Chart {
	return Chart{Symbol: symbol, Points: []PricePoint{}}
}
