package models

import "github.com/shopspring/decimal"

// AssetMetrics is the fully derived per-asset view: recomputed on every
// read from the derived state plus the current price snapshot, never
// stored.
type AssetMetrics struct {
	Ticker             string           `json:"ticker"`
	Category           string           `json:"category"`
	DeclaredWeight     float64          `json:"declared_weight"`
	CumulativeInvested decimal.Decimal  `json:"cumulative_invested"`
	CumulativeQty      decimal.Decimal  `json:"cumulative_qty"`
	AveragePrice       decimal.Decimal  `json:"average_price"`
	DynamicWeight      decimal.Decimal  `json:"dynamic_weight"`
	Price              *decimal.Decimal `json:"price"`
	MarkedValue        decimal.Decimal  `json:"marked_value"`
	GainLossPercent    decimal.Decimal  `json:"gain_loss_percent"`
}

// PortfolioMetrics aggregates per-asset metrics with portfolio totals.
// Totals cover only assets holding a non-zero quantity.
type PortfolioMetrics struct {
	Assets               []AssetMetrics  `json:"assets"`
	TotalInvested        decimal.Decimal `json:"total_invested"`
	TotalValue           decimal.Decimal `json:"total_value"`
	TotalGainLossPercent decimal.Decimal `json:"total_gain_loss_percent"`
}

// SeriesPoint is one chart point: invested-to-date and marked-value-to-
// date as of the end of one period.
type SeriesPoint struct {
	Period      string          `json:"period"` // YYYY-MM-DD
	Invested    decimal.Decimal `json:"invested"`
	MarkedValue decimal.Decimal `json:"marked_value"`
	GainLoss    decimal.Decimal `json:"gain_loss"`
}
