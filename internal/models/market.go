package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentQuote is one element of a data912 live feed response.
// Numeric fields are nullable on the wire; unknown fields are ignored.
type InstrumentQuote struct {
	Symbol    string   `json:"symbol"`
	BidPrice  *float64 `json:"px_bid"`
	AskPrice  *float64 `json:"px_ask"`
	BidQty    *float64 `json:"q_bid"`
	AskQty    *float64 `json:"q_ask"`
	Close     *float64 `json:"c"`
	Volume    *float64 `json:"v"`
	OpenQty   *float64 `json:"q_op"`
	PctChange *float64 `json:"pct_change"`
}

// ClosePrice returns the instrument's usable price. Only the official
// close field counts; an absent or non-positive close means the
// instrument has no usable price. There is no bid/ask fallback.
func (q InstrumentQuote) ClosePrice() (decimal.Decimal, bool) {
	if q.Close == nil || *q.Close <= 0 {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(*q.Close), true
}

// PriceMap maps a normalized ticker to its current price, or nil when the
// instrument has no usable price (unclassified, non-retrievable category,
// missing from the feed, or its category fetch failed).
type PriceMap map[string]*decimal.Decimal

// PriceState describes the lifecycle of the price cache entry.
type PriceState string

const (
	// PriceStateEmpty means nothing has been requested yet.
	PriceStateEmpty PriceState = "empty"
	// PriceStateLoading means the first fetch is in flight and there is no
	// data to show.
	PriceStateLoading PriceState = "loading"
	// PriceStateReady means data is present and within the freshness window.
	PriceStateReady PriceState = "ready"
	// PriceStateStale means data is present but the freshness window has
	// elapsed; the previous data is still served while a background fetch
	// runs.
	PriceStateStale PriceState = "stale-revalidating"
	// PriceStateError means the last fetch attempt failed; previously
	// cached data, if any, is still served.
	PriceStateError PriceState = "error"
)

// PriceSnapshot is a read-only view of the price cache. Consumers never
// mutate it; the cache replaces it wholesale on refresh.
type PriceSnapshot struct {
	State     PriceState `json:"state"`
	Prices    PriceMap   `json:"prices"`
	FetchedAt time.Time  `json:"fetched_at"`
	Notice    string     `json:"notice,omitempty"` // non-fatal fetch degradation, if any
}

// Price returns the cached price for a ticker, or nil when absent.
func (s PriceSnapshot) Price(ticker string) *decimal.Decimal {
	if s.Prices == nil {
		return nil
	}
	return s.Prices[ticker]
}
