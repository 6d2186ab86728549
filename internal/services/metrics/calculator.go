// Package metrics computes portfolio metrics from derived asset state and
// current prices. Everything here is a pure function recomputed on every
// read; nothing is stored.
//
// All monetary sums use exact decimal accumulation and every presented
// division is truncated toward zero, never rounded: truncation cannot
// overstate cost basis.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/ticker"
)

// Display precision for derived ratios.
const (
	pricePrecision   = 3 // average price
	percentPrecision = 2 // weights and gain/loss
)

var hundred = decimal.NewFromInt(100)

// CumulativeInvested returns the exact decimal sum of all bucket amounts.
func CumulativeInvested(state models.DerivedAssetState) decimal.Decimal {
	total := decimal.Zero
	for _, bucket := range state.Periods {
		total = total.Add(bucket.Amount)
	}
	return total
}

// CumulativeQty returns the exact decimal sum of all bucket quantities.
func CumulativeQty(state models.DerivedAssetState) decimal.Decimal {
	total := decimal.Zero
	for _, bucket := range state.Periods {
		total = total.Add(bucket.Qty)
	}
	return total
}

// AveragePrice returns invested/qty truncated to 3 decimal places, or 0
// when the quantity is 0. The division runs at full decimal precision
// before truncating.
func AveragePrice(state models.DerivedAssetState) decimal.Decimal {
	qty := CumulativeQty(state)
	if qty.IsZero() {
		return decimal.Zero
	}
	return CumulativeInvested(state).Div(qty).Truncate(pricePrecision)
}

// DynamicWeight returns the asset's actual share of capital deployed as a
// percentage truncated to 2 decimals, or 0 when nothing is invested yet.
// This is the realized weight, not the declared target weight.
func DynamicWeight(cumulative, totalInvested decimal.Decimal) decimal.Decimal {
	if totalInvested.IsZero() {
		return decimal.Zero
	}
	return cumulative.Mul(hundred).Div(totalInvested).Truncate(percentPrecision)
}

// GainLossPercent returns the asset's gain/loss percentage truncated to 2
// decimals. Fixed-unit categories always report 0 regardless of price:
// their quantity is a single lump-sum unit, not a share count, so they
// are not marked to market against a per-unit quote. Assets with nothing
// invested also report 0.
func GainLossPercent(state models.DerivedAssetState, price *decimal.Decimal) decimal.Decimal {
	if category, ok := ticker.Classify(state.Definition.Ticker); ok && category.FixedUnit() {
		return decimal.Zero
	}

	invested := CumulativeInvested(state)
	if invested.IsZero() {
		return decimal.Zero
	}

	marked := MarkedValue(state, price)
	return marked.Sub(invested).Mul(hundred).Div(invested).Truncate(percentPrecision)
}

// MarkedValue returns qty*price for the asset. A fixed-unit asset is
// carried at its invested amount, and an asset without a usable price is
// carried at 0.
func MarkedValue(state models.DerivedAssetState, price *decimal.Decimal) decimal.Decimal {
	if category, ok := ticker.Classify(state.Definition.Ticker); ok && category.FixedUnit() {
		return CumulativeInvested(state)
	}
	if price == nil {
		return decimal.Zero
	}
	return CumulativeQty(state).Mul(*price)
}

// Compute derives the full per-asset and aggregate metric set from the
// derived states and the current price snapshot. Aggregate totals cover
// only assets holding a non-zero quantity.
func Compute(states []models.DerivedAssetState, snapshot models.PriceSnapshot) models.PortfolioMetrics {
	totalInvested := decimal.Zero
	totalValue := decimal.Zero

	// First pass for the invested total so per-asset weights can be
	// computed in one sweep below.
	allInvested := decimal.Zero
	for _, state := range states {
		allInvested = allInvested.Add(CumulativeInvested(state))
	}

	assets := make([]models.AssetMetrics, len(states))
	for i, state := range states {
		price := snapshot.Price(ticker.Normalize(state.Definition.Ticker))
		invested := CumulativeInvested(state)
		qty := CumulativeQty(state)
		marked := MarkedValue(state, price)

		assets[i] = models.AssetMetrics{
			Ticker:             state.Definition.Ticker,
			Category:           state.Definition.Category,
			DeclaredWeight:     state.Definition.DeclaredWeight,
			CumulativeInvested: invested,
			CumulativeQty:      qty,
			AveragePrice:       AveragePrice(state),
			DynamicWeight:      DynamicWeight(invested, allInvested),
			Price:              price,
			MarkedValue:        marked,
			GainLossPercent:    GainLossPercent(state, price),
		}

		if !qty.IsZero() {
			totalInvested = totalInvested.Add(invested)
			totalValue = totalValue.Add(marked)
		}
	}

	totalGainLoss := decimal.Zero
	if !totalInvested.IsZero() {
		totalGainLoss = totalValue.Sub(totalInvested).Mul(hundred).Div(totalInvested).Truncate(percentPrecision)
	}

	return models.PortfolioMetrics{
		Assets:               assets,
		TotalInvested:        totalInvested,
		TotalValue:           totalValue,
		TotalGainLossPercent: totalGainLoss,
	}
}
