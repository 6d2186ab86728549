package metrics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func state(ticker string, buckets map[string][2]string) models.DerivedAssetState {
	periods := make(map[string]models.PeriodBucket, len(buckets))
	for key, pair := range buckets {
		periods[key] = models.PeriodBucket{Amount: dec(pair[0]), Qty: dec(pair[1])}
	}
	return models.DerivedAssetState{
		Definition: models.AssetDefinition{Ticker: ticker, Category: "Equities Growth (CEDEARs)"},
		Periods:    periods,
	}
}

func snapshotWith(prices map[string]*decimal.Decimal) models.PriceSnapshot {
	return models.PriceSnapshot{State: models.PriceStateReady, Prices: prices}
}

func TestAveragePrice_TruncatesNotRounds(t *testing.T) {
	// 10 / 3 = 3.3333... truncated to 3.333, never rounded up.
	st := state("AMZND", map[string][2]string{"2024-01-01": {"10", "3"}})
	got := AveragePrice(st)
	if !got.Equal(dec("3.333")) {
		t.Errorf("AveragePrice = %s, want 3.333", got)
	}
}

func TestAveragePrice_ZeroQty(t *testing.T) {
	st := state("AMZND", map[string][2]string{"2024-01-01": {"100", "0"}})
	if got := AveragePrice(st); !got.IsZero() {
		t.Errorf("AveragePrice with zero qty = %s, want 0", got)
	}
}

func TestGainLossPercent_Scenario(t *testing.T) {
	// Invested 100 for 10 units, price now 12: marked 120, gain +20.00%.
	st := state("AMZND", map[string][2]string{"2024-01-01": {"100", "10"}})
	got := GainLossPercent(st, decPtr("12"))
	if !got.Equal(dec("20")) {
		t.Errorf("GainLossPercent = %s, want 20", got)
	}
}

func TestGainLossPercent_TruncatesNotRounds(t *testing.T) {
	// Invested 300 for 3 units, price 100.999: marked 302.997,
	// gain 0.999% which must truncate to 0.99, not round to 1.00.
	st := state("AMZND", map[string][2]string{"2024-01-01": {"300", "3"}})
	got := GainLossPercent(st, decPtr("100.999"))
	if !got.Equal(dec("0.99")) {
		t.Errorf("GainLossPercent = %s, want 0.99", got)
	}
}

func TestGainLossPercent_FixedUnitAlwaysZero(t *testing.T) {
	// Bonds and FCIs are never marked against a per-unit quote.
	for _, tk := range []string{"GD30D", "Ciclo Nova II Clase A"} {
		st := state(tk, map[string][2]string{"2024-01-01": {"1000", "1"}})
		if got := GainLossPercent(st, decPtr("9999")); !got.IsZero() {
			t.Errorf("GainLossPercent(%s) = %s, want 0", tk, got)
		}
	}
}

func TestGainLossPercent_ZeroInvested(t *testing.T) {
	st := state("AMZND", map[string][2]string{})
	if got := GainLossPercent(st, decPtr("12")); !got.IsZero() {
		t.Errorf("GainLossPercent with no investment = %s, want 0", got)
	}
}

func TestMarkedValue(t *testing.T) {
	equity := state("AMZND", map[string][2]string{"2024-01-01": {"100", "10"}})
	bond := state("GD30D", map[string][2]string{"2024-01-01": {"500", "1"}})

	if got := MarkedValue(equity, decPtr("12")); !got.Equal(dec("120")) {
		t.Errorf("equity MarkedValue = %s, want 120", got)
	}
	if got := MarkedValue(equity, nil); !got.IsZero() {
		t.Errorf("equity MarkedValue without price = %s, want 0", got)
	}
	// Fixed-unit assets are carried at cost even when a quote exists.
	if got := MarkedValue(bond, decPtr("9999")); !got.Equal(dec("500")) {
		t.Errorf("bond MarkedValue = %s, want 500", got)
	}
}

func TestDynamicWeight(t *testing.T) {
	if got := DynamicWeight(dec("100"), dec("300")); !got.Equal(dec("33.33")) {
		t.Errorf("DynamicWeight = %s, want 33.33", got)
	}
	if got := DynamicWeight(dec("100"), decimal.Zero); !got.IsZero() {
		t.Errorf("DynamicWeight with empty portfolio = %s, want 0", got)
	}
}

func TestCompute_AggregatesSkipZeroQtyAssets(t *testing.T) {
	states := []models.DerivedAssetState{
		state("AMZND", map[string][2]string{"2024-01-01": {"100", "10"}}),
		state("MSFTD", map[string][2]string{}), // never bought
	}
	snapshot := snapshotWith(map[string]*decimal.Decimal{
		"AMZND": decPtr("12"),
		"MSFTD": decPtr("500"),
	})

	got := Compute(states, snapshot)

	if !got.TotalInvested.Equal(dec("100")) {
		t.Errorf("TotalInvested = %s, want 100", got.TotalInvested)
	}
	if !got.TotalValue.Equal(dec("120")) {
		t.Errorf("TotalValue = %s, want 120", got.TotalValue)
	}
	if !got.TotalGainLossPercent.Equal(dec("20")) {
		t.Errorf("TotalGainLossPercent = %s, want 20", got.TotalGainLossPercent)
	}
	if len(got.Assets) != 2 {
		t.Fatalf("expected metrics for every asset, got %d", len(got.Assets))
	}
}

func TestCompute_EmptyPortfolio(t *testing.T) {
	states := []models.DerivedAssetState{
		state("AMZND", map[string][2]string{}),
	}
	got := Compute(states, snapshotWith(nil))

	if !got.TotalInvested.IsZero() || !got.TotalValue.IsZero() || !got.TotalGainLossPercent.IsZero() {
		t.Errorf("empty portfolio totals must all be 0, got %s/%s/%s",
			got.TotalInvested, got.TotalValue, got.TotalGainLossPercent)
	}
	if !got.Assets[0].DynamicWeight.IsZero() {
		t.Errorf("DynamicWeight with no capital = %s, want 0", got.Assets[0].DynamicWeight)
	}
}

func TestCompute_MissingPriceCountsAsZeroValue(t *testing.T) {
	states := []models.DerivedAssetState{
		state("AMZND", map[string][2]string{"2024-01-01": {"100", "10"}}),
	}
	got := Compute(states, snapshotWith(map[string]*decimal.Decimal{}))

	if !got.TotalValue.IsZero() {
		t.Errorf("TotalValue without prices = %s, want 0", got.TotalValue)
	}
	if !got.TotalGainLossPercent.Equal(dec("-100")) {
		t.Errorf("TotalGainLossPercent = %s, want -100", got.TotalGainLossPercent)
	}
}

func TestCompute_FixedUnitKeepsAggregatesCoherent(t *testing.T) {
	states := []models.DerivedAssetState{
		state("GD30D", map[string][2]string{"2024-01-01": {"1000", "1"}}),
	}
	got := Compute(states, snapshotWith(nil))

	if !got.TotalValue.Equal(dec("1000")) {
		t.Errorf("fixed-unit TotalValue = %s, want 1000", got.TotalValue)
	}
	if !got.TotalGainLossPercent.IsZero() {
		t.Errorf("fixed-unit TotalGainLossPercent = %s, want 0", got.TotalGainLossPercent)
	}
}
