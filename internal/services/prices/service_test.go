package prices

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/common"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/ticker"
)

// mockMarketClient serves canned quotes per category and counts fetches.
type mockMarketClient struct {
	quotes map[ticker.Category][]models.InstrumentQuote
	errs   map[ticker.Category]error
	calls  atomic.Int32
}

func (m *mockMarketClient) FetchCategory(_ context.Context, category ticker.Category) ([]models.InstrumentQuote, error) {
	m.calls.Add(1)
	if err, ok := m.errs[category]; ok {
		return nil, err
	}
	return m.quotes[category], nil
}

func quote(symbol string, close float64) models.InstrumentQuote {
	return models.InstrumentQuote{Symbol: symbol, Close: &close}
}

func TestFetchMany_ResolvesAcrossCategories(t *testing.T) {
	client := &mockMarketClient{quotes: map[ticker.Category][]models.InstrumentQuote{
		ticker.CategoryCEDEAR: {quote("AMZND", 123.45), quote("MSFTD", 500)},
		ticker.CategoryBond:   {quote("GD30D", 57.2)},
	}}
	svc := NewService(client, common.NewSilentLogger())

	prices, err := svc.FetchMany(context.Background(), []string{"AMZND", "MSFTD", "GD30D"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prices) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(prices))
	}
	if prices["AMZND"] == nil || prices["AMZND"].String() != "123.45" {
		t.Errorf("AMZND price = %v, want 123.45", prices["AMZND"])
	}
	if prices["GD30D"] == nil || prices["GD30D"].String() != "57.2" {
		t.Errorf("GD30D price = %v, want 57.2", prices["GD30D"])
	}
}

func TestFetchMany_NormalizesInput(t *testing.T) {
	client := &mockMarketClient{quotes: map[ticker.Category][]models.InstrumentQuote{
		ticker.CategoryCEDEAR: {quote("AMZND", 10)},
	}}
	svc := NewService(client, common.NewSilentLogger())

	prices, err := svc.FetchMany(context.Background(), []string{"amznd"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prices["AMZND"] == nil {
		t.Error("lowercase input must resolve under its normalized key")
	}
}

func TestFetchMany_FCIResolvesNilWithoutNetworkCall(t *testing.T) {
	client := &mockMarketClient{}
	svc := NewService(client, common.NewSilentLogger())

	prices, err := svc.FetchMany(context.Background(), []string{"Ciclo Nova II Clase A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price, ok := prices["CICLO NOVA II CLASE A"]; !ok || price != nil {
		t.Errorf("FCI ticker must be present and nil, got %v (present=%v)", price, ok)
	}
	if client.calls.Load() != 0 {
		t.Errorf("FCI resolution made %d network calls, want 0", client.calls.Load())
	}
}

func TestFetchMany_UnknownTickerResolvesNil(t *testing.T) {
	client := &mockMarketClient{}
	svc := NewService(client, common.NewSilentLogger())

	prices, err := svc.FetchMany(context.Background(), []string{"NOPE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price, ok := prices["NOPE"]; !ok || price != nil {
		t.Errorf("unknown ticker must be present and nil, got %v (present=%v)", price, ok)
	}
	if client.calls.Load() != 0 {
		t.Error("unknown ticker must not trigger a fetch")
	}
}

func TestFetchMany_CategoryFailureIsIsolated(t *testing.T) {
	client := &mockMarketClient{
		quotes: map[ticker.Category][]models.InstrumentQuote{
			ticker.CategoryCEDEAR: {quote("AMZND", 123)},
		},
		errs: map[ticker.Category]error{
			ticker.CategoryBond: &models.DataSourceUnavailable{Category: "bond", Cause: errors.New("boom")},
		},
	}
	svc := NewService(client, common.NewSilentLogger())

	prices, err := svc.FetchMany(context.Background(), []string{"AMZND", "GD30D"})
	if err == nil {
		t.Fatal("expected a notice error for the failed category")
	}
	var unavailable *models.DataSourceUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataSourceUnavailable in the joined error, got %v", err)
	}
	if prices["AMZND"] == nil {
		t.Error("healthy category must still resolve")
	}
	if prices["GD30D"] != nil {
		t.Error("failed category's tickers must resolve to nil")
	}
}

func TestFetchMany_AbsentSymbolResolvesNil(t *testing.T) {
	client := &mockMarketClient{quotes: map[ticker.Category][]models.InstrumentQuote{
		ticker.CategoryCEDEAR: {quote("MSFTD", 500)},
	}}
	svc := NewService(client, common.NewSilentLogger())

	prices, err := svc.FetchMany(context.Background(), []string{"AMZND"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prices["AMZND"] != nil {
		t.Error("symbol missing from the feed snapshot must resolve to nil")
	}
}

func TestFetchMany_UnusableCloseResolvesNil(t *testing.T) {
	zero := 0.0
	client := &mockMarketClient{quotes: map[ticker.Category][]models.InstrumentQuote{
		ticker.CategoryCEDEAR: {{Symbol: "AMZND", Close: &zero}},
	}}
	svc := NewService(client, common.NewSilentLogger())

	prices, err := svc.FetchMany(context.Background(), []string{"AMZND"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prices["AMZND"] != nil {
		t.Error("zero close must not be treated as a usable price")
	}
}

func TestFetchMany_OneFetchPerCategory(t *testing.T) {
	client := &mockMarketClient{quotes: map[ticker.Category][]models.InstrumentQuote{
		ticker.CategoryCEDEAR: {quote("AMZND", 1), quote("MSFTD", 2), quote("JPMD", 3)},
	}}
	svc := NewService(client, common.NewSilentLogger())

	_, err := svc.FetchMany(context.Background(), []string{"AMZND", "MSFTD", "JPMD"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.calls.Load() != 1 {
		t.Errorf("3 tickers in one category made %d fetches, want 1", client.calls.Load())
	}
}
