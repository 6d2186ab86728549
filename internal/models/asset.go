package models

import "github.com/shopspring/decimal"

// AssetDefinition is static catalog reference data for one instrument.
// It is immutable and never affected by operations.
type AssetDefinition struct {
	ID             int     `json:"id"`
	Category       string  `json:"category"`
	Ticker         string  `json:"ticker"`
	DeclaredWeight float64 `json:"declared_weight"` // target percent from the plan
}

// PeriodBucket accumulates contributions for one ticker within one
// period. Amount and Qty only grow as operations are folded in.
type PeriodBucket struct {
	Amount decimal.Decimal `json:"amount"`
	Qty    decimal.Decimal `json:"qty"`
}

// DerivedAssetState is the per-asset accumulated position computed from
// the ledger. It is recomputed from scratch from the full operation
// sequence whenever the sequence changes, never patched incrementally, so
// it can never diverge from the ledger.
type DerivedAssetState struct {
	Definition AssetDefinition         `json:"definition"`
	Periods    map[string]PeriodBucket `json:"periods"`
}

// DefaultCatalog returns the static asset catalog.
//
// Tickers use the USD-settled (D-suffixed) symbols so they match the
// market data feed. The two ONs are listed individually so each can be
// routed and priced on its own.
func DefaultCatalog() []AssetDefinition {
	return []AssetDefinition{
		{ID: 1, Category: "Equities Growth (CEDEARs)", Ticker: "AMZND", DeclaredWeight: 13.29},
		{ID: 2, Category: "Equities Growth (CEDEARs)", Ticker: "MSFTD", DeclaredWeight: 12.98},
		{ID: 3, Category: "Equities Growth (CEDEARs)", Ticker: "JPMD", DeclaredWeight: 8.40},
		{ID: 4, Category: "Equities Growth (CEDEARs)", Ticker: "XLFD", DeclaredWeight: 8.22},
		{ID: 5, Category: "Equities Growth (CEDEARs)", Ticker: "GSD", DeclaredWeight: 0},
		{ID: 6, Category: "Equities Value/Defensivos (CEDEARs)", Ticker: "UNHD", DeclaredWeight: 8.58},
		{ID: 7, Category: "Equities Value/Defensivos (CEDEARs)", Ticker: "XLVD", DeclaredWeight: 8.64},
		{ID: 8, Category: "Equities Value/Defensivos (CEDEARs)", Ticker: "CATD", DeclaredWeight: 0},
		{ID: 9, Category: "Equities Value/Defensivos (CEDEARs)", Ticker: "PFED", DeclaredWeight: 0},
		{ID: 10, Category: "Equities Value/Defensivos (CEDEARs)", Ticker: "BIIBD", DeclaredWeight: 0},
		{ID: 11, Category: "Equities Value/Defensivos (CEDEARs)", Ticker: "MMMD", DeclaredWeight: 0},
		{ID: 12, Category: "Equities Value/Defensivos (CEDEARs)", Ticker: "DIAD", DeclaredWeight: 0},
		{ID: 13, Category: "Equities Value/Defensivos (CEDEARs)", Ticker: "JNJD", DeclaredWeight: 6.73},
		{ID: 14, Category: "FCI Líquido", Ticker: "Ciclo Nova II Clase A", DeclaredWeight: 6.28},
		{ID: 15, Category: "Fixed Income Corporativo", Ticker: "YPFDD", DeclaredWeight: 12.17},
		{ID: 16, Category: "Fixed Income Corporativo", Ticker: "PAMPD", DeclaredWeight: 9.10},
		{ID: 17, Category: "Fixed Income Corporativo", Ticker: "TXARD", DeclaredWeight: 0},
		{ID: 18, Category: "Fixed Income Corporativo", Ticker: "YM39D", DeclaredWeight: 0},
		{ID: 19, Category: "Fixed Income Corporativo", Ticker: "YMCID", DeclaredWeight: 0},
		{ID: 20, Category: "Soberanos", Ticker: "GD30D", DeclaredWeight: 5.62},
		{ID: 21, Category: "Soberanos", Ticker: "GD35D", DeclaredWeight: 0},
	}
}

// CatalogTickers returns the ticker symbols of a catalog in order.
func CatalogTickers(catalog []AssetDefinition) []string {
	tickers := make([]string, len(catalog))
	for i, def := range catalog {
		tickers[i] = def.Ticker
	}
	return tickers
}

// CatalogHasTicker reports whether the catalog contains the given ticker.
func CatalogHasTicker(catalog []AssetDefinition, ticker string) bool {
	for _, def := range catalog {
		if def.Ticker == ticker {
			return true
		}
	}
	return false
}
