package interfaces

import (
	"context"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
)

// PriceFetcher resolves a set of tickers to current prices. Tickers whose
// category cannot be fetched resolve to nil entries; partial success is
// the normal case, not an error state. The returned error, when non-nil,
// describes the degraded categories and accompanies a usable result.
type PriceFetcher interface {
	FetchMany(ctx context.Context, tickers []string) (models.PriceMap, error)
}

// LedgerService owns the operation ledger and its derived projection.
type LedgerService interface {
	// Operations returns a copy of the current ledger.
	Operations() []models.Operation

	// Append validates an operation and appends it to the ledger.
	// It returns the new operation's ledger position.
	Append(ctx context.Context, op models.Operation) (int, error)

	// Delete removes the operation at the given ledger position.
	Delete(ctx context.Context, index int) error

	// Derive recomputes the per-asset accumulated state from the full
	// current ledger.
	Derive() []models.DerivedAssetState

	// Catalog returns the static asset catalog.
	Catalog() []models.AssetDefinition
}
