// Package interfaces defines service contracts for the tracker
package interfaces

import (
	"context"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/ticker"
)

// MarketDataClient retrieves live instrument quotes per category.
type MarketDataClient interface {
	// FetchCategory retrieves the latest snapshot for every instrument in
	// the category. Transport failures and non-2xx responses are retried
	// internally; exhausting retries yields a *models.DataSourceUnavailable.
	// A malformed payload degrades to an empty result, not an error.
	FetchCategory(ctx context.Context, category ticker.Category) ([]models.InstrumentQuote, error)
}
