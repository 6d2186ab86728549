// Package prices resolves portfolio tickers to current market prices and
// caches them behind a freshness window.
package prices

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/common"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/interfaces"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/ticker"
)

// Service implements PriceFetcher on top of a MarketDataClient.
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
}

// NewService creates a new price acquisition service.
func NewService(client interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// FetchMany resolves the given tickers to prices. Tickers are partitioned
// by category; non-retrievable and unclassified tickers resolve to nil
// without a network call. Each distinct category is fetched concurrently,
// and a category whose fetch exhausts its retries resolves only its own
// tickers to nil while other categories' results are kept. The returned error
// joins the per-category failures and accompanies the partial result; it
// is a notice, not a failure of the call.
func (s *Service) FetchMany(ctx context.Context, tickers []string) (models.PriceMap, error) {
	results := make(models.PriceMap, len(tickers))
	byCategory := make(map[ticker.Category][]string)

	for _, t := range tickers {
		normalized := ticker.Normalize(t)
		results[normalized] = nil

		category, ok := ticker.Classify(normalized)
		if !ok || !category.Retrievable() {
			continue
		}
		byCategory[category] = append(byCategory[category], normalized)
	}

	var (
		mu       sync.Mutex
		failures []error
	)

	g, gctx := errgroup.WithContext(ctx)
	for category, categoryTickers := range byCategory {
		category, categoryTickers := category, categoryTickers
		g.Go(func() error {
			quotes, err := s.client.FetchCategory(gctx, category)
			if err != nil {
				s.logger.Warn().
					Str("category", string(category)).
					Err(err).
					Msg("category fetch failed, resolving its tickers to absent")
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
				return nil // partial success is the normal case
			}

			bySymbol := make(map[string]models.InstrumentQuote, len(quotes))
			for _, q := range quotes {
				bySymbol[ticker.Normalize(q.Symbol)] = q
			}

			mu.Lock()
			defer mu.Unlock()
			for _, t := range categoryTickers {
				if q, ok := bySymbol[t]; ok {
					if price, usable := q.ClosePrice(); usable {
						results[t] = &price
					}
				}
			}
			return nil
		})
	}
	g.Wait()

	return results, errors.Join(failures...)
}

// Ensure Service implements PriceFetcher
var _ interfaces.PriceFetcher = (*Service)(nil)
