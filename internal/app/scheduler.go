package app

import (
	"context"
	"time"
)

// runPriceScheduler revalidates the price cache on the freshness
// interval. This timer and the manual refresh endpoint are the only two
// revalidation triggers; reads never cause network activity once data is
// present.
func (a *App) runPriceScheduler(ctx context.Context) {
	interval := a.PriceCache.TTL()
	a.Logger.Info().Dur("interval", interval).Msg("Price scheduler started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info().Msg("Price scheduler stopped")
			return
		case <-ticker.C:
			snap := a.PriceCache.RefreshIfStale(ctx, a.PortfolioTickers())
			a.Logger.Debug().
				Str("state", string(snap.State)).
				Time("fetched_at", snap.FetchedAt).
				Msg("Price revalidation tick")
		}
	}
}
