package prices

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/common"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/interfaces"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/ticker"
)

// Cache wraps a PriceFetcher with a time-boxed cache keyed by the exact
// set of requested tickers. Stale data keeps being served while a
// revalidation runs; revalidation happens only on the freshness timer or
// an explicit manual refresh, never because of a read. Cache state is
// replaced wholesale on refresh, never edited in place.
type Cache struct {
	fetcher interfaces.PriceFetcher
	ttl     time.Duration
	logger  *common.Logger
	now     func() time.Time // injectable clock for testing

	group singleflight.Group // at-most-one in-flight fetch per key

	mu        sync.Mutex
	key       string
	hasData   bool
	prices    models.PriceMap
	fetchedAt time.Time
	failErr   error  // last fetch yielded nothing usable
	notice    string // last fetch degraded some categories
	inflight  int
}

// NewCache creates a price cache with the given freshness window.
func NewCache(fetcher interfaces.PriceFetcher, ttl time.Duration, logger *common.Logger) *Cache {
	if ttl <= 0 {
		ttl = common.FreshnessPrices
	}
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// TTL returns the freshness window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Snapshot returns the current cached prices for the given ticker set.
// The first request for a key performs the initial fetch; afterwards
// reads never trigger network activity; stale data is served until the
// timer or a manual refresh revalidates it. Changing the ticker set
// supersedes the previous key: its data is dropped and any fetch still in
// flight for it is discarded on arrival.
func (c *Cache) Snapshot(ctx context.Context, tickers []string) models.PriceSnapshot {
	key, normalized := keyFor(tickers)

	c.mu.Lock()
	c.rekeyLocked(key)
	needsInitial := !c.hasData && c.inflight == 0 && c.failErr == nil && key != ""
	c.mu.Unlock()

	if needsInitial {
		return c.fetch(ctx, key, normalized)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Refresh forces a fetch for the given ticker set. Concurrent refreshes
// for the same key share a single in-flight fetch.
func (c *Cache) Refresh(ctx context.Context, tickers []string) models.PriceSnapshot {
	key, normalized := keyFor(tickers)

	c.mu.Lock()
	c.rekeyLocked(key)
	c.mu.Unlock()

	if key == "" {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}
	return c.fetch(ctx, key, normalized)
}

// RefreshIfStale revalidates only when the freshness window has elapsed.
// This is the timer entry point.
func (c *Cache) RefreshIfStale(ctx context.Context, tickers []string) models.PriceSnapshot {
	key, _ := keyFor(tickers)

	c.mu.Lock()
	fresh := c.key == key && c.hasData && c.now().Sub(c.fetchedAt) < c.ttl
	c.mu.Unlock()

	if fresh {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.snapshotLocked()
	}
	return c.Refresh(ctx, tickers)
}

// fetch runs (or joins) the in-flight fetch for key and stores the result
// unless the key has been superseded meanwhile.
func (c *Cache) fetch(ctx context.Context, key string, tickers []string) models.PriceSnapshot {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()

	type fetchResult struct {
		prices models.PriceMap
		err    error
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		prices, err := c.fetcher.FetchMany(ctx, tickers)
		return fetchResult{prices: prices, err: err}, nil
	})
	res := v.(fetchResult)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--

	if key != c.key {
		// Superseded: the desired ticker set changed while this fetch was
		// in flight. Its result must not land under the old key.
		c.logger.Debug().Str("key", key).Msg("price fetch superseded, discarding result")
		return c.snapshotLocked()
	}

	if res.err != nil && !hasAnyPrice(res.prices) {
		// Nothing usable came back. Keep serving whatever we had.
		c.failErr = res.err
		c.logger.Warn().Err(res.err).Msg("price refresh failed, serving last-known prices")
		return c.snapshotLocked()
	}

	c.prices = res.prices
	c.fetchedAt = c.now()
	c.hasData = true
	c.failErr = nil
	c.notice = ""
	if res.err != nil {
		c.notice = res.err.Error()
	}
	return c.snapshotLocked()
}

// rekeyLocked switches the cache to a new desired ticker set, dropping
// state that belonged to the previous set.
func (c *Cache) rekeyLocked(key string) {
	if key == c.key {
		return
	}
	c.key = key
	c.hasData = false
	c.prices = nil
	c.fetchedAt = time.Time{}
	c.failErr = nil
	c.notice = ""
}

func (c *Cache) snapshotLocked() models.PriceSnapshot {
	snap := models.PriceSnapshot{
		Prices:    clonePrices(c.prices),
		FetchedAt: c.fetchedAt,
		Notice:    c.notice,
	}

	switch {
	case c.failErr != nil:
		snap.State = models.PriceStateError
		snap.Notice = c.failErr.Error()
	case !c.hasData && c.inflight > 0:
		snap.State = models.PriceStateLoading
	case !c.hasData:
		snap.State = models.PriceStateEmpty
	case c.now().Sub(c.fetchedAt) < c.ttl:
		snap.State = models.PriceStateReady
	default:
		snap.State = models.PriceStateStale
	}
	return snap
}

// keyFor builds the cache key for a ticker set: normalized, sorted and
// deduplicated, so the key identifies the exact set regardless of order.
func keyFor(tickers []string) (string, []string) {
	seen := make(map[string]struct{}, len(tickers))
	normalized := make([]string, 0, len(tickers))
	for _, t := range tickers {
		n := ticker.Normalize(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		normalized = append(normalized, n)
	}
	sort.Strings(normalized)
	return strings.Join(normalized, ","), normalized
}

func hasAnyPrice(m models.PriceMap) bool {
	for _, p := range m {
		if p != nil {
			return true
		}
	}
	return false
}

func clonePrices(m models.PriceMap) models.PriceMap {
	if m == nil {
		return nil
	}
	out := make(models.PriceMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
