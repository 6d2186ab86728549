package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/ticker"
)

// TimeSeries produces one point per distinct period across all assets,
// sorted chronologically. Each point replays every bucket whose period
// key is lexicographically <= the point's key. This holds because keys
// are zero-padded year-first strings, so lexicographic order equals
// chronological order.
func TimeSeries(states []models.DerivedAssetState, snapshot models.PriceSnapshot) []models.SeriesPoint {
	periodSet := make(map[string]struct{})
	for _, state := range states {
		for key := range state.Periods {
			periodSet[key] = struct{}{}
		}
	}

	periods := make([]string, 0, len(periodSet))
	for key := range periodSet {
		periods = append(periods, key)
	}
	sort.Strings(periods)

	points := make([]models.SeriesPoint, 0, len(periods))
	for _, period := range periods {
		invested := decimal.Zero
		marked := decimal.Zero

		for _, state := range states {
			price := snapshot.Price(ticker.Normalize(state.Definition.Ticker))
			category, classified := ticker.Classify(state.Definition.Ticker)
			fixedUnit := classified && category.FixedUnit()

			for key, bucket := range state.Periods {
				if key > period {
					continue
				}
				invested = invested.Add(bucket.Amount)
				switch {
				case fixedUnit:
					marked = marked.Add(bucket.Amount)
				case price != nil:
					marked = marked.Add(bucket.Qty.Mul(*price))
				}
			}
		}

		points = append(points, models.SeriesPoint{
			Period:      period,
			Invested:    invested,
			MarkedValue: marked,
			GainLoss:    marked.Sub(invested),
		})
	}

	return points
}
