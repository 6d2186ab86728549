// Package ledger owns the append-only operation ledger and the pure
// projection that turns it into per-asset accumulated state.
package ledger

import (
	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
)

// Derive folds the full operation sequence into per-asset accumulated
// state, one entry per catalog asset in catalog order.
//
// Derive is a pure function: no side effects, deterministic, and
// insensitive to operation ordering. It is the single source of truth for
// asset state: it is always recomputed from scratch here, never
// patched incrementally, so it cannot diverge from the ledger. An asset
// with no matching operations gets an empty bucket map. Operations whose
// date cannot be parsed are skipped; validated ledgers never contain
// them.
func Derive(ops []models.Operation, catalog []models.AssetDefinition) []models.DerivedAssetState {
	states := make([]models.DerivedAssetState, len(catalog))

	for i, def := range catalog {
		periods := make(map[string]models.PeriodBucket)

		for _, op := range ops {
			if op.Ticker != def.Ticker {
				continue
			}
			key, err := op.PeriodKey()
			if err != nil {
				continue
			}
			bucket := periods[key]
			bucket.Amount = bucket.Amount.Add(op.Amount)
			bucket.Qty = bucket.Qty.Add(op.Qty)
			periods[key] = bucket
		}

		states[i] = models.DerivedAssetState{
			Definition: def,
			Periods:    periods,
		}
	}

	return states
}
