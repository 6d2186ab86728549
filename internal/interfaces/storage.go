package interfaces

import (
	"context"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
)

// LedgerStore is the persistence boundary for the operation ledger. Any
// medium is acceptable as long as it round-trips the operation shape
// exactly.
type LedgerStore interface {
	// Load returns the persisted operation sequence. A store with no
	// prior data returns an empty sequence, not an error.
	Load(ctx context.Context) ([]models.Operation, error)

	// Save persists the full operation sequence, replacing what was
	// there.
	Save(ctx context.Context, ops []models.Operation) error
}
