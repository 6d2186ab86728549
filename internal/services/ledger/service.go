package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/common"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/interfaces"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
)

// Service implements LedgerService: it validates and records operations,
// persists them through the LedgerStore, and exposes the derived
// projection. Mutations replace the in-memory sequence atomically, so
// readers never observe a half-updated ledger.
type Service struct {
	store   interfaces.LedgerStore
	catalog []models.AssetDefinition
	logger  *common.Logger

	mu  sync.RWMutex
	ops []models.Operation
}

// NewService creates a ledger service and loads the persisted ledger.
func NewService(ctx context.Context, store interfaces.LedgerStore, catalog []models.AssetDefinition, logger *common.Logger) (*Service, error) {
	ops, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	logger.Info().Int("operations", len(ops)).Msg("Ledger loaded")

	return &Service{
		store:   store,
		catalog: catalog,
		logger:  logger,
		ops:     ops,
	}, nil
}

// Catalog returns the static asset catalog.
func (s *Service) Catalog() []models.AssetDefinition {
	return s.catalog
}

// Operations returns a copy of the current ledger.
func (s *Service) Operations() []models.Operation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ops := make([]models.Operation, len(s.ops))
	copy(ops, s.ops)
	return ops
}

// Append validates an operation, appends it to the ledger, and persists
// the new sequence. Invalid operations never enter the ledger.
func (s *Service) Append(ctx context.Context, op models.Operation) (int, error) {
	if err := op.Validate(); err != nil {
		return 0, err
	}
	if !models.CatalogHasTicker(s.catalog, op.Ticker) {
		return 0, &models.ValidationError{Field: "ticker", Message: fmt.Sprintf("unknown ticker %q", op.Ticker)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Operation, len(s.ops), len(s.ops)+1)
	copy(next, s.ops)
	next = append(next, op)

	if err := s.store.Save(ctx, next); err != nil {
		return 0, fmt.Errorf("failed to save ledger: %w", err)
	}
	s.ops = next

	index := len(next) - 1
	s.logger.Info().
		Str("ticker", op.Ticker).
		Str("date", op.Date).
		Int("index", index).
		Msg("Operation recorded")
	return index, nil
}

// Delete removes the operation at the given ledger position and persists
// the new sequence. Re-deriving afterwards reproduces the state as if the
// operation never existed.
func (s *Service) Delete(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.ops) {
		return &models.ValidationError{Field: "index", Message: fmt.Sprintf("no operation at position %d", index)}
	}

	next := make([]models.Operation, 0, len(s.ops)-1)
	next = append(next, s.ops[:index]...)
	next = append(next, s.ops[index+1:]...)

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	s.ops = next

	s.logger.Info().Int("index", index).Int("remaining", len(next)).Msg("Operation deleted")
	return nil
}

// Derive recomputes the per-asset accumulated state from the full current
// ledger.
func (s *Service) Derive() []models.DerivedAssetState {
	s.mu.RLock()
	ops := s.ops
	s.mu.RUnlock()
	return Derive(ops, s.catalog)
}

// Ensure Service implements LedgerService
var _ interfaces.LedgerService = (*Service)(nil)
