// Package ledgerfs implements file-based JSON storage for the operation
// ledger.
package ledgerfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/common"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/interfaces"
	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
)

const ledgerFile = "operations.json"

// Store persists the operation sequence as a single JSON file, replaced
// atomically on every save so a crash never leaves a half-written ledger.
type Store struct {
	path   string
	logger *common.Logger
}

// NewStore creates a ledger store rooted at the given directory.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger store path %s: %w", path, err)
	}

	logger.Info().Str("path", path).Msg("Ledger store opened")
	return &Store{
		path:   path,
		logger: logger,
	}, nil
}

// Load returns the persisted operation sequence. A missing ledger file
// yields an empty sequence.
func (s *Store) Load(_ context.Context) ([]models.Operation, error) {
	data, err := os.ReadFile(filepath.Join(s.path, ledgerFile))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Operation{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	var ops []models.Operation
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, fmt.Errorf("failed to parse ledger file: %w", err)
	}
	if ops == nil {
		ops = []models.Operation{}
	}
	return ops, nil
}

// Save persists the full operation sequence, replacing the previous file
// atomically.
func (s *Store) Save(_ context.Context, ops []models.Operation) error {
	data, err := json.MarshalIndent(ops, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	target := filepath.Join(s.path, ledgerFile)

	tmpFile, err := os.CreateTemp(s.path, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Ensure Store implements LedgerStore
var _ interfaces.LedgerStore = (*Store)(nil)
