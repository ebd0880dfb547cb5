package memory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pousada/internal/core"
	ports "pousada/internal/sheets"
)

// Fixture file names read by NewFromFiles.
const (
	UnitsFile        = "units.yaml"
	TransactionsFile = "transactions.yaml"
)

// Store keeps units and transactions in memory. It is read-only after
// construction.
type Store struct {
	units []core.Unit
	txs   []core.Transaction
}

var _ ports.Source = (*Store)(nil)

func New(units []core.Unit, txs []core.Transaction) *Store {
	return &Store{
		units: append([]core.Unit(nil), units...),
		txs:   append([]core.Transaction(nil), txs...),
	}
}

// NewFromFiles seeds a store from base/units.yaml and base/transactions.yaml.
// A missing file falls back to the demo data; a malformed one is an error.
func NewFromFiles(base string) (*Store, error) {
	var rawUnits []core.RawUnit
	found, err := readYAML(filepath.Join(base, UnitsFile), &rawUnits)
	if err != nil {
		return nil, err
	}
	if !found {
		rawUnits = demoUnits
	}
	units, err := core.ParseUnits(rawUnits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", UnitsFile, err)
	}

	var rawTxs []core.RawTransaction
	found, err = readYAML(filepath.Join(base, TransactionsFile), &rawTxs)
	if err != nil {
		return nil, err
	}
	if !found {
		rawTxs = demoTransactions
	}
	txs, err := core.ParseTransactions(rawTxs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", TransactionsFile, err)
	}
	return New(units, txs), nil
}

func readYAML(path string, out any) (bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func (s *Store) ListUnits(_ context.Context) ([]core.Unit, error) {
	return append([]core.Unit(nil), s.units...), nil
}

func (s *Store) GetUnit(_ context.Context, id string) (core.Unit, error) {
	return ports.FindUnit(s.units, id)
}

func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	return append([]core.Transaction(nil), s.txs...), nil
}
