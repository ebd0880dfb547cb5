// Package sheets defines the ports through which units and transactions are
// read. Adapters live in the memory and google subpackages and in
// internal/storage.
package sheets

import (
	"context"
	"errors"

	"pousada/internal/core"
)

var ErrUnitNotFound = errors.New("unit not found")

// Ports for outbound adapters.
type (
	UnitReader interface {
		ListUnits(ctx context.Context) ([]core.Unit, error)
		// GetUnit returns ErrUnitNotFound (possibly wrapped) for unknown IDs.
		GetUnit(ctx context.Context, id string) (core.Unit, error)
	}

	TransactionLister interface {
		// ListTransactions returns every transaction. Callers filter.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}

	// Source is the full read side a backend exposes.
	Source interface {
		UnitReader
		TransactionLister
	}
)

// FindUnit looks up id in units.
func FindUnit(units []core.Unit, id string) (core.Unit, error) {
	for _, u := range units {
		if u.ID == id {
			return u, nil
		}
	}
	return core.Unit{}, ErrUnitNotFound
}
