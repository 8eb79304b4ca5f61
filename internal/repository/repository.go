// Package repository stores simulations. The SQLite store is the default;
// MemoryStore serves tests and throwaway sessions.
package repository

import (
	"context"
	"errors"

	"github.com/ifplan/ifplan/internal/models"
)

// ErrNotFound is returned when no simulation has the requested id.
var ErrNotFound = errors.New("simulation not found")

// Repository persists simulations.
type Repository interface {
	// Save inserts the simulation or replaces the stored one with the same id.
	// The creation date of an existing row is kept.
	Save(ctx context.Context, sim *models.Simulation) error
	Get(ctx context.Context, id string) (*models.Simulation, error)
	Delete(ctx context.Context, id string) error
	// List returns simulations newest first.
	List(ctx context.Context, page models.Pagination) (*models.SimulationList, error)
	// Clear removes every simulation and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}
