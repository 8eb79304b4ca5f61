package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ifplan/ifplan/internal/models"
)

// MemoryStore keeps simulations in a map. Values are copied on the way in
// and out so callers never share state with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	sims map[string]*models.Simulation
}

var _ Repository = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sims: make(map[string]*models.Simulation)}
}

// Save inserts or replaces sim, keeping the original creation date.
func (m *MemoryStore) Save(ctx context.Context, sim *models.Simulation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := sim.Clone()
	if prev, ok := m.sims[sim.ID]; ok {
		c.Date = prev.Date
	}
	m.sims[sim.ID] = c
	return nil
}

// Get returns a copy of the stored simulation.
func (m *MemoryStore) Get(ctx context.Context, id string) (*models.Simulation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	sim, ok := m.sims[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sim.Clone(), nil
}

// Delete removes a simulation.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sims[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.sims, id)
	return nil
}

// List returns copies ordered like the SQLite store: date, then id, descending.
func (m *MemoryStore) List(ctx context.Context, page models.Pagination) (*models.SimulationList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	all := make([]*models.Simulation, 0, len(m.sims))
	for _, sim := range m.sims {
		all = append(all, sim.Clone())
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID > all[j].ID
	})

	return &models.SimulationList{
		Simulations: models.Window(all, page),
		Total:       len(all),
		Page:        max(page.Page, 1),
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages(len(all)),
	}, nil
}

// Clear removes everything.
func (m *MemoryStore) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.sims)
	m.sims = make(map[string]*models.Simulation)
	return n, nil
}
