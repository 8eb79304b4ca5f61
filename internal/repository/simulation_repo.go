package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ifplan/ifplan/internal/models"
)

// timeLayout keeps fixed-width fractions so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SimulationRepository stores simulations in SQLite. Inputs and results are
// kept as JSON documents next to the indexed metadata columns.
type SimulationRepository struct {
	db *sql.DB
}

var _ Repository = (*SimulationRepository)(nil)

// NewSimulationRepository creates a new simulation repository.
func NewSimulationRepository(db *sql.DB) *SimulationRepository {
	return &SimulationRepository{db: db}
}

// Save upserts sim. On conflict created_at is left untouched.
func (r *SimulationRepository) Save(ctx context.Context, sim *models.Simulation) error {
	inputs, err := json.Marshal(sim.Inputs)
	if err != nil {
		return fmt.Errorf("encoding inputs: %w", err)
	}
	results, err := json.Marshal(sim.Results)
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	query := `
		INSERT INTO simulations (id, name, description, created_at, updated_at, inputs_json, results_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			updated_at = excluded.updated_at,
			inputs_json = excluded.inputs_json,
			results_json = excluded.results_json`

	_, err = r.db.ExecContext(ctx, query,
		sim.ID,
		sim.Name,
		sim.Description,
		sim.Date.UTC().Format(timeLayout),
		sim.UpdatedAt.UTC().Format(timeLayout),
		string(inputs),
		string(results),
	)
	if err != nil {
		return fmt.Errorf("saving simulation: %w", err)
	}

	return nil
}

// Get retrieves a simulation by id.
func (r *SimulationRepository) Get(ctx context.Context, id string) (*models.Simulation, error) {
	query := `
		SELECT id, name, description, created_at, updated_at, inputs_json, results_json
		FROM simulations
		WHERE id = ?`

	sim, err := scanSimulation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sim, err
}

// Delete removes a simulation.
func (r *SimulationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM simulations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting simulation: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

// List returns one page of simulations, newest first.
func (r *SimulationRepository) List(ctx context.Context, page models.Pagination) (*models.SimulationList, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM simulations`).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting simulations: %w", err)
	}

	query := `
		SELECT id, name, description, created_at, updated_at, inputs_json, results_json
		FROM simulations
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("querying simulations: %w", err)
	}
	defer rows.Close()

	var sims []*models.Simulation
	for rows.Next() {
		sim, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating simulations: %w", err)
	}

	return &models.SimulationList{
		Simulations: sims,
		Total:       total,
		Page:        max(page.Page, 1),
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages(total),
	}, nil
}

// Clear deletes every simulation.
func (r *SimulationRepository) Clear(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM simulations`)
	if err != nil {
		return 0, fmt.Errorf("clearing simulations: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting removed simulations: %w", err)
	}

	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSimulation(row rowScanner) (*models.Simulation, error) {
	var (
		sim                  models.Simulation
		createdAt, updatedAt string
		inputs, results      string
	)

	if err := row.Scan(&sim.ID, &sim.Name, &sim.Description, &createdAt, &updatedAt, &inputs, &results); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning simulation: %w", err)
	}

	var err error
	if sim.Date, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at of %s: %w", sim.ID, err)
	}
	if sim.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at of %s: %w", sim.ID, err)
	}

	if err := json.Unmarshal([]byte(inputs), &sim.Inputs); err != nil {
		return nil, fmt.Errorf("decoding inputs of %s: %w", sim.ID, err)
	}
	if err := json.Unmarshal([]byte(results), &sim.Results); err != nil {
		return nil, fmt.Errorf("decoding results of %s: %w", sim.ID, err)
	}

	return &sim, nil
}
