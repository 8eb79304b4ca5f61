// Package simulations is the only writer of stored simulations. Every write
// recomputes results from the inputs being stored, so a persisted record's
// results always equal engine.Calculate(inputs).
package simulations

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ifplan/ifplan/internal/engine"
	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/repository"
	"github.com/ifplan/ifplan/internal/util"
)

// Service provides simulation lifecycle and sensitivity operations.
type Service struct {
	repo             repository.Repository
	ids              *util.IDGenerator
	now              util.Clock
	sweepConcurrency int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock sets the clock used for creation and update timestamps.
func WithClock(c util.Clock) Option {
	return func(s *Service) { s.now = c }
}

// WithIDGenerator sets the id source.
func WithIDGenerator(g *util.IDGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// WithSweepConcurrency bounds the goroutines used by Sweep.
func WithSweepConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sweepConcurrency = n
		}
	}
}

// NewService creates a new simulation service backed by repo.
func NewService(repo repository.Repository, opts ...Option) *Service {
	s := &Service{
		repo:             repo,
		now:              util.SystemClock,
		sweepConcurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = util.NewIDGeneratorWithClock(s.now)
	}
	return s
}

// Create validates the input, computes results and stores a new simulation.
func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Simulation, error) {
	now := s.now()
	sim := &models.Simulation{
		ID:          s.ids.NewID(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Date:        now,
		UpdatedAt:   now,
		Inputs:      input.Input,
	}

	if err := s.store(ctx, sim); err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	log.Info().Str("simulation_id", sim.ID).Str("name", sim.Name).Msg("simulation created")
	return sim, nil
}

// Get retrieves a simulation by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Simulation, error) {
	sim, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting simulation: %w", err)
	}
	return sim, nil
}

// List retrieves one page of simulations, newest first.
func (s *Service) List(ctx context.Context, page models.Pagination) (*models.SimulationList, error) {
	list, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("listing simulations: %w", err)
	}
	return list, nil
}

// UpdateInputs replaces the inputs and recomputes every indicator. Id,
// name, description and creation date are kept.
func (s *Service) UpdateInputs(ctx context.Context, id string, in models.Input) (*models.Simulation, error) {
	sim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sim.Inputs = in
	sim.UpdatedAt = s.now()

	if err := s.store(ctx, sim); err != nil {
		return nil, fmt.Errorf("updating simulation inputs: %w", err)
	}

	log.Info().Str("simulation_id", id).Msg("simulation recalculated")
	return sim, nil
}

// UpdateDetails changes name and description only.
func (s *Service) UpdateDetails(ctx context.Context, id string, input UpdateDetailsInput) (*models.Simulation, error) {
	sim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sim.Name = strings.TrimSpace(input.Name)
	sim.Description = strings.TrimSpace(input.Description)
	sim.UpdatedAt = s.now()

	if err := sim.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, sim); err != nil {
		return nil, fmt.Errorf("renaming simulation: %w", err)
	}

	log.Info().Str("simulation_id", id).Str("name", sim.Name).Msg("simulation renamed")
	return sim, nil
}

// Delete removes a simulation.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting simulation: %w", err)
	}
	log.Info().Str("simulation_id", id).Msg("simulation deleted")
	return nil
}

// Clear removes every simulation and returns how many were removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	n, err := s.repo.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("clearing simulations: %w", err)
	}
	log.Info().Int("removed", n).Msg("simulations cleared")
	return n, nil
}

// Preview validates in and computes its indicators without storing anything.
func (s *Service) Preview(in models.Input) (models.Output, error) {
	if err := in.Validate(); err != nil {
		return models.Output{}, err
	}
	out := engine.Calculate(in)
	warnDegenerate("", out)
	return out, nil
}

// ApplySensitivity recomputes a stored simulation with the given slider
// positions. Nothing is persisted.
func (s *Service) ApplySensitivity(ctx context.Context, id string, sens models.Sensitivity) (*Comparison, error) {
	sim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	adjusted := sens.Apply(sim.Inputs)
	out, err := s.Preview(adjusted)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Simulation:  sim,
		Sensitivity: models.SensitivityOf(adjusted),
		Inputs:      adjusted,
		Baseline:    sim.Results,
		Adjusted:    out,
	}, nil
}

// SaveSensitivity stores the simulation with the multipliers replaced.
func (s *Service) SaveSensitivity(ctx context.Context, id string, sens models.Sensitivity) (*models.Simulation, error) {
	sim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.UpdateInputs(ctx, id, sens.Apply(sim.Inputs))
}

// Verify recomputes a stored simulation and lists indicators whose stored
// value differs from the fresh one. Rows written by older engine versions
// show up here.
func (s *Service) Verify(ctx context.Context, id string) (*VerifyReport, error) {
	sim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fresh := engine.Calculate(sim.Inputs)
	report := &VerifyReport{
		ID:         id,
		Stored:     sim.Results,
		Fresh:      fresh,
		Mismatched: sim.Results.Diff(fresh),
	}

	if !report.OK() {
		log.Warn().Str("simulation_id", id).Strs("fields", report.Mismatched).Msg("stored results are stale")
	}
	return report, nil
}

// store validates sim, recomputes its results and saves it.
func (s *Service) store(ctx context.Context, sim *models.Simulation) error {
	if err := sim.Validate(); err != nil {
		return err
	}

	sim.Results = engine.Calculate(sim.Inputs)
	warnDegenerate(sim.ID, sim.Results)

	return s.repo.Save(ctx, sim)
}

func warnDegenerate(id string, out models.Output) {
	keys := out.Degenerate()
	if len(keys) == 0 {
		return
	}
	ev := log.Warn().Strs("fields", keys)
	if id != "" {
		ev = ev.Str("simulation_id", id)
	}
	ev.Msg("some indicators are unavailable for these inputs")
}
