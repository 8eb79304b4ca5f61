package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/ifplan/ifplan/internal/engine"
	"github.com/ifplan/ifplan/internal/models"
)

// FixtureInput returns the default input set with overrides applied.
func FixtureInput(overrides ...func(*models.Input)) models.Input {
	in := models.DefaultInput()
	for _, override := range overrides {
		override(&in)
	}
	return in
}

// FixtureSimulation creates a simulation whose results match its inputs.
// Overrides run before the results are computed, so changing Inputs in an
// override keeps the pair consistent.
func FixtureSimulation(overrides ...func(*models.Simulation)) *models.Simulation {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)

	sim := &models.Simulation{
		ID:          id.String(),
		Name:        "Sítio São José",
		Description: "Cenário de referência",
		Date:        now,
		UpdatedAt:   now,
		Inputs:      models.DefaultInput(),
	}

	for _, override := range overrides {
		override(sim)
	}
	sim.Results = engine.Calculate(sim.Inputs)

	return sim
}

// WithName sets the simulation name.
func WithName(name string) func(*models.Simulation) {
	return func(s *models.Simulation) { s.Name = name }
}

// WithDate sets both the creation and update time.
func WithDate(t time.Time) func(*models.Simulation) {
	return func(s *models.Simulation) {
		s.Date = t
		s.UpdatedAt = t
	}
}

// WithInput applies input overrides.
func WithInput(fn func(*models.Input)) func(*models.Simulation) {
	return func(s *models.Simulation) { fn(&s.Inputs) }
}
