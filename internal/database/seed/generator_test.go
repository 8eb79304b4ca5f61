package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/ifplan/ifplan/internal/engine"
	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/repository"
	"github.com/ifplan/ifplan/internal/services/simulations"
	"github.com/ifplan/ifplan/internal/testutil"
)

func TestGenerator_Generate(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := simulations.NewService(repository.NewSimulationRepository(db.DB))
	ctx := context.Background()

	cfg := DefaultConfig(models.DefaultInput())
	sims, err := NewGenerator(svc, cfg).Generate(ctx)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(sims) != cfg.Count {
		t.Fatalf("got %d simulations, want %d", len(sims), cfg.Count)
	}

	testutil.AssertRowCount(t, db, "simulations", cfg.Count)

	names := make(map[string]bool)
	for _, sim := range sims {
		if names[sim.Name] {
			t.Errorf("duplicate name %q", sim.Name)
		}
		names[sim.Name] = true

		if err := sim.Inputs.Validate(); err != nil {
			t.Errorf("%s: invalid inputs: %v", sim.Name, err)
		}
		if !sim.Results.Equal(engine.Calculate(sim.Inputs)) {
			t.Errorf("%s: results do not match inputs", sim.Name)
		}
		if !strings.Contains(sim.Description, " ha") {
			t.Errorf("%s: description %q lacks the farm size", sim.Name, sim.Description)
		}
		if sim.Inputs.VarPreco != cfg.Base.VarPreco {
			t.Errorf("%s: multipliers must come from the base input", sim.Name)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig(models.DefaultInput())

	run := func() []*models.Simulation {
		svc := simulations.NewService(repository.NewMemoryStore())
		sims, err := NewGenerator(svc, cfg).Generate(ctx)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		return sims
	}

	a, b := run(), run()
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Inputs != b[i].Inputs {
			t.Errorf("scenario %d differs between runs: %q vs %q", i, a[i].Name, b[i].Name)
		}
	}
}

func TestGenerator_InvalidCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"zero", 0},
		{"more than names", len(FarmNames)*len(FarmPrefixes) + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(models.DefaultInput())
			cfg.Count = tt.count
			svc := simulations.NewService(repository.NewMemoryStore())
			if _, err := NewGenerator(svc, cfg).Generate(context.Background()); err == nil {
				t.Error("expected error")
			}
		})
	}
}
