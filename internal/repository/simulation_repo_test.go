package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/ifplan/ifplan/internal/engine"
	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/testutil"
)

func setupSimulationTest(t *testing.T) (*SimulationRepository, context.Context) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewSimulationRepository(db.DB), context.Background()
}

// stores runs fn against every Repository implementation.
func stores(t *testing.T, fn func(t *testing.T, repo Repository)) {
	t.Helper()
	t.Run("sqlite", func(t *testing.T) {
		repo, _ := setupSimulationTest(t)
		fn(t, repo)
	})
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
}

func TestRepository_SaveAndGet(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		sim := testutil.FixtureSimulation()

		if err := repo.Save(ctx, sim); err != nil {
			t.Fatalf("failed to save simulation: %v", err)
		}

		got, err := repo.Get(ctx, sim.ID)
		if err != nil {
			t.Fatalf("failed to get simulation: %v", err)
		}

		if got.Name != sim.Name || got.Description != sim.Description {
			t.Errorf("metadata mismatch: got %q/%q", got.Name, got.Description)
		}
		if !got.Date.Equal(sim.Date) {
			t.Errorf("date = %v, want %v", got.Date, sim.Date)
		}
		if got.Inputs != sim.Inputs {
			t.Errorf("inputs changed in storage")
		}
		if !got.Results.Equal(engine.Calculate(got.Inputs)) {
			t.Errorf("reloaded results do not match a fresh calculation")
		}
	})
}

func TestRepository_NonFiniteResultsRoundTrip(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		sim := testutil.FixtureSimulation(testutil.WithInput(func(in *models.Input) {
			in.Area = 0
		}))
		if !math.IsNaN(sim.Results.Ml) && !math.IsInf(sim.Results.Ml, 0) {
			t.Fatalf("fixture should produce a degenerate margin, got %v", sim.Results.Ml)
		}

		if err := repo.Save(ctx, sim); err != nil {
			t.Fatalf("failed to save degenerate simulation: %v", err)
		}
		got, err := repo.Get(ctx, sim.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Results.Equal(sim.Results) {
			t.Errorf("non-finite results did not survive storage:\n got %+v\nwant %+v", got.Results, sim.Results)
		}
	})
}

func TestRepository_SaveReplacesButKeepsDate(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
		sim := testutil.FixtureSimulation(testutil.WithDate(created))
		if err := repo.Save(ctx, sim); err != nil {
			t.Fatal(err)
		}

		edited := sim.Clone()
		edited.Name = "Renomeada"
		edited.Date = created.Add(48 * time.Hour)
		edited.UpdatedAt = created.Add(time.Hour)
		if err := repo.Save(ctx, edited); err != nil {
			t.Fatal(err)
		}

		got, err := repo.Get(ctx, sim.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "Renomeada" {
			t.Errorf("name = %q", got.Name)
		}
		if !got.Date.Equal(created) {
			t.Errorf("creation date changed to %v", got.Date)
		}
		if !got.UpdatedAt.Equal(edited.UpdatedAt) {
			t.Errorf("updatedAt = %v, want %v", got.UpdatedAt, edited.UpdatedAt)
		}

		list, err := repo.List(ctx, models.All())
		if err != nil || list.Total != 1 {
			t.Errorf("expected a single row after replace, got %+v, %v", list, err)
		}
	})
}

func TestRepository_GetMutationIsolation(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		sim := testutil.FixtureSimulation()
		if err := repo.Save(ctx, sim); err != nil {
			t.Fatal(err)
		}
		sim.Name = "changed after save"

		got, _ := repo.Get(ctx, sim.ID)
		got.Inputs.Area = 1

		again, _ := repo.Get(ctx, sim.ID)
		if again.Name == "changed after save" || again.Inputs.Area == 1 {
			t.Error("store shares state with callers")
		}
	})
}

func TestRepository_NotFound(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()

		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get: expected ErrNotFound, got %v", err)
		}
		if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete: expected ErrNotFound, got %v", err)
		}
	})
}

func TestRepository_Delete(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		a := testutil.FixtureSimulation()
		b := testutil.FixtureSimulation()
		for _, s := range []*models.Simulation{a, b} {
			if err := repo.Save(ctx, s); err != nil {
				t.Fatal(err)
			}
		}

		if err := repo.Delete(ctx, a.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.Get(ctx, a.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("deleted simulation still readable: %v", err)
		}
		if _, err := repo.Get(ctx, b.ID); err != nil {
			t.Errorf("other simulation affected: %v", err)
		}
	})
}

func TestRepository_ListNewestFirstAndPaged(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		for i := 0; i < 5; i++ {
			sim := testutil.FixtureSimulation(
				testutil.WithName(fmt.Sprintf("sim %d", i)),
				testutil.WithDate(base.Add(time.Duration(i)*time.Hour)),
			)
			if err := repo.Save(ctx, sim); err != nil {
				t.Fatal(err)
			}
		}

		all, err := repo.List(ctx, models.All())
		if err != nil {
			t.Fatal(err)
		}
		if all.Total != 5 || len(all.Simulations) != 5 {
			t.Fatalf("expected 5 simulations, got %d/%d", len(all.Simulations), all.Total)
		}
		for i, s := range all.Simulations {
			if want := fmt.Sprintf("sim %d", 4-i); s.Name != want {
				t.Errorf("position %d: %q, want %q", i, s.Name, want)
			}
		}

		page, err := repo.List(ctx, models.Pagination{Page: 2, PageSize: 2})
		if err != nil {
			t.Fatal(err)
		}
		if len(page.Simulations) != 2 || page.Simulations[0].Name != "sim 2" {
			t.Errorf("page 2 = %v", names(page.Simulations))
		}
		if page.TotalPages != 3 || page.Total != 5 || page.Page != 2 {
			t.Errorf("unexpected paging info %+v", page)
		}
	})
}

func TestRepository_Clear(t *testing.T) {
	stores(t, func(t *testing.T, repo Repository) {
		ctx := context.Background()
		for i := 0; i < 3; i++ {
			if err := repo.Save(ctx, testutil.FixtureSimulation()); err != nil {
				t.Fatal(err)
			}
		}

		n, err := repo.Clear(ctx)
		if err != nil || n != 3 {
			t.Fatalf("Clear = %d, %v; want 3", n, err)
		}

		list, _ := repo.List(ctx, models.All())
		if list.Total != 0 {
			t.Errorf("%d simulations left after Clear", list.Total)
		}

		n, err = repo.Clear(ctx)
		if err != nil || n != 0 {
			t.Errorf("Clear on empty store = %d, %v", n, err)
		}
	})
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewMemoryStore().Save(ctx, testutil.FixtureSimulation()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSimulationRepository_StoredColumns(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSimulationRepository(db.DB)
	ctx := context.Background()

	sim := testutil.FixtureSimulation(testutil.WithInput(func(in *models.Input) { in.NumeroDePiquetes = 0 }))
	if err := repo.Save(ctx, sim); err != nil {
		t.Fatal(err)
	}
	testutil.AssertRowCount(t, db, "simulations", 1)

	var results string
	if err := db.QueryRow(`SELECT json_extract(results_json, '$.capacidadeDeSuporte') FROM simulations`).Scan(&results); err != nil {
		t.Fatal(err)
	}
	if results != "+Inf" {
		t.Errorf("stored capacidadeDeSuporte = %q, want +Inf", results)
	}
}

func TestSimulationRepository_CorruptRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSimulationRepository(db.DB)

	testutil.ExecSQL(t, db, `INSERT INTO simulations (id, name, description, created_at, updated_at, inputs_json, results_json)
		VALUES ('bad', 'x', '', 'yesterday', 'yesterday', '{}', '{}')`)

	_, err := repo.Get(context.Background(), "bad")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected a decoding error, got %v", err)
	}
}

func names(sims []*models.Simulation) []string {
	out := make([]string, len(sims))
	for i, s := range sims {
		out[i] = s.Name
	}
	return out
}
