package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ifplan/ifplan/internal/config"
	"github.com/ifplan/ifplan/internal/format"
	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/repository"
	"github.com/ifplan/ifplan/internal/services/simulations"
	"github.com/ifplan/ifplan/internal/testutil"
	"github.com/ifplan/ifplan/internal/util"
)

var testEpoch = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// newTestService returns a service over an in-memory store holding the
// named simulations, created one minute apart so the last name is newest.
func newTestService(t *testing.T, names ...string) *simulations.Service {
	t.Helper()

	svc := simulations.NewService(repository.NewMemoryStore(),
		simulations.WithClock(util.StepClock(testEpoch, time.Minute)))

	for _, name := range names {
		_, err := svc.Create(context.Background(), simulations.CreateInput{
			Name:        name,
			Description: "Cenário de teste",
			Input:       testutil.FixtureInput(),
		})
		if err != nil {
			t.Fatalf("creating %q: %v", name, err)
		}
	}
	return svc
}

// newTestApp creates a ready 120x40 App over the given simulations with the
// list already loaded.
func newTestApp(t *testing.T, names ...string) *App {
	t.Helper()

	app := newApp(t, newTestService(t, names...))
	app.width = 120
	app.height = 40
	app.ready = true
	app.updateViewDimensions()

	// Deliver the initial load synchronously.
	app.Update(app.Init()())

	return app
}

func newApp(t *testing.T, svc *simulations.Service) *App {
	t.Helper()

	app := New(context.Background(), svc, config.Default(), format.Default())
	app.now = func() time.Time { return testEpoch }
	return app
}

// run feeds the message produced by cmd back into the app, the way the
// Bubble Tea runtime would. Batches are unrolled. Only the app's own
// messages are delivered; cursor blinks and other runtime ticks are dropped.
func run(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(app, c)
		}
		return
	}
	switch msg.(type) {
	case listLoadedMsg, comparisonMsg, sensitivitySavedMsg, renamedMsg, deletedMsg:
		_, next := app.Update(msg)
		run(app, next)
	}
}

// press sends a key and runs whatever command it returns. Use app.Update
// directly for keys typed into text fields, whose commands are cursor
// blink timers.
func press(app *App, msg tea.KeyMsg) {
	_, cmd := app.Update(msg)
	run(app, cmd)
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func storedSimulation(t *testing.T, app *App, id string) *models.Simulation {
	t.Helper()

	sim, err := app.svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("getting %s: %v", id, err)
	}
	return sim
}
