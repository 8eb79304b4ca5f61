package tui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// newE2EModel starts the real program in a headless terminal. Unlike
// newTestApp, the size and initial load arrive through the runtime.
func newE2EModel(t *testing.T, width, height int, names ...string) *teatest.TestModel {
	t.Helper()

	return teatest.NewTestModel(t, newApp(t, newTestService(t, names...)),
		teatest.WithInitialTermSize(width, height))
}

// waitFor is a convenience wrapper around teatest.WaitFor with a standard timeout.
func waitFor(t *testing.T, tm *teatest.TestModel, texts ...string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		for _, text := range texts {
			if !bytes.Contains(bts, []byte(text)) {
				return false
			}
		}
		return true
	}, teatest.WithDuration(5*time.Second))
}

func TestE2E_ListOnStartup(t *testing.T) {
	tm := newE2EModel(t, 120, 40, "Verão 2025", "Inverno 2025")
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "SIMULAÇÕES SALVAS", "Verão 2025", "Inverno 2025")
}

func TestE2E_EmptyList(t *testing.T) {
	tm := newE2EModel(t, 120, 40)
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "SIMULAÇÕES SALVAS", "Nenhuma simulação salva")
}

func TestE2E_OpenResult(t *testing.T) {
	tm := newE2EModel(t, 120, 40, "Verão 2025")
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "Verão 2025")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Resumo Produtivo", "Indicadores Financeiros")

	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "SIMULAÇÕES SALVAS")
}

func TestE2E_SensitivityPanel(t *testing.T) {
	tm := newE2EModel(t, 120, 40, "Verão 2025")
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "Verão 2025")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	waitFor(t, tm, "SENSIBILIDADE: Verão 2025", "Resumo Produtivo")

	tm.Send(tea.KeyMsg{Type: tea.KeyRight})
	waitFor(t, tm, "Alterações não salvas")
}

func TestE2E_HelpScreenAndBack(t *testing.T) {
	tm := newE2EModel(t, 120, 40)
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "SIMULAÇÕES SALVAS")

	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "AJUDA")

	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "SIMULAÇÕES SALVAS")
}

func TestE2E_RenameForm(t *testing.T) {
	tm := newE2EModel(t, 120, 40, "Rascunho")
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "Rascunho")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	waitFor(t, tm, "RENOMEAR SIMULAÇÃO")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	tm.Type("Final")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Simulação renomeada")
}

func TestE2E_QuitFlow(t *testing.T) {
	tm := newE2EModel(t, 120, 40)

	waitFor(t, tm, "SIMULAÇÕES SALVAS")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "Deseja sair do IFPlan?")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	app, ok := m.(*App)
	if !ok {
		t.Fatal("expected *App final model")
	}
	if !app.quitting {
		t.Error("expected app to be quitting")
	}
}

func TestE2E_QuitCancel(t *testing.T) {
	tm := newE2EModel(t, 120, 40)
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "SIMULAÇÕES SALVAS")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "Deseja sair do IFPlan?")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	// Still responsive.
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	waitFor(t, tm, "AJUDA")
}

func TestE2E_NarrowTerminal(t *testing.T) {
	tm := newE2EModel(t, 50, 24, "Verão 2025")
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "SIMULAÇÕES SALVAS")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Resumo Produtivo")
}

func TestE2E_StatusBarShowsKeyBindings(t *testing.T) {
	tm := newE2EModel(t, 120, 40)
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "[Enter]abrir", "[?]ajuda", "[q]sair")
}
