package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ifplan/ifplan/internal/config"
	"github.com/ifplan/ifplan/internal/format"
	"github.com/ifplan/ifplan/internal/models"
	"github.com/ifplan/ifplan/internal/services/simulations"
)

// Version is shown in the header; set by the CLI.
var Version = "dev"

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// chromeLines is the height taken by header, alert bar and footer.
const chromeLines = 6

type screen int

const (
	screenList screen = iota
	screenResult
	screenSensitivity
	screenRename
	screenHelp
)

// App is the main Bubble Tea application model.
type App struct {
	ctx context.Context
	svc *simulations.Service
	cfg *config.Config
	fmt *format.Formatter
	now func() time.Time

	theme *Theme
	keys  KeyMap

	width    int
	height   int
	ready    bool
	quitting bool

	screen   screen
	previous screen

	list    *ListView
	current *models.Simulation
	sens    *SensitivityView
	rename  *RenameForm

	confirmQuit   bool
	confirmDelete *models.Simulation

	alerts []Alert
}

// Alert is a status message shown under the header.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
	AlertCritical
)

type listLoadedMsg struct {
	list *models.SimulationList
	err  error
}

type comparisonMsg struct {
	cmp *simulations.Comparison
	seq int
	err error
}

type sensitivitySavedMsg struct {
	sim *models.Simulation
	err error
}

type renamedMsg struct {
	sim *models.Simulation
	err error
}

type deletedMsg struct {
	sim *models.Simulation
	err error
}

// New creates the application model.
func New(ctx context.Context, svc *simulations.Service, cfg *config.Config, f *format.Formatter) *App {
	theme := NewTheme(cfg.Display.ColorScheme)
	return &App{
		ctx:   ctx,
		svc:   svc,
		cfg:   cfg,
		fmt:   f,
		now:   time.Now,
		theme: theme,
		keys:  DefaultKeyMap(),
		list:  NewListView(svc, f, theme),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.loadList()
}

func (a *App) loadList() tea.Cmd {
	return func() tea.Msg {
		list, err := a.list.Load(a.ctx)
		return listLoadedMsg{list: list, err: err}
	}
}

// recompute asks the service for the comparison at the current slider
// positions.
func (a *App) recompute() tea.Cmd {
	id, sens, seq := a.sens.sim.ID, a.sens.Sensitivity(), a.sens.NextSeq()
	return func() tea.Msg {
		cmp, err := a.svc.ApplySensitivity(a.ctx, id, sens)
		return comparisonMsg{cmp: cmp, seq: seq, err: err}
	}
}

func (a *App) saveSensitivity() tea.Cmd {
	id, sens := a.sens.sim.ID, a.sens.Sensitivity()
	return func() tea.Msg {
		sim, err := a.svc.SaveSensitivity(a.ctx, id, sens)
		return sensitivitySavedMsg{sim: sim, err: err}
	}
}

func (a *App) saveRename() tea.Cmd {
	id := a.rename.ID()
	name, description := a.rename.Values()
	return func() tea.Msg {
		sim, err := a.svc.UpdateDetails(a.ctx, id, simulations.UpdateDetailsInput{
			Name:        name,
			Description: description,
		})
		return renamedMsg{sim: sim, err: err}
	}
}

func (a *App) deleteSimulation(sim *models.Simulation) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{sim: sim, err: a.svc.Delete(a.ctx, sim.ID)}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil

	case listLoadedMsg:
		if msg.err != nil {
			a.AddAlert(AlertCritical, "Falha ao carregar simulações: "+msg.err.Error())
			return a, nil
		}
		a.list.SetList(msg.list)
		return a, nil

	case comparisonMsg:
		if a.sens == nil {
			return a, nil
		}
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Falha ao recalcular: "+msg.err.Error())
			return a, nil
		}
		a.sens.SetComparison(msg.cmp, msg.seq)
		return a, nil

	case sensitivitySavedMsg:
		if msg.err != nil {
			a.AddAlert(AlertCritical, "Falha ao salvar: "+msg.err.Error())
			return a, nil
		}
		a.current = msg.sim
		a.AddAlert(AlertInfo, "Multiplicadores salvos")
		if a.sens != nil {
			a.sens.Saved(msg.sim)
			return a, tea.Batch(a.recompute(), a.loadList())
		}
		return a, a.loadList()

	case renamedMsg:
		if msg.err != nil {
			var verr *models.ValidationError
			if errors.As(msg.err, &verr) && a.rename != nil {
				a.rename.SetError(verr.Error())
				return a, nil
			}
			a.AddAlert(AlertCritical, "Falha ao renomear: "+msg.err.Error())
			return a, nil
		}
		if a.current != nil && a.current.ID == msg.sim.ID {
			a.current = msg.sim
		}
		a.rename = nil
		a.screen = a.previous
		a.AddAlert(AlertInfo, fmt.Sprintf("Simulação renomeada para %q", msg.sim.Name))
		return a, a.loadList()

	case deletedMsg:
		if msg.err != nil {
			a.AddAlert(AlertCritical, "Falha ao excluir: "+msg.err.Error())
			return a, nil
		}
		if a.current != nil && a.current.ID == msg.sim.ID {
			a.current = nil
			a.sens = nil
			a.screen = screenList
		}
		a.AddAlert(AlertInfo, fmt.Sprintf("Simulação %q excluída", msg.sim.Name))
		return a, a.loadList()
	}

	if a.screen == screenRename && a.rename != nil {
		return a, a.rename.Update(msg)
	}
	return a, nil
}

func (a *App) updateViewDimensions() {
	a.list.Resize(a.contentWidth(), ContentHeight(a.height, chromeLines))
}

func (a *App) contentWidth() int {
	return ContentWidth(a.width, 40, MaxContentWidth)
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modals take priority.
	if a.confirmQuit {
		switch {
		case a.keys.Confirm.Matches(msg):
			a.quitting = true
			return a, tea.Quit
		case a.keys.Cancel.Matches(msg):
			a.confirmQuit = false
		}
		return a, nil
	}

	if a.confirmDelete != nil {
		switch {
		case a.keys.Confirm.Matches(msg):
			sim := a.confirmDelete
			a.confirmDelete = nil
			return a, a.deleteSimulation(sim)
		case a.keys.Cancel.Matches(msg):
			a.confirmDelete = nil
		}
		return a, nil
	}

	// The rename form needs every printable key.
	if a.screen == screenRename {
		return a.handleRenameKeys(msg)
	}

	if a.keys.IsQuit(msg) {
		a.confirmQuit = true
		return a, nil
	}

	if a.keys.Help.Matches(msg) && a.screen != screenHelp {
		a.previous = a.screen
		a.screen = screenHelp
		return a, nil
	}

	switch a.screen {
	case screenList:
		return a.handleListKeys(msg)
	case screenResult:
		return a.handleResultKeys(msg)
	case screenSensitivity:
		return a.handleSensitivityKeys(msg)
	case screenHelp:
		if a.keys.Back.Matches(msg) {
			a.screen = a.previous
		}
	}

	return a, nil
}

func (a *App) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.keys.Up.Matches(msg):
		a.list.MoveUp()
	case a.keys.Down.Matches(msg):
		a.list.MoveDown()
	case a.keys.Home.Matches(msg):
		a.list.GoToTop()
	case a.keys.End.Matches(msg):
		a.list.GoToBottom()
	case a.keys.PageDown.Matches(msg):
		if a.list.NextPage() {
			return a, a.loadList()
		}
	case a.keys.PageUp.Matches(msg):
		if a.list.PrevPage() {
			return a, a.loadList()
		}
	case a.keys.Refresh.Matches(msg):
		return a, a.loadList()
	case a.keys.Select.Matches(msg):
		if sim := a.list.Selected(); sim != nil {
			a.current = sim
			a.screen = screenResult
		}
	case a.keys.Sensitivity.Matches(msg):
		if sim := a.list.Selected(); sim != nil {
			a.current = sim
			return a, a.openSensitivity()
		}
	case a.keys.Rename.Matches(msg):
		if sim := a.list.Selected(); sim != nil {
			return a, a.openRename(sim)
		}
	case a.keys.Delete.Matches(msg):
		a.confirmDelete = a.list.Selected()
	}
	return a, nil
}

func (a *App) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case a.keys.Back.Matches(msg):
		a.screen = screenList
		a.list.SelectID(a.current.ID)
	case a.keys.Sensitivity.Matches(msg):
		return a, a.openSensitivity()
	case a.keys.Rename.Matches(msg):
		return a, a.openRename(a.current)
	case a.keys.Delete.Matches(msg):
		a.confirmDelete = a.current
	}
	return a, nil
}

func (a *App) openSensitivity() tea.Cmd {
	a.sens = NewSensitivityView(a.current)
	a.screen = screenSensitivity
	return a.recompute()
}

func (a *App) openRename(sim *models.Simulation) tea.Cmd {
	a.rename = NewRenameForm(sim, a.theme)
	a.previous = a.screen
	a.screen = screenRename
	return textinput.Blink
}

func (a *App) handleSensitivityKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if step := a.keys.SliderStep(msg); step != 0 {
		if a.sens.Nudge(step) {
			return a, a.recompute()
		}
		return a, nil
	}

	switch {
	case a.keys.Up.Matches(msg):
		a.sens.MoveFocus(-1)
	case a.keys.Down.Matches(msg):
		a.sens.MoveFocus(1)
	case a.keys.Neutral.Matches(msg):
		if a.sens.SetNeutral() {
			return a, a.recompute()
		}
	case a.keys.Reset.Matches(msg):
		if a.sens.Reset() {
			return a, a.recompute()
		}
	case a.keys.Save.Matches(msg):
		if !a.sens.Dirty() {
			a.AddAlert(AlertInfo, "Nada a salvar")
			return a, nil
		}
		return a, a.saveSensitivity()
	case a.keys.Back.Matches(msg):
		if a.sens.Dirty() {
			a.AddAlert(AlertWarning, "Ajustes descartados")
		}
		a.sens = nil
		a.screen = screenResult
	}
	return a, nil
}

func (a *App) handleRenameKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.rename = nil
		a.screen = a.previous
		return a, nil
	case "enter":
		return a, a.saveRename()
	case "ctrl+c":
		a.confirmQuit = true
		return a, nil
	}
	if a.keys.Tab.Matches(msg) {
		return a, a.rename.NextField()
	}
	return a, a.rename.Update(msg)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Iniciando..."
	}

	if a.quitting {
		return a.theme.Title.Render("Até logo.")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderAlertBar())
	b.WriteString("\n")

	contentHeight := ContentHeight(a.height, chromeLines)
	switch {
	case a.confirmQuit:
		b.WriteString(a.renderDialog(contentHeight, "SAIR", "Deseja sair do IFPlan?"))
	case a.confirmDelete != nil:
		b.WriteString(a.renderDialog(contentHeight, "EXCLUIR SIMULAÇÃO",
			fmt.Sprintf("Excluir %q? Esta ação não pode ser desfeita.", a.confirmDelete.Name)))
	default:
		b.WriteString(a.renderContent(contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

func (a *App) renderHeader() string {
	title := fmt.Sprintf("IFPLAN LEITE À PASTO v%s", Version)

	var info string
	if a.list.list != nil {
		info = fmt.Sprintf("%d simulações", a.list.list.Total)
	}

	spacing := max(a.width-lipgloss.Width(title)-lipgloss.Width(info)-4, 1)

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

func (a *App) renderAlertBar() string {
	var alertText string
	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		switch alert.Level {
		case AlertCritical:
			alertText = a.theme.Error.Render("ERRO: " + alert.Message)
		case AlertWarning:
			alertText = a.theme.Accent.Render("AVISO: " + alert.Message)
		default:
			alertText = a.theme.Primary.Render(alert.Message)
		}
	} else {
		alertText = a.theme.Muted.Render("Pronto")
	}

	return a.theme.Value.Render(" "+a.fmt.Date(a.now())) + a.theme.StatusDivider.Render() + alertText
}

func (a *App) renderContent(height int) string {
	width := a.contentWidth()

	var content string
	switch a.screen {
	case screenResult:
		content = renderResult(a.theme, a.fmt, a.current, width)
	case screenSensitivity:
		content = a.sens.Render(a.theme, a.fmt, width)
	case screenRename:
		content = a.rename.Render(a.theme)
	case screenHelp:
		content = a.renderHelp()
	default:
		content = a.list.Render(a.theme)
	}

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		MaxHeight(height).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(lipgloss.NewStyle().Width(width).Render(content))
}

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("AJUDA"))
	b.WriteString("\n\n")

	sections := []struct {
		title string
		items [][2]string
	}{
		{"LISTA", [][2]string{
			{"↑/↓ k/j", "mover seleção"},
			{"PgUp/PgDn", "página anterior/seguinte"},
			{"Enter", "abrir resultados"},
			{"s", "sensibilidade"},
			{"r", "renomear"},
			{"d", "excluir"},
			{"Ctrl+R", "atualizar"},
		}},
		{"SENSIBILIDADE", [][2]string{
			{"↑/↓", "escolher fator"},
			{"←/→", "±1%"},
			{"Shift+←/→", "±10%"},
			{"0", "fator neutro (0%)"},
			{"u", "desfazer ajustes"},
			{"Enter", "salvar multiplicadores"},
		}},
		{"GERAL", [][2]string{
			{"Esc", "voltar"},
			{"?", "ajuda"},
			{"q", "sair"},
		}},
	}

	for _, s := range sections {
		b.WriteString(a.theme.Subtitle.Render(s.title))
		b.WriteString("\n")
		for _, item := range s.items {
			b.WriteString(a.theme.Primary.Render(fmt.Sprintf("    %-12s  %s", item[0], item[1])))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(a.theme.Muted.Render("Esc para voltar"))
	return b.String()
}

func (a *App) renderDialog(height int, title, question string) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render(title) + "\n\n" +
			a.theme.Base.Render(question) + "\n\n" +
			a.theme.Label.Render("[S]im  [N]ão"),
	)

	return lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(dialog)
}

func (a *App) renderFooter() string {
	return a.theme.DrawHorizontalLine(a.width) + "\n" + a.theme.Footer.Render(a.keys.StatusBarHelp(a.screen))
}

// AddAlert shows a new status message, keeping the last ten.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    a.now(),
	}}, a.alerts...)

	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, svc *simulations.Service, cfg *config.Config, f *format.Formatter) error {
	// Console logs would draw over the alternate screen.
	if cfg.Logging.File == "" {
		config.SetLogOutput(io.Discard)
		defer config.SetLogOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	app := New(ctx, svc, cfg, f)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		log.Info().Msg("tui stopped by signal")
		return nil
	}
	return err
}
