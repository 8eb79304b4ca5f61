package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Navigation
	Up       Key
	Down     Key
	PageUp   Key
	PageDown Key
	Home     Key
	End      Key

	// Sliders
	Left     Key
	Right    Key
	BigLeft  Key
	BigRight Key
	Neutral  Key
	Reset    Key

	// Actions
	Select      Key
	Back        Key
	Quit        Key
	Help        Key
	Sensitivity Key
	Rename      Key
	Delete      Key
	Save        Key
	Refresh     Key

	// Dialogs and forms
	Confirm Key
	Cancel  Key
	Tab     Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

func newKey(help string, keys ...string) Key {
	return Key{Keys: keys, Help: help, Enabled: true}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       newKey("up", "up", "k"),
		Down:     newKey("down", "down", "j"),
		PageUp:   newKey("page up", "pgup", "ctrl+u"),
		PageDown: newKey("page down", "pgdown", "ctrl+d"),
		Home:     newKey("home", "home", "g"),
		End:      newKey("end", "end", "G"),

		Left:     newKey("-1%", "left", "h"),
		Right:    newKey("+1%", "right", "l"),
		BigLeft:  newKey("-10%", "shift+left", "H"),
		BigRight: newKey("+10%", "shift+right", "L"),
		Neutral:  newKey("neutro", "0"),
		Reset:    newKey("desfazer", "u"),

		Select:      newKey("abrir", "enter"),
		Back:        newKey("voltar", "esc"),
		Quit:        newKey("sair", "q", "ctrl+c"),
		Help:        newKey("ajuda", "?", "f1"),
		Sensitivity: newKey("sensibilidade", "s"),
		Rename:      newKey("renomear", "r"),
		Delete:      newKey("excluir", "d", "delete"),
		Save:        newKey("salvar", "ctrl+s", "enter"),
		Refresh:     newKey("atualizar", "ctrl+r"),

		Confirm: newKey("sim", "s", "S", "y", "Y", "enter"),
		Cancel:  newKey("não", "n", "N", "esc"),
		Tab:     newKey("próximo campo", "tab", "shift+tab", "up", "down"),
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg)
}

// SliderStep returns how many positions a key moves a slider, 0 if the key
// is not a slider key.
func (km KeyMap) SliderStep(msg tea.KeyMsg) int {
	switch {
	case km.Left.Matches(msg):
		return -1
	case km.Right.Matches(msg):
		return 1
	case km.BigLeft.Matches(msg):
		return -10
	case km.BigRight.Matches(msg):
		return 10
	default:
		return 0
	}
}

// StatusBarHelp returns the footer help text for a screen.
func (km KeyMap) StatusBarHelp(s screen) string {
	var items [][2]string
	switch s {
	case screenList:
		items = [][2]string{{"↑↓", "mover"}, {"Enter", "abrir"}, {"r", "renomear"}, {"d", "excluir"}, {"?", "ajuda"}, {"q", "sair"}}
	case screenResult:
		items = [][2]string{{"s", "sensibilidade"}, {"r", "renomear"}, {"d", "excluir"}, {"Esc", "voltar"}, {"q", "sair"}}
	case screenSensitivity:
		items = [][2]string{{"↑↓", "fator"}, {"←→", "±1%"}, {"Shift+←→", "±10%"}, {"0", "neutro"}, {"u", "desfazer"}, {"Enter", "salvar"}, {"Esc", "voltar"}}
	case screenRename:
		items = [][2]string{{"Tab", "campo"}, {"Enter", "salvar"}, {"Esc", "cancelar"}}
	default:
		items = [][2]string{{"Esc", "voltar"}, {"q", "sair"}}
	}

	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = "[" + it[0] + "]" + it[1]
	}
	return strings.Join(parts, " ")
}
