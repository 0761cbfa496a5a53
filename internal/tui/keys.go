package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/glabrego/hntop/internal/tui/state"
)

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	First         key.Binding
	Last          key.Binding
	Open          key.Binding
	Discussion    key.Binding
	Copy          key.Binding
	Refresh       key.Binding
	ToggleTime    key.Binding
	ToggleNumbers key.Binding
	Help          key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	First:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
	Last:          key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
	Open:          key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open link")),
	Discussion:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comments")),
	Copy:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy URL")),
	Refresh:       key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "refresh")),
	ToggleTime:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "relative time")),
	ToggleNumbers: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "numbers")),
	Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:          key.NewBinding(key.WithKeys("q", "Q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// modeHelp is the help.KeyMap shown for one screen. Only the bindings the
// screen accepts are listed.
type modeHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h modeHelp) ShortHelp() []key.Binding  { return h.short }
func (h modeHelp) FullHelp() [][]key.Binding { return h.full }

var _ help.KeyMap = modeHelp{}

func (k keyMap) helpFor(mode state.Mode) modeHelp {
	switch mode.(type) {
	case state.Loading:
		return modeHelp{
			short: []key.Binding{k.Quit},
			full:  [][]key.Binding{{k.Quit}},
		}
	case state.Listing:
		return modeHelp{
			short: []key.Binding{k.Up, k.Down, k.Open, k.Refresh, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.Up, k.Down, k.First, k.Last},
				{k.Open, k.Discussion, k.Copy},
				{k.Refresh, k.ToggleTime, k.ToggleNumbers},
				{k.Help, k.Quit},
			},
		}
	case state.Failed:
		retry := key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "retry"))
		return modeHelp{
			short: []key.Binding{retry, k.Quit},
			full:  [][]key.Binding{{retry, k.Quit}},
		}
	default:
		return modeHelp{
			short: []key.Binding{k.Quit},
			full:  [][]key.Binding{{k.Quit}},
		}
	}
}
