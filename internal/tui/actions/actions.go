package actions

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the UI loop to drain the mailbox.
type TickMsg struct {
	At time.Time
}

type OpenURLSuccessMsg struct {
	Status string
}

type OpenURLErrorMsg struct {
	Err error
}

type CopyURLSuccessMsg struct {
	Status string
}

type CopyURLErrorMsg struct {
	Err error
}

type PreferenceSaveErrorMsg struct {
	Err error
}

type ClearStatusMsg struct {
	ID int
}

func TickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

func OpenURLCmd(url, label string, openFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if err := openFn(url); err != nil {
			return OpenURLErrorMsg{Err: err}
		}
		return OpenURLSuccessMsg{Status: "Opened " + label + " in browser"}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if err := copyFn(url); err != nil {
			return CopyURLErrorMsg{Err: err}
		}
		return CopyURLSuccessMsg{Status: "Copied URL to clipboard"}
	}
}

func PersistPreferencesCmd(saveFn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := saveFn(); err != nil {
			return PreferenceSaveErrorMsg{Err: err}
		}
		return nil
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
