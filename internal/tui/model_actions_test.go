package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/hntop/internal/app"
	"github.com/glabrego/hntop/internal/hn"
	"github.com/glabrego/hntop/internal/tui/actions"
	"github.com/glabrego/hntop/internal/tui/platform"
)

func TestModelActions_OpenSelectedStory(t *testing.T) {
	m := listingModel(t, sampleStories())
	var opened string
	m.openURLFn = func(url string) error {
		opened = url
		return nil
	}

	m, _ = update(t, m, runes("j"))
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected open command")
	}
	msg := cmd()
	if opened != "https://example.com/3" {
		t.Fatalf("expected selected story URL, got %q", opened)
	}
	m, _ = update(t, m, msg)
	if m.status != "Opened story in browser" || m.statusWarn {
		t.Fatalf("unexpected status %q (warn=%v)", m.status, m.statusWarn)
	}
}

func TestModelActions_OpenWithoutURLSetsStatus(t *testing.T) {
	m := listingModel(t, []hn.Story{{ID: 7, Title: "Ask HN: anything", By: "dan", Text: "Question body"}})
	m.openURLFn = func(string) error {
		t.Fatal("opener must not be called for a story without URL")
		return nil
	}

	m, cmd := update(t, m, runes("o"))
	if cmd == nil {
		t.Fatal("expected status clear command")
	}
	if m.status != "story has no URL" || !m.statusWarn {
		t.Fatalf("unexpected status %q (warn=%v)", m.status, m.statusWarn)
	}
	if !isListing(m) {
		t.Fatalf("expected to stay on the list, got %#v", m.state.Mode())
	}
	if view := plainView(m); !strings.Contains(view, "Question body") {
		t.Fatalf("expected text post preview, got:\n%s", view)
	}
}

func TestModelActions_OpenFailureIsNonFatal(t *testing.T) {
	m := listingModel(t, sampleStories())
	m.openURLFn = func(url string) error {
		return &platform.OpenError{URL: url, Err: errors.New("xdg-open not found")}
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	if !m.statusWarn || !strings.Contains(m.status, "xdg-open not found") {
		t.Fatalf("expected warning status, got %q (warn=%v)", m.status, m.statusWarn)
	}
	if !isListing(m) || len(m.state.Stories()) != 2 {
		t.Fatalf("expected list untouched, got %#v", m.state.Mode())
	}
}

func TestModelActions_OpenDiscussion(t *testing.T) {
	m := listingModel(t, sampleStories())
	var opened string
	m.openURLFn = func(url string) error {
		opened = url
		return nil
	}

	_, cmd := update(t, m, runes("c"))
	if cmd == nil {
		t.Fatal("expected open command")
	}
	msg := cmd()
	if opened != "https://news.ycombinator.com/item?id=1" {
		t.Fatalf("expected discussion URL, got %q", opened)
	}
	if ok, isOK := msg.(actions.OpenURLSuccessMsg); !isOK || ok.Status != "Opened discussion in browser" {
		t.Fatalf("unexpected message: %#v", msg)
	}
}

func TestModelActions_CopyURL(t *testing.T) {
	m := listingModel(t, sampleStories())
	var copied string
	m.copyURLFn = func(url string) error {
		copied = url
		return nil
	}

	_, cmd := update(t, m, runes("y"))
	m, _ = update(t, m, cmd())
	if copied != "https://example.com/1" {
		t.Fatalf("expected copied URL, got %q", copied)
	}
	if m.status != "Copied URL to clipboard" {
		t.Fatalf("unexpected status: %q", m.status)
	}

	m.copyURLFn = func(string) error { return errors.New("no clipboard utility found") }
	_, cmd = update(t, m, runes("y"))
	m, _ = update(t, m, cmd())
	if !m.statusWarn || m.status != "no clipboard utility found" {
		t.Fatalf("unexpected status %q (warn=%v)", m.status, m.statusWarn)
	}
}

func TestModelActions_ClearStatusOnlyForLatest(t *testing.T) {
	m := listingModel(t, sampleStories())
	m, _ = update(t, m, actions.OpenURLSuccessMsg{Status: "first"})
	m, _ = update(t, m, actions.OpenURLSuccessMsg{Status: "second"})

	m, _ = update(t, m, actions.ClearStatusMsg{ID: m.statusID - 1})
	if m.status != "second" {
		t.Fatalf("expected stale clear to be ignored, got %q", m.status)
	}
	m, _ = update(t, m, actions.ClearStatusMsg{ID: m.statusID})
	if m.status != "" {
		t.Fatalf("expected status cleared, got %q", m.status)
	}
}

func TestModelActions_TogglePreferences(t *testing.T) {
	m := listingModel(t, sampleStories())
	var saved []app.UIPreferences
	m.SetPreferencesSaver(func(p app.UIPreferences) error {
		saved = append(saved, p)
		return nil
	})

	m, cmd := update(t, m, runes("t"))
	if cmd == nil {
		t.Fatal("expected toggle commands")
	}
	if m.Preferences().RelativeTime {
		t.Fatal("expected relative time off after toggle")
	}
	if m.status != "Relative time: off" {
		t.Fatalf("unexpected status: %q", m.status)
	}
	if msg := m.persistPreferences()(); msg != nil {
		t.Fatalf("expected successful save, got %#v", msg)
	}
	if len(saved) != 1 || saved[0].RelativeTime || !saved[0].ShowNumbers {
		t.Fatalf("unexpected saved preferences: %+v", saved)
	}
	if view := plainView(m); !strings.Contains(view, "2026-02-11 12:00") {
		t.Fatalf("expected absolute timestamps, got:\n%s", view)
	}

	m, _ = update(t, m, runes("n"))
	if m.Preferences().ShowNumbers {
		t.Fatal("expected numbers off after toggle")
	}
	if view := plainView(m); strings.Contains(view, " 1. First story") {
		t.Fatalf("expected rank numbers hidden, got:\n%s", view)
	}
}

func TestModelActions_PreferenceSaveFailureIsReported(t *testing.T) {
	m := listingModel(t, sampleStories())
	m.SetPreferencesSaver(func(app.UIPreferences) error { return errors.New("read-only database") })

	m, _ = update(t, m, runes("n"))
	msg := m.persistPreferences()()
	m, _ = update(t, m, msg)
	if m.status != "Could not persist UI preferences" || !m.statusWarn {
		t.Fatalf("unexpected status %q (warn=%v)", m.status, m.statusWarn)
	}
}

func TestModelActions_ApplyPreferences(t *testing.T) {
	m := NewModel(nil, Options{})
	m.ApplyPreferences(app.UIPreferences{RelativeTime: false, ShowNumbers: true})
	if got := m.Preferences(); got.RelativeTime || !got.ShowNumbers {
		t.Fatalf("unexpected preferences: %+v", got)
	}
	if m.persistPreferences() != nil {
		t.Fatal("expected no persistence without a saver")
	}
}

func TestModelActions_HelpToggle(t *testing.T) {
	m := listingModel(t, sampleStories())
	if view := plainView(m); strings.Contains(view, "relative time") {
		t.Fatalf("expected short help by default, got:\n%s", view)
	}
	m, _ = update(t, m, runes("?"))
	if view := plainView(m); !strings.Contains(view, "relative time") || !strings.Contains(view, "comments") {
		t.Fatalf("expected full help, got:\n%s", view)
	}
}
