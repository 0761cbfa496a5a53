package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestRenderActiveLine(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	if got := th.RenderActiveLine(false, "plain"); got != "plain" {
		t.Fatalf("inactive line should be untouched, got %q", got)
	}
	active := th.RenderActiveLine(true, "selected")
	if !strings.Contains(active, "\x1b[") || !strings.Contains(active, "selected") {
		t.Fatalf("expected styled active line, got %q", active)
	}
}

func TestDefault_StylesRender(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	for name, style := range map[string]lipgloss.Style{
		"score":    th.Score,
		"domain":   th.Domain,
		"author":   th.Author,
		"comments": th.Comments,
	} {
		if got := style.Render("x"); !strings.Contains(got, "\x1b[") {
			t.Fatalf("expected %s style to emit ANSI, got %q", name, got)
		}
	}
	if th.ProgressFrom == "" || th.ProgressTo == "" {
		t.Fatal("expected progress gradient colors")
	}
}
