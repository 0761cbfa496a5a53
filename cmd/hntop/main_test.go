package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/hntop/internal/logging"
)

type refuseModel struct{ t *testing.T }

func (m refuseModel) Init() tea.Cmd {
	m.t.Fatal("program must not start without a terminal")
	return nil
}

func (m refuseModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, tea.Quit }
func (m refuseModel) View() string                        { return "" }

func TestRun_RequiresTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})

	err = run(refuseModel{t: t}, r, w, logging.Discard())
	if !errors.Is(err, errNotTerminal) {
		t.Fatalf("expected errNotTerminal, got %v", err)
	}
}

func TestReportRunError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "terminal", err: errNotTerminal, want: "Failed to enable raw mode: stdin and stdout must be a terminal\n"},
		{name: "runtime", err: errors.New("program was killed"), want: "Application error: program was killed\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportRunError(&buf, tc.err)
			if got := buf.String(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if strings.Count(buf.String(), "\n") != 1 {
				t.Fatalf("expected a single line, got %q", buf.String())
			}
		})
	}
}
