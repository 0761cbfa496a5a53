package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/hntop/internal/render/text"
	tuitheme "github.com/glabrego/hntop/internal/tui/theme"
)

const appTitle = "Hacker News Top Stories"

func Header(pill string, th tuitheme.Theme) string {
	title := th.Title.Render(appTitle)
	if pill == "" {
		return title
	}
	return title + " " + th.ModePill.Render(pill)
}

// ListPill is the "selected/total" counter shown next to the title.
func ListPill(selected, total int) string {
	if total == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", selected+1, total)
}

func LoadingScreen(percent, width int, th tuitheme.Theme) string {
	percent = min(max(percent, 0), 100)
	bar := progress.New(
		progress.WithGradient(th.ProgressFrom, th.ProgressTo),
		progress.WithoutPercentage(),
	)
	bar.Width = min(max(width-4, 10), 60)

	lines := []string{
		th.StateLoad.Render("Loading stories...") + " " + th.MetaValue.Render(fmt.Sprintf("%d%%", percent)),
		bar.ViewAs(float64(percent) / 100),
	}
	return strings.Join(lines, "\n")
}

func ErrorScreen(message string, width int, th tuitheme.Theme) string {
	if strings.TrimSpace(message) == "" {
		message = "unknown error"
	}
	inner := max(20, min(width, 80)-th.ErrorBox.GetHorizontalFrameSize())
	body := th.ErrorTitle.Render("Connection failed") + "\n\n" + strings.Join(text.Wrap(message, inner), "\n")

	lines := []string{
		th.ErrorBox.Render(body),
		"",
		th.MetaLabel.Render("Press r to retry or q to quit"),
	}
	return strings.Join(lines, "\n")
}

// UnknownScreen is drawn for a mode the renderer does not know about.
func UnknownScreen(th tuitheme.Theme) string {
	return th.ErrorTitle.Render("Unknown screen") + "\n" + th.MetaLabel.Render("Press q to quit")
}

func StatusLine(loading, warning bool, status string, th tuitheme.Theme) string {
	label := th.StateIdle.Render("state")
	stateName := "idle"
	switch {
	case warning:
		label = th.StateWarn.Render("state")
		stateName = "warning"
	case loading:
		label = th.StateLoad.Render("state")
		stateName = "loading"
	}
	main := "Ready"
	if status != "" {
		main = status
	}
	return fmt.Sprintf("%s: %s | %s", label, stateName, th.MetaValue.Render(main))
}

// Layout stacks body between header and the bottom chrome, padding so the
// chrome sticks to the last rows when height is known.
func Layout(header, body, bottom string, height int) string {
	top := header + "\n\n" + body
	if height <= 0 {
		return top + "\n\n" + bottom
	}
	blank := height - lipgloss.Height(top) - lipgloss.Height(bottom)
	if blank < 1 {
		blank = 1
	}
	return top + strings.Repeat("\n", blank+1) + bottom
}
