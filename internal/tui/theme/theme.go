package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Rank       lipgloss.Style
	StoryTitle lipgloss.Style
	Domain     lipgloss.Style
	Score      lipgloss.Style
	Author     lipgloss.Style
	Comments   lipgloss.Style
	Age        lipgloss.Style
	Separator  lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	Preview    lipgloss.Style
	Empty      lipgloss.Style
	ErrorTitle lipgloss.Style
	ErrorBox   lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	ProgressFrom string
	ProgressTo   string
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpSky := lipgloss.Color("#89dceb")
	cpPink := lipgloss.Color("#f5c2e7")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpOverlay0 := lipgloss.Color("#6c7086")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpPeach),
		ModePill:   lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Rank:       lipgloss.NewStyle().Bold(true).Foreground(cpOverlay0),
		StoryTitle: lipgloss.NewStyle().Bold(true).Foreground(cpText),
		Domain:     lipgloss.NewStyle().Italic(true).Foreground(cpSky),
		Score:      lipgloss.NewStyle().Bold(true).Foreground(cpGreen),
		Author:     lipgloss.NewStyle().Foreground(cpPink),
		Comments:   lipgloss.NewStyle().Foreground(cpTeal),
		Age:        lipgloss.NewStyle().Foreground(cpYellow),
		Separator:  lipgloss.NewStyle().Foreground(cpOverlay0),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		Preview:    lipgloss.NewStyle().Foreground(cpSubtext1).PaddingLeft(4),
		Empty:      lipgloss.NewStyle().Bold(true).Foreground(cpYellow),
		ErrorTitle: lipgloss.NewStyle().Bold(true).Foreground(cpRed),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpRed).
			Padding(1, 2),
		StateIdle: lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn: lipgloss.NewStyle().Foreground(cpRed),
		StateLoad: lipgloss.NewStyle().Foreground(cpPeach),

		ProgressFrom: string(cpMauve),
		ProgressTo:   string(cpPeach),
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
