package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/glabrego/hntop/internal/hn"
	"github.com/glabrego/hntop/internal/render/text"
	"github.com/glabrego/hntop/internal/tui/state"
	tuitheme "github.com/glabrego/hntop/internal/tui/theme"
)

// LinesPerStory is how many terminal rows StoryLine produces.
const LinesPerStory = 2

type StoryLineParams struct {
	Story        hn.Story
	Rank         int
	Now          time.Time
	RelativeTime bool
	ShowNumbers  bool
	Active       bool
	Width        int
}

// StoryLine renders one story as a title line followed by a stats line.
func StoryLine(p StoryLineParams, th tuitheme.Theme) string {
	marker := " "
	if p.Active {
		marker = ">"
	}
	prefix := marker + " "
	if p.ShowNumbers {
		prefix = fmt.Sprintf("%s %2d. ", marker, p.Rank)
	}

	domain := ""
	if d := p.Story.Domain(); d != "" {
		domain = " (" + d + ")"
	}
	available := p.Width - lipgloss.Width(prefix) - runewidth.StringWidth(domain)
	if available < 1 {
		available = 1
	}
	title := strings.TrimSpace(p.Story.Title)
	if title == "" {
		title = "(untitled)"
	}
	title = runewidth.Truncate(title, available, "…")

	first := th.Rank.Render(prefix) + th.StoryTitle.Render(title) + th.Domain.Render(domain)

	sep := th.Separator.Render(" │ ")
	stats := []string{
		th.Score.Render("▲ " + humanize.Comma(int64(p.Story.Score))),
		th.Author.Render("by " + p.Story.By),
		th.Comments.Render(CommentsLabel(p.Story.Descendants)),
		th.Age.Render(AgeLabel(p.Now, p.Story.Posted(), p.RelativeTime)),
	}
	indent := strings.Repeat(" ", lipgloss.Width(prefix))
	second := indent + strings.Join(stats, sep)

	return th.RenderActiveLine(p.Active, first) + "\n" + th.RenderActiveLine(p.Active, second)
}

func CommentsLabel(n uint32) string {
	if n == 1 {
		return "1 comment"
	}
	return humanize.Comma(int64(n)) + " comments"
}

// AgeLabel formats the submission time either relative to now or as an
// absolute UTC timestamp.
func AgeLabel(now, posted time.Time, relative bool) string {
	if !relative {
		return posted.UTC().Format("2006-01-02 15:04")
	}
	if now.IsZero() {
		now = time.Now()
	}
	if posted.After(now) {
		return "just now"
	}
	return humanize.RelTime(posted, now, "ago", "from now")
}

type StoryListInput struct {
	Stories      []hn.Story
	Selected     int
	Now          time.Time
	RelativeTime bool
	ShowNumbers  bool
	Width        int
	Height       int
}

// StoryList renders the part of the list that fits in Height rows, keeping
// the selected story centered.
func StoryList(in StoryListInput, th tuitheme.Theme) string {
	if len(in.Stories) == 0 {
		return th.Empty.Render("No stories available")
	}
	visible := in.Height / LinesPerStory
	if visible < 1 {
		visible = 1
	}
	start, end := state.CenteredWindow(len(in.Stories), in.Selected, visible)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, StoryLine(StoryLineParams{
			Story:        in.Stories[i],
			Rank:         i + 1,
			Now:          in.Now,
			RelativeTime: in.RelativeTime,
			ShowNumbers:  in.ShowNumbers,
			Active:       i == in.Selected,
			Width:        in.Width,
		}, th))
	}
	return strings.Join(lines, "\n")
}

// TextPreview renders the body of a text post in at most maxLines rows. It
// returns "" for link posts.
func TextPreview(story hn.Story, width, maxLines int, th tuitheme.Theme) string {
	if strings.TrimSpace(story.Text) == "" || maxLines <= 0 {
		return ""
	}
	lines := text.Lines(story.Text, max(10, width-th.Preview.GetPaddingLeft()))
	if len(lines) > maxLines {
		lines = append(lines[:maxLines-1], "…")
	}
	return th.Preview.Render(strings.Join(lines, "\n"))
}
