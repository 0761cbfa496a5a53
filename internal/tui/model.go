package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/glabrego/hntop/internal/app"
	"github.com/glabrego/hntop/internal/tui/actions"
	"github.com/glabrego/hntop/internal/tui/platform"
	"github.com/glabrego/hntop/internal/tui/state"
	tuitheme "github.com/glabrego/hntop/internal/tui/theme"
	"github.com/glabrego/hntop/internal/tui/view"
)

const (
	defaultPollInterval = 100 * time.Millisecond
	previewMaxLines     = 6
)

// spawnFetchMsg asks the model to start the first fetch generation.
type spawnFetchMsg struct{}

type Options struct {
	PollInterval time.Duration
	Logger       *log.Logger
}

type Model struct {
	service      actions.Fetcher
	state        *state.State
	mailbox      *actions.Mailbox
	generation   uint64
	cancel       context.CancelFunc
	pollInterval time.Duration
	logger       *log.Logger

	theme tuitheme.Theme
	keys  keyMap
	help  help.Model

	relativeTime bool
	showNumbers  bool
	width        int
	height       int
	status       string
	statusWarn   bool
	statusID     int

	openURLFn         func(string) error
	copyURLFn         func(string) error
	nowFn             func() time.Time
	savePreferencesFn func(app.UIPreferences) error
}

func NewModel(service actions.Fetcher, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	prefs := app.DefaultUIPreferences()
	return Model{
		service:      service,
		state:        state.New(),
		mailbox:      actions.NewMailbox(),
		pollInterval: opts.PollInterval,
		logger:       opts.Logger,
		theme:        tuitheme.Default(),
		keys:         keys,
		help:         help.New(),
		relativeTime: prefs.RelativeTime,
		showNumbers:  prefs.ShowNumbers,
		openURLFn:    platform.OpenURLInBrowser,
		copyURLFn:    platform.CopyURLToClipboard,
		nowFn:        time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return spawnFetchMsg{} },
		actions.TickCmd(m.pollInterval),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spawnFetchMsg:
		m.spawnFetch()
		return m, nil
	case actions.TickMsg:
		m.drainMailbox()
		return m, actions.TickCmd(m.pollInterval)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case actions.OpenURLSuccessMsg:
		return m.setStatus(msg.Status, false, 3*time.Second)
	case actions.OpenURLErrorMsg:
		m.logger.Warn("open link failed", "err", msg.Err)
		return m.setStatus(msg.Err.Error(), true, 4*time.Second)
	case actions.CopyURLSuccessMsg:
		return m.setStatus(msg.Status, false, 3*time.Second)
	case actions.CopyURLErrorMsg:
		m.logger.Warn("copy link failed", "err", msg.Err)
		return m.setStatus(msg.Err.Error(), true, 4*time.Second)
	case actions.PreferenceSaveErrorMsg:
		m.logger.Warn("persist preferences failed", "err", msg.Err)
		return m.setStatus("Could not persist UI preferences", true, 4*time.Second)
	case actions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.statusWarn = false
		}
		return m, nil
	}
	return m, nil
}

// spawnFetch starts a new fetch generation. The previous task, if any, is
// cancelled and anything it still reports is dropped on drain.
func (m *Model) spawnFetch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.generation++
	m.state.BeginLoading()
	m.logger.Debug("fetch started", "generation", m.generation)
	if m.service == nil {
		return
	}
	m.cancel = actions.StartFetch(context.Background(), m.service, m.mailbox.Sender(m.generation))
}

func (m *Model) drainMailbox() {
	for _, msg := range m.mailbox.Drain() {
		if msg.Generation() != m.generation {
			m.logger.Debug("dropping stale message", "generation", msg.Generation(), "current", m.generation)
			continue
		}
		switch msg := msg.(type) {
		case actions.ProgressMsg:
			m.state.UpdateProgress(msg.Percent)
		case actions.StoriesLoadedMsg:
			m.state.ReplaceStories(msg.Stories)
			m.cancel = nil
			m.logger.Info("stories loaded", "generation", msg.Gen, "count", len(msg.Stories))
		case actions.FetchFailedMsg:
			m.state.SetError(msg.Err.Error())
			m.cancel = nil
			m.logger.Error("fetch failed", "generation", msg.Gen, "err", msg.Err)
		default:
			m.logger.Error("unknown mailbox message", "type", fmt.Sprintf("%T", msg))
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch mode := m.state.Mode().(type) {
	case state.Loading:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
	case state.Listing:
		return m.handleListingKey(msg)
	case state.Failed:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Refresh):
			m.logger.Info("retrying fetch", "previous_error", mode.Message)
			m.spawnFetch()
		}
	default:
		m.logger.Error("key press in unknown mode", "mode", fmt.Sprintf("%T", mode))
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
	}
	return m, nil
}

func (m Model) handleListingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.state.SelectPrevious()
	case key.Matches(msg, m.keys.Down):
		m.state.SelectNext()
	case key.Matches(msg, m.keys.First):
		m.state.SelectFirst()
	case key.Matches(msg, m.keys.Last):
		m.state.SelectLast()
	case key.Matches(msg, m.keys.Open):
		if story, ok := m.state.Current(); ok {
			return m.openURL(story.URL, "story")
		}
	case key.Matches(msg, m.keys.Discussion):
		if story, ok := m.state.Current(); ok {
			return m.openURL(story.DiscussionURL(), "discussion")
		}
	case key.Matches(msg, m.keys.Copy):
		return m.copyCurrentURL()
	case key.Matches(msg, m.keys.Refresh):
		m.logger.Info("refreshing stories", "generation", m.generation+1)
		m.spawnFetch()
	case key.Matches(msg, m.keys.ToggleTime):
		m.relativeTime = !m.relativeTime
		return m.preferenceChanged("Relative time", m.relativeTime)
	case key.Matches(msg, m.keys.ToggleNumbers):
		m.showNumbers = !m.showNumbers
		return m.preferenceChanged("Story numbers", m.showNumbers)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.logger.Info("quit", "generation", m.generation)
	return m, tea.Quit
}

func (m Model) openURL(raw, label string) (tea.Model, tea.Cmd) {
	validURL, err := platform.ValidateURL(raw)
	if err != nil {
		return m.setStatus(err.Error(), true, 4*time.Second)
	}
	return m, actions.OpenURLCmd(validURL, label, m.openURLFn)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	story, ok := m.state.Current()
	if !ok {
		return m, nil
	}
	validURL, err := platform.ValidateURL(story.URL)
	if err != nil {
		return m.setStatus(err.Error(), true, 4*time.Second)
	}
	return m, actions.CopyURLCmd(validURL, m.copyURLFn)
}

func (m Model) preferenceChanged(name string, on bool) (tea.Model, tea.Cmd) {
	value := "off"
	if on {
		value = "on"
	}
	next, clearCmd := m.setStatus(name+": "+value, false, 3*time.Second)
	return next, tea.Batch(clearCmd, next.(Model).persistPreferences())
}

func (m Model) persistPreferences() tea.Cmd {
	if m.savePreferencesFn == nil {
		return nil
	}
	saveFn := m.savePreferencesFn
	prefs := m.Preferences()
	return actions.PersistPreferencesCmd(func() error { return saveFn(prefs) })
}

func (m Model) setStatus(status string, warn bool, ttl time.Duration) (tea.Model, tea.Cmd) {
	m.status = status
	m.statusWarn = warn
	m.statusID++
	return m, actions.ClearStatusCmd(m.statusID, ttl)
}

func (m Model) View() string {
	th := m.theme
	mode := m.state.Mode()

	var header, body string
	switch mode := mode.(type) {
	case state.Loading:
		header = view.Header("loading", th)
		body = view.LoadingScreen(mode.Progress, m.width, th)
	case state.Listing:
		header = view.Header(view.ListPill(m.state.Selected(), len(m.state.Stories())), th)
		body = m.listView()
	case state.Failed:
		header = view.Header("error", th)
		body = view.ErrorScreen(mode.Message, m.width, th)
	default:
		m.logger.Error("rendering unknown mode", "mode", fmt.Sprintf("%T", mode))
		header = view.Header("", th)
		body = view.UnknownScreen(th)
	}

	_, loading := mode.(state.Loading)
	bottom := view.StatusLine(loading, m.statusWarn, m.status, th) + "\n" + m.help.View(m.keys.helpFor(mode))
	return view.Layout(header, body, bottom, m.height)
}

func (m Model) listView() string {
	stories := m.state.Stories()
	width := m.width
	if width <= 0 {
		width = 80
	}

	preview := ""
	if story, ok := m.state.Current(); ok {
		preview = view.TextPreview(story, width, previewMaxLines, m.theme)
	}

	listHeight := len(stories) * view.LinesPerStory
	if m.height > 0 {
		// header, blank, gap and status rows plus the help block
		chrome := 4 + lipgloss.Height(m.help.View(m.keys.helpFor(state.Listing{})))
		if preview != "" {
			chrome += previewMaxLines + 1
		}
		listHeight = max(view.LinesPerStory, m.height-chrome)
	}

	list := view.StoryList(view.StoryListInput{
		Stories:      stories,
		Selected:     m.state.Selected(),
		Now:          m.nowFn(),
		RelativeTime: m.relativeTime,
		ShowNumbers:  m.showNumbers,
		Width:        width,
		Height:       listHeight,
	}, m.theme)
	if preview == "" {
		return list
	}
	return list + "\n\n" + preview
}

func (m *Model) ApplyPreferences(prefs app.UIPreferences) {
	m.relativeTime = prefs.RelativeTime
	m.showNumbers = prefs.ShowNumbers
}

func (m *Model) SetPreferencesSaver(saveFn func(app.UIPreferences) error) {
	m.savePreferencesFn = saveFn
}

func (m Model) Preferences() app.UIPreferences {
	return app.UIPreferences{
		RelativeTime: m.relativeTime,
		ShowNumbers:  m.showNumbers,
	}
}
