package state

import (
	"github.com/glabrego/hntop/internal/hn"
)

// Mode is the screen the app is on. The set of variants is closed: Loading,
// Listing and Failed.
type Mode interface {
	isMode()
}

type Loading struct {
	Progress int
}

type Listing struct{}

type Failed struct {
	Message string
}

func (Loading) isMode() {}
func (Listing) isMode() {}
func (Failed) isMode()  {}

// State is the application state. It is owned by the UI loop and never
// touched by the renderer or the fetch task.
type State struct {
	stories  []hn.Story
	selected int
	mode     Mode
}

func New() *State {
	return &State{mode: Loading{}}
}

func (s *State) Mode() Mode {
	return s.mode
}

func (s *State) Stories() []hn.Story {
	return s.stories
}

func (s *State) Selected() int {
	return s.selected
}

func (s *State) SelectNext() {
	if len(s.stories) == 0 {
		return
	}
	if s.selected < len(s.stories)-1 {
		s.selected++
	}
}

func (s *State) SelectPrevious() {
	if s.selected > 0 {
		s.selected--
	}
}

func (s *State) SelectFirst() {
	s.selected = 0
}

func (s *State) SelectLast() {
	s.selected = ClampCursor(len(s.stories)-1, len(s.stories))
}

// Current returns the selected story, or false when there is none.
func (s *State) Current() (hn.Story, bool) {
	if s.selected < 0 || s.selected >= len(s.stories) {
		return hn.Story{}, false
	}
	return s.stories[s.selected], true
}

func (s *State) ReplaceStories(stories []hn.Story) {
	s.stories = stories
	s.selected = 0
	s.mode = Listing{}
}

// SetError switches to the error screen. The story list is left as is.
func (s *State) SetError(message string) {
	s.mode = Failed{Message: message}
}

// UpdateProgress records fetch progress, clamped to [0, 100]. It is ignored
// outside the loading screen so a late report cannot bring it back.
func (s *State) UpdateProgress(percent int) {
	if _, ok := s.mode.(Loading); !ok {
		return
	}
	s.mode = Loading{Progress: min(max(percent, 0), 100)}
}

// BeginLoading discards the current stories and restarts the loading screen.
func (s *State) BeginLoading() {
	s.stories = nil
	s.selected = 0
	s.mode = Loading{}
}
