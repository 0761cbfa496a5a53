package actions

import (
	"sync"

	"github.com/glabrego/hntop/internal/hn"
)

// Message is something a fetch task reports to the UI loop. The set of
// variants is closed: ProgressMsg, StoriesLoadedMsg and FetchFailedMsg.
type Message interface {
	Generation() uint64
	isMessage()
}

type ProgressMsg struct {
	Gen     uint64
	Percent int
}

type StoriesLoadedMsg struct {
	Gen     uint64
	Stories []hn.Story
}

type FetchFailedMsg struct {
	Gen uint64
	Err error
}

func (m ProgressMsg) Generation() uint64      { return m.Gen }
func (m StoriesLoadedMsg) Generation() uint64 { return m.Gen }
func (m FetchFailedMsg) Generation() uint64   { return m.Gen }

func (ProgressMsg) isMessage()      {}
func (StoriesLoadedMsg) isMessage() {}
func (FetchFailedMsg) isMessage()   {}

// Mailbox is an unbounded multi-producer single-consumer queue between fetch
// tasks and the UI loop. Send never blocks.
type Mailbox struct {
	mu    sync.Mutex
	queue []Message
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

func (b *Mailbox) Send(msg Message) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()
}

// Drain removes and returns every queued message in send order without
// waiting for more.
func (b *Mailbox) Drain() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil
	}
	out := b.queue
	b.queue = nil
	return out
}

// Sender is a send-only handle bound to one fetch generation.
type Sender struct {
	box *Mailbox
	gen uint64
}

func (b *Mailbox) Sender(gen uint64) Sender {
	return Sender{box: b, gen: gen}
}

func (s Sender) Generation() uint64 {
	return s.gen
}

func (s Sender) ReportProgress(percent int) {
	s.box.Send(ProgressMsg{Gen: s.gen, Percent: percent})
}

func (s Sender) Loaded(stories []hn.Story) {
	s.box.Send(StoriesLoadedMsg{Gen: s.gen, Stories: stories})
}

func (s Sender) Failed(err error) {
	s.box.Send(FetchFailedMsg{Gen: s.gen, Err: err})
}
