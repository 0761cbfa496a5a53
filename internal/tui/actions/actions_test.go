package actions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glabrego/hntop/internal/app"
	"github.com/glabrego/hntop/internal/hn"
)

type fakeFetcher struct {
	stories  []hn.Story
	err      error
	progress []int
	block    chan struct{}
}

func (f *fakeFetcher) FetchTopStories(ctx context.Context, progress app.ProgressReporter) ([]hn.Story, error) {
	for _, p := range f.progress {
		progress.ReportProgress(p)
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.stories, nil
}

func TestMailbox_DrainReturnsSendOrder(t *testing.T) {
	box := NewMailbox()
	if got := box.Drain(); got != nil {
		t.Fatalf("expected empty drain, got %+v", got)
	}

	sender := box.Sender(3)
	sender.ReportProgress(10)
	sender.ReportProgress(20)
	sender.Loaded([]hn.Story{{ID: 1}})

	msgs := box.Drain()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if p, ok := msgs[0].(ProgressMsg); !ok || p.Percent != 10 || p.Gen != 3 {
		t.Fatalf("unexpected first message: %#v", msgs[0])
	}
	if p, ok := msgs[1].(ProgressMsg); !ok || p.Percent != 20 {
		t.Fatalf("unexpected second message: %#v", msgs[1])
	}
	if l, ok := msgs[2].(StoriesLoadedMsg); !ok || len(l.Stories) != 1 || l.Generation() != 3 {
		t.Fatalf("unexpected third message: %#v", msgs[2])
	}
	if got := box.Drain(); got != nil {
		t.Fatalf("expected mailbox empty after drain, got %+v", got)
	}
}

func TestMailbox_ConcurrentSendersNeverBlock(t *testing.T) {
	box := NewMailbox()
	var wg sync.WaitGroup
	for gen := uint64(1); gen <= 4; gen++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sender := box.Sender(gen)
			for p := 0; p < 1000; p++ {
				sender.ReportProgress(p)
			}
		}()
	}
	wg.Wait()

	msgs := box.Drain()
	if len(msgs) != 4000 {
		t.Fatalf("expected 4000 messages, got %d", len(msgs))
	}
	last := map[uint64]int{}
	for _, msg := range msgs {
		p := msg.(ProgressMsg)
		if prev, ok := last[p.Gen]; ok && p.Percent < prev {
			t.Fatalf("generation %d out of order: %d after %d", p.Gen, p.Percent, prev)
		}
		last[p.Gen] = p.Percent
	}
}

func TestRunFetch_SuccessSendsProgressThenLoaded(t *testing.T) {
	box := NewMailbox()
	fetcher := &fakeFetcher{stories: []hn.Story{{ID: 1}, {ID: 3}}, progress: []int{10, 20, 100}}

	RunFetch(context.Background(), fetcher, box.Sender(1))

	msgs := box.Drain()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %#v", msgs)
	}
	loaded, ok := msgs[3].(StoriesLoadedMsg)
	if !ok || len(loaded.Stories) != 2 {
		t.Fatalf("expected terminal StoriesLoadedMsg, got %#v", msgs[3])
	}
}

func TestRunFetch_FailureSendsFailed(t *testing.T) {
	box := NewMailbox()
	fetcher := &fakeFetcher{err: &hn.IndexError{Err: errors.New("dial tcp: refused")}}

	RunFetch(context.Background(), fetcher, box.Sender(2))

	msgs := box.Drain()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %#v", msgs)
	}
	failed, ok := msgs[0].(FetchFailedMsg)
	if !ok || !errors.Is(failed.Err, hn.ErrIndexUnavailable) || failed.Gen != 2 {
		t.Fatalf("unexpected failure message: %#v", msgs[0])
	}
}

func TestStartFetch_CancelSuppressesTerminalMessage(t *testing.T) {
	box := NewMailbox()
	fetcher := &fakeFetcher{block: make(chan struct{}), progress: []int{10}}

	cancel := StartFetch(context.Background(), fetcher, box.Sender(1))
	deadline := time.Now().Add(time.Second)
	var msgs []Message
	for len(msgs) == 0 && time.Now().Before(deadline) {
		msgs = append(msgs, box.Drain()...)
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	time.Sleep(30 * time.Millisecond)
	msgs = append(msgs, box.Drain()...)

	if len(msgs) != 1 {
		t.Fatalf("expected only the progress message, got %#v", msgs)
	}
	if _, ok := msgs[0].(ProgressMsg); !ok {
		t.Fatalf("expected progress message, got %#v", msgs[0])
	}
}

func TestOpenURLCmd(t *testing.T) {
	var opened string
	msg := OpenURLCmd("https://example.com", "story", func(url string) error {
		opened = url
		return nil
	})()
	if opened != "https://example.com" {
		t.Fatalf("expected opener to receive URL, got %q", opened)
	}
	if ok, isOK := msg.(OpenURLSuccessMsg); !isOK || ok.Status != "Opened story in browser" {
		t.Fatalf("unexpected message: %#v", msg)
	}

	msg = OpenURLCmd("https://example.com", "story", func(string) error { return errors.New("no browser") })()
	if _, isErr := msg.(OpenURLErrorMsg); !isErr {
		t.Fatalf("expected OpenURLErrorMsg, got %#v", msg)
	}
}

func TestCopyURLCmd(t *testing.T) {
	msg := CopyURLCmd("https://example.com", func(string) error { return nil })()
	if _, ok := msg.(CopyURLSuccessMsg); !ok {
		t.Fatalf("expected CopyURLSuccessMsg, got %#v", msg)
	}
	msg = CopyURLCmd("https://example.com", func(string) error { return errors.New("no clipboard") })()
	if _, ok := msg.(CopyURLErrorMsg); !ok {
		t.Fatalf("expected CopyURLErrorMsg, got %#v", msg)
	}
}

func TestPersistPreferencesCmd(t *testing.T) {
	if msg := PersistPreferencesCmd(func() error { return nil })(); msg != nil {
		t.Fatalf("expected nil message on success, got %#v", msg)
	}
	msg := PersistPreferencesCmd(func() error { return errors.New("read-only") })()
	if _, ok := msg.(PreferenceSaveErrorMsg); !ok {
		t.Fatalf("expected PreferenceSaveErrorMsg, got %#v", msg)
	}
}
