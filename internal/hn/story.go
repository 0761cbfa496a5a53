package hn

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const discussionBaseURL = "https://news.ycombinator.com/item?id="

// Story is a resolved top story. Values are immutable once decoded.
type Story struct {
	ID          uint64
	Title       string
	URL         string
	Score       uint32
	By          string
	Time        int64
	Descendants uint32
	Text        string
	Type        string
}

// item mirrors the Firebase item document. Required fields are pointers so a
// missing key can be told apart from a zero value.
type item struct {
	ID          uint64  `json:"id"`
	Title       *string `json:"title"`
	URL         string  `json:"url"`
	Score       *uint32 `json:"score"`
	By          *string `json:"by"`
	Time        *int64  `json:"time"`
	Descendants *uint32 `json:"descendants"`
	Text        string  `json:"text"`
	Type        string  `json:"type"`
	Deleted     bool    `json:"deleted"`
	Dead        bool    `json:"dead"`
}

func (it *item) story() (Story, error) {
	switch {
	case it.Deleted:
		return Story{}, errItemDeleted
	case it.Dead:
		return Story{}, errItemDead
	case it.Title == nil:
		return Story{}, missingField("title")
	case it.By == nil:
		return Story{}, missingField("by")
	case it.Score == nil:
		return Story{}, missingField("score")
	case it.Time == nil:
		return Story{}, missingField("time")
	}
	s := Story{
		ID:    it.ID,
		Title: *it.Title,
		URL:   strings.TrimSpace(it.URL),
		Score: *it.Score,
		By:    *it.By,
		Time:  *it.Time,
		Text:  it.Text,
		Type:  it.Type,
	}
	if it.Descendants != nil {
		s.Descendants = *it.Descendants
	}
	return s, nil
}

func (s Story) Posted() time.Time {
	return time.Unix(s.Time, 0)
}

func (s Story) HasURL() bool {
	return s.URL != ""
}

// Domain returns the host of the story link without a leading "www.", or ""
// for text posts and unparsable links.
func (s Story) Domain() string {
	if !s.HasURL() {
		return ""
	}
	parsed, err := url.Parse(s.URL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

func (s Story) DiscussionURL() string {
	return discussionBaseURL + strconv.FormatUint(s.ID, 10)
}
