package hn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// MaxTopStories is the size of the ranked list served by the index endpoint.
const MaxTopStories = 500

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// TopStoryIDs returns the ranked story identifiers, truncated to limit when
// limit is positive. Every failure wraps ErrIndexUnavailable.
func (c *Client) TopStoryIDs(ctx context.Context, limit int) ([]uint64, error) {
	body, err := c.get(ctx, "/topstories.json", "top stories")
	if err != nil {
		return nil, &IndexError{Err: err}
	}

	var ids []uint64
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, &IndexError{Err: fmt.Errorf("decode top stories response: %w", err)}
	}
	if ids == nil {
		return nil, &IndexError{Err: fmt.Errorf("decode top stories response: null index")}
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Item resolves one story. Every failure wraps ErrItemUnavailable.
func (c *Client) Item(ctx context.Context, id uint64) (Story, error) {
	resource := "item " + strconv.FormatUint(id, 10)
	body, err := c.get(ctx, "/item/"+strconv.FormatUint(id, 10)+".json", resource)
	if err != nil {
		return Story{}, &ItemError{ID: id, Err: err}
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return Story{}, &ItemError{ID: id, Err: errItemNull}
	}

	var it item
	if err := json.Unmarshal(body, &it); err != nil {
		return Story{}, &ItemError{ID: id, Err: fmt.Errorf("decode %s response: %w", resource, err)}
	}
	story, err := it.story()
	if err != nil {
		return Story{}, &ItemError{ID: id, Err: err}
	}
	if story.ID == 0 {
		story.ID = id
	}
	return story, nil
}

func (c *Client) get(ctx context.Context, path, resource string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%s failed with status %d: %s", resource, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", resource, err)
	}
	return body, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hntop")
	return req, nil
}
