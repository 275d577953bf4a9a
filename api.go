package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// itemSource is the content-fetch capability the pipeline depends on.
// Keeping it an interface lets tests drive the pipeline without network I/O.
type itemSource interface {
	// TopStories returns the current top item IDs in relevance order.
	TopStories(ctx context.Context) ([]int, error)
	// Item returns one item's detail. A nil item with a nil error means
	// the upstream record is absent (deleted or dead entries come back
	// as JSON null).
	Item(ctx context.Context, id int) (*hnItem, error)
}

const defaultHNBaseURL = "https://hacker-news.firebaseio.com/v0"

// hnClient fetches items from the Hacker News Firebase API.
type hnClient struct {
	baseURL string
	client  *http.Client
}

func newHNClient(baseURL string) *hnClient {
	if baseURL == "" {
		baseURL = defaultHNBaseURL
	}
	return &hnClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *hnClient) TopStories(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.getJSON(ctx, c.baseURL+"/topstories.json", &ids); err != nil {
		return nil, err
	}
	slog.Debug("Fetched top stories", "count", len(ids))
	return ids, nil
}

func (c *hnClient) Item(ctx context.Context, id int) (*hnItem, error) {
	var item *hnItem
	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	if err := c.getJSON(ctx, url, &item); err != nil {
		return nil, err
	}
	// The API returns literal null for missing records; item stays nil.
	return item, nil
}

func (c *hnClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error %d for %s", res.StatusCode, url)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}
