package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spacesedan/socialpulse/internal/models"
)

const HN_SEARCH_URL = "https://hn.algolia.com/api/v1/search"

type HackerNewsClient struct {
	client  *http.Client
	baseURL string
}

func NewHackerNewsClient() *HackerNewsClient {
	return &HackerNewsClient{
		client:  &http.Client{Timeout: HTTP_TIMEOUT},
		baseURL: HN_SEARCH_URL,
	}
}

func NewHackerNewsClientWithBaseURL(client *http.Client, baseURL string) *HackerNewsClient {
	return &HackerNewsClient{client: client, baseURL: baseURL}
}

// SearchStories queries the Algolia HN index for stories matching the query
// and created after the given instant. The index does the keyword matching
// server-side, so callers do not re-filter.
func (hc *HackerNewsClient) SearchStories(ctx context.Context, query string, since time.Time) (*models.HNSearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("tags", "story")
	params.Set("numericFilters", fmt.Sprintf("created_at_i>%d", since.Unix()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hc.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("[HackerNewsClient] failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[HackerNewsClient] request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[HackerNewsClient] unexpected status %d", resp.StatusCode)
	}

	var search models.HNSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("[HackerNewsClient] failed to decode response: %w", err)
	}
	return &search, nil
}
