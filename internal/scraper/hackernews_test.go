package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/socialpulse/internal/clients"
	"github.com/spacesedan/socialpulse/internal/models"
)

func TestHackerNewsFetcherNormalizesHits(t *testing.T) {
	now := time.Now()
	var filters []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filters = append(filters, r.URL.Query().Get("numericFilters"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.HNSearchResponse{Hits: []models.HNHit{
			{
				ObjectID:    "1001",
				Title:       "NVIDIA announces new cards",
				URL:         "https://example.com/article",
				Points:      250,
				NumComments: 90,
				CreatedAtI:  now.Add(-2 * 24 * time.Hour).Unix(),
				Author:      "pg",
			},
			{
				// Ask HN style: no external URL, the permalink is synthesized.
				ObjectID:   "1002",
				Title:      "Ask HN: which GPU?",
				StoryText:  "Looking at the 4090",
				CreatedAtI: now.Add(-24 * time.Hour).Unix(),
			},
		}})
	}))
	defer server.Close()

	client := clients.NewHackerNewsClientWithBaseURL(server.Client(), server.URL)
	fetcher := NewHackerNewsFetcher(client, []string{"nvidia"}, 0)

	posts := fetcher.Fetch(context.Background(), 7)

	require.Len(t, posts, 2)

	assert.Equal(t, models.SourceHackerNews, posts[0].Source)
	assert.Equal(t, "https://example.com/article", posts[0].URL)
	assert.Equal(t, 250, posts[0].Score)
	assert.Equal(t, "pg", posts[0].Author)

	assert.Equal(t, "https://news.ycombinator.com/item?id=1002", posts[1].URL)
	assert.Equal(t, "unknown", posts[1].Author)
	assert.Equal(t, "Looking at the 4090", posts[1].Text)

	// The window restriction is pushed to the index.
	require.Len(t, filters, 1)
	assert.True(t, strings.HasPrefix(filters[0], "created_at_i>"), filters[0])
}

func TestHackerNewsFetcherQueriesEachKeyword(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.HNSearchResponse{})
	}))
	defer server.Close()

	client := clients.NewHackerNewsClientWithBaseURL(server.Client(), server.URL)
	fetcher := NewHackerNewsFetcher(client, []string{"nvidia", "rtx", "gpu"}, 0)

	posts := fetcher.Fetch(context.Background(), 7)

	assert.Empty(t, posts)
	assert.Equal(t, []string{"nvidia", "rtx", "gpu"}, queries)
}

func TestHackerNewsFetcherDegradesOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := clients.NewHackerNewsClientWithBaseURL(server.Client(), server.URL)
	fetcher := NewHackerNewsFetcher(client, []string{"nvidia"}, 0)

	posts := fetcher.Fetch(context.Background(), 7)

	assert.Empty(t, posts)
}
