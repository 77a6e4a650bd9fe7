package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/socialpulse/internal/clients"
	"github.com/spacesedan/socialpulse/internal/models"
)

func redditChild(title, selftext, permalink, author string, createdAt time.Time) models.RedditListingChild {
	return models.RedditListingChild{Data: models.RedditPostData{
		Subreddit:   "nvidia",
		Author:      author,
		Title:       title,
		Selftext:    selftext,
		Permalink:   permalink,
		Score:       12,
		NumComments: 3,
		CreatedUTC:  float64(createdAt.Unix()),
	}}
}

func serveListing(t *testing.T, listings map[string]models.RedditListingResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listing, ok := listings[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(listing))
	}))
}

func TestRedditFetcherFiltersWindowAndKeywords(t *testing.T) {
	now := time.Now()
	server := serveListing(t, map[string]models.RedditListingResponse{
		"/r/nvidia/new.json": {Data: models.RedditListingData{Children: []models.RedditListingChild{
			redditChild("RTX drivers crashing", "", "/r/nvidia/fresh", "user1", now.Add(-24*time.Hour)),
			redditChild("RTX price drop", "", "/r/nvidia/stale", "user2", now.Add(-10*24*time.Hour)),
			redditChild("My cat photos", "nothing relevant", "/r/nvidia/offtopic", "user3", now.Add(-24*time.Hour)),
			redditChild("Build help", "is the rtx worth it?", "/r/nvidia/body-match", "", now.Add(-24*time.Hour)),
		}}},
	})
	defer server.Close()

	client := clients.NewRedditClientWithBaseURL(server.Client(), server.URL)
	fetcher := NewRedditFetcher(client, []string{"nvidia"}, []string{"rtx"}, 25, 0)

	posts := fetcher.Fetch(context.Background(), 7)

	require.Len(t, posts, 2)
	assert.Equal(t, "https://reddit.com/r/nvidia/fresh", posts[0].URL)
	assert.Equal(t, models.SourceReddit, posts[0].Source)
	assert.Equal(t, "nvidia", posts[0].Subreddit)

	// Empty remote author falls back to the deleted sentinel.
	assert.Equal(t, "https://reddit.com/r/nvidia/body-match", posts[1].URL)
	assert.Equal(t, "[deleted]", posts[1].Author)
}

func TestRedditFetcherSearchSkipsKeywordRecheck(t *testing.T) {
	now := time.Now()
	server := serveListing(t, map[string]models.RedditListingResponse{
		"/search.json": {Data: models.RedditListingData{Children: []models.RedditListingChild{
			// The remote index matched the query; the title does not need to.
			redditChild("Upgrading my build", "", "/r/buildapc/search-hit", "user4", now.Add(-24*time.Hour)),
			redditChild("Old thread", "", "/r/buildapc/old", "user5", now.Add(-30*24*time.Hour)),
		}}},
	})
	defer server.Close()

	client := clients.NewRedditClientWithBaseURL(server.Client(), server.URL)
	fetcher := NewRedditFetcher(client, nil, []string{"rtx"}, 25, 0)

	posts := fetcher.Fetch(context.Background(), 7)

	require.Len(t, posts, 1)
	assert.Equal(t, "https://reddit.com/r/buildapc/search-hit", posts[0].URL)
}

func TestRedditFetcherDegradesOnSubSourceFailure(t *testing.T) {
	now := time.Now()
	server := serveListing(t, map[string]models.RedditListingResponse{
		// /r/broken/new.json is missing and returns 404.
		"/r/nvidia/new.json": {Data: models.RedditListingData{Children: []models.RedditListingChild{
			redditChild("rtx post", "", "/r/nvidia/only", "user1", now.Add(-time.Hour)),
		}}},
		"/search.json": {Data: models.RedditListingData{}},
	})
	defer server.Close()

	client := clients.NewRedditClientWithBaseURL(server.Client(), server.URL)
	fetcher := NewRedditFetcher(client, []string{"broken", "nvidia"}, []string{"rtx"}, 25, 0)

	posts := fetcher.Fetch(context.Background(), 7)

	require.Len(t, posts, 1)
	assert.Equal(t, "https://reddit.com/r/nvidia/only", posts[0].URL)
}

func TestRedditFetcherCapsSearchKeywords(t *testing.T) {
	queries := make([]string, 0, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/search.json" {
			queries = append(queries, r.URL.Query().Get("q"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.RedditListingResponse{})
	}))
	defer server.Close()

	client := clients.NewRedditClientWithBaseURL(server.Client(), server.URL)
	fetcher := NewRedditFetcher(client, nil, []string{"nvidia", "rtx", "4090", "4080", "gpu"}, 25, 0)

	fetcher.Fetch(context.Background(), 7)

	assert.Equal(t, []string{"nvidia", "rtx", "4090"}, queries)
}
