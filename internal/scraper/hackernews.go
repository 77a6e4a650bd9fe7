package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/socialpulse/internal/clients"
	"github.com/spacesedan/socialpulse/internal/models"
)

type HackerNewsFetcher struct {
	client   *clients.HackerNewsClient
	keywords []string
	delay    time.Duration
}

func NewHackerNewsFetcher(client *clients.HackerNewsClient, keywords []string, delay time.Duration) *HackerNewsFetcher {
	return &HackerNewsFetcher{client: client, keywords: keywords, delay: delay}
}

// Fetch runs one Algolia query per keyword, restricted server-side to
// stories created inside the window. Failing queries are logged and skipped.
func (f *HackerNewsFetcher) Fetch(ctx context.Context, windowDays int) []models.Post {
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	var posts []models.Post

	slog.Info("[HackerNewsFetcher] Scraping Hacker News",
		slog.Int("keywords", len(f.keywords)),
		slog.Int("window_days", windowDays))

	for i, keyword := range f.keywords {
		if i > 0 && f.delay > 0 {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
			}
		}

		search, err := f.client.SearchStories(ctx, keyword, cutoff)
		if err != nil {
			slog.Warn("[HackerNewsFetcher] Search failed, skipping",
				slog.String("keyword", keyword),
				slog.String("error", err.Error()))
			continue
		}

		for _, hit := range search.Hits {
			posts = append(posts, postFromHNHit(hit))
		}
	}

	slog.Info("[HackerNewsFetcher] Hacker News scraped", slog.Int("posts", len(posts)))
	return posts
}

func postFromHNHit(hit models.HNHit) models.Post {
	url := hit.URL
	if url == "" {
		url = "https://news.ycombinator.com/item?id=" + hit.ObjectID
	}

	author := hit.Author
	if author == "" {
		author = "unknown"
	}

	return models.Post{
		Source:      models.SourceHackerNews,
		Title:       hit.Title,
		Text:        hit.StoryText,
		URL:         url,
		Score:       hit.Points,
		NumComments: hit.NumComments,
		CreatedAt:   time.Unix(hit.CreatedAtI, 0).UTC(),
		Author:      author,
	}
}
