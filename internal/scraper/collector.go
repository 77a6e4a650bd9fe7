package scraper

import (
	"context"
	"log/slog"

	"github.com/spacesedan/socialpulse/internal/models"
)

// Fetcher is one best-effort post source. Implementations never return an
// error; a failed sub-source contributes zero posts.
type Fetcher interface {
	Fetch(ctx context.Context, windowDays int) []models.Post
}

// Collect merges fetcher outputs in the given fetcher order and removes
// duplicate URLs, keeping the first occurrence. Deterministic for identical
// inputs.
func Collect(ctx context.Context, windowDays int, fetchers ...Fetcher) []models.Post {
	var merged []models.Post
	for _, fetcher := range fetchers {
		merged = append(merged, fetcher.Fetch(ctx, windowDays)...)
	}

	unique := Dedupe(merged)

	counts := make(map[string]int, 2)
	for _, post := range unique {
		counts[post.Source]++
	}
	slog.Info("[Collector] Collected unique posts",
		slog.Int("total", len(unique)),
		slog.Int("reddit", counts[models.SourceReddit]),
		slog.Int("hackernews", counts[models.SourceHackerNews]))

	return unique
}

// Dedupe collapses posts sharing a URL to the first-seen entry. Posts with
// an empty URL carry no identity and are dropped.
func Dedupe(posts []models.Post) []models.Post {
	seen := make(map[string]struct{}, len(posts))
	unique := make([]models.Post, 0, len(posts))

	for _, post := range posts {
		if post.URL == "" {
			slog.Debug("[Collector] Dropping post without URL", slog.String("title", post.Title))
			continue
		}
		if _, exists := seen[post.URL]; exists {
			continue
		}
		seen[post.URL] = struct{}{}
		unique = append(unique, post)
	}
	return unique
}
