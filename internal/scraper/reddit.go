package scraper

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/socialpulse/internal/clients"
	"github.com/spacesedan/socialpulse/internal/models"
)

// maxSearchKeywords caps the number of sitewide search queries per run so a
// long keyword list does not hammer the search endpoint.
const maxSearchKeywords = 3

type RedditFetcher struct {
	client     *clients.RedditClient
	subreddits []string
	keywords   []string
	limit      int
	delay      time.Duration
}

func NewRedditFetcher(client *clients.RedditClient, subreddits, keywords []string, limit int, delay time.Duration) *RedditFetcher {
	return &RedditFetcher{
		client:     client,
		subreddits: subreddits,
		keywords:   keywords,
		limit:      limit,
		delay:      delay,
	}
}

// Fetch scans each configured subreddit's newest listing, then runs a
// sitewide search for the leading keywords. Best-effort: a failing
// sub-source is logged and contributes zero posts.
func (f *RedditFetcher) Fetch(ctx context.Context, windowDays int) []models.Post {
	cutoff := time.Now().AddDate(0, 0, -windowDays)
	var posts []models.Post

	slog.Info("[RedditFetcher] Scraping subreddits",
		slog.Int("subreddits", len(f.subreddits)),
		slog.Int("window_days", windowDays))

	for i, subreddit := range f.subreddits {
		if i > 0 {
			f.pause(ctx)
		}

		listing, err := f.client.FetchNewPosts(ctx, subreddit, f.limit)
		if err != nil {
			slog.Warn("[RedditFetcher] Failed to fetch subreddit, skipping",
				slog.String("subreddit", subreddit),
				slog.String("error", err.Error()))
			continue
		}

		kept := 0
		for _, child := range listing.Data.Children {
			post := postFromRedditData(child.Data)
			if post.CreatedAt.Before(cutoff) {
				continue
			}
			if !matchesKeywords(post, f.keywords) {
				continue
			}
			posts = append(posts, post)
			kept++
		}
		slog.Info("[RedditFetcher] Subreddit scraped",
			slog.String("subreddit", subreddit), slog.Int("posts", kept))
	}

	keywords := f.keywords
	if len(keywords) > maxSearchKeywords {
		keywords = keywords[:maxSearchKeywords]
	}

	for _, keyword := range keywords {
		f.pause(ctx)

		listing, err := f.client.SearchPosts(ctx, keyword, f.limit)
		if err != nil {
			slog.Warn("[RedditFetcher] Search failed, skipping",
				slog.String("keyword", keyword),
				slog.String("error", err.Error()))
			continue
		}

		kept := 0
		for _, child := range listing.Data.Children {
			// The search endpoint already matched the keyword, only the
			// recency window applies here.
			post := postFromRedditData(child.Data)
			if post.CreatedAt.Before(cutoff) {
				continue
			}
			posts = append(posts, post)
			kept++
		}
		slog.Info("[RedditFetcher] Search scraped",
			slog.String("keyword", keyword), slog.Int("posts", kept))
	}

	return posts
}

// pause spaces out consecutive requests to stay under remote rate limits.
func (f *RedditFetcher) pause(ctx context.Context) {
	if f.delay <= 0 {
		return
	}
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
	}
}

func postFromRedditData(data models.RedditPostData) models.Post {
	author := data.Author
	if author == "" {
		author = "[deleted]"
	}

	return models.Post{
		Source:      models.SourceReddit,
		Subreddit:   data.Subreddit,
		Title:       data.Title,
		Text:        data.Selftext,
		URL:         "https://reddit.com" + data.Permalink,
		Score:       data.Score,
		NumComments: data.NumComments,
		CreatedAt:   time.Unix(int64(data.CreatedUTC), 0).UTC(),
		Author:      author,
	}
}

func matchesKeywords(post models.Post, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}

	title := strings.ToLower(post.Title)
	text := strings.ToLower(post.Text)
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		if strings.Contains(title, kw) || strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
