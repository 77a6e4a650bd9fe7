package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/socialpulse/internal/models"
)

type stubFetcher struct {
	posts []models.Post
}

func (s *stubFetcher) Fetch(ctx context.Context, windowDays int) []models.Post {
	return s.posts
}

func post(source, url, title string) models.Post {
	return models.Post{Source: source, URL: url, Title: title}
}

func TestDedupeCollapsesToFirstSeen(t *testing.T) {
	posts := []models.Post{
		post(models.SourceReddit, "https://reddit.com/r/nvidia/a", "listing copy"),
		post(models.SourceReddit, "https://reddit.com/r/nvidia/b", "other"),
		post(models.SourceReddit, "https://reddit.com/r/nvidia/a", "search copy"),
	}

	unique := Dedupe(posts)

	assert.Len(t, unique, 2)
	assert.Equal(t, "listing copy", unique[0].Title)
	assert.Equal(t, "other", unique[1].Title)
}

func TestDedupeDropsEmptyURLs(t *testing.T) {
	posts := []models.Post{
		post(models.SourceHackerNews, "", "no identity"),
		post(models.SourceHackerNews, "https://news.ycombinator.com/item?id=1", "ok"),
	}

	unique := Dedupe(posts)

	assert.Len(t, unique, 1)
	assert.Equal(t, "ok", unique[0].Title)
}

func TestCollectMergesInFetcherOrder(t *testing.T) {
	reddit := &stubFetcher{posts: []models.Post{
		post(models.SourceReddit, "https://reddit.com/r/nvidia/a", "reddit first"),
		post(models.SourceReddit, "https://shared.example/post", "reddit wins"),
	}}
	hn := &stubFetcher{posts: []models.Post{
		post(models.SourceHackerNews, "https://shared.example/post", "hn loses"),
		post(models.SourceHackerNews, "https://news.ycombinator.com/item?id=2", "hn only"),
	}}

	collected := Collect(context.Background(), 7, reddit, hn)

	assert.Len(t, collected, 3)
	assert.Equal(t, "reddit first", collected[0].Title)
	assert.Equal(t, "reddit wins", collected[1].Title)
	assert.Equal(t, "hn only", collected[2].Title)

	seen := make(map[string]int)
	for _, p := range collected {
		seen[p.URL]++
	}
	for url, count := range seen {
		assert.Equalf(t, 1, count, "url %s appears %d times", url, count)
	}
}

func TestCollectIsDeterministic(t *testing.T) {
	fetchers := []Fetcher{
		&stubFetcher{posts: []models.Post{
			post(models.SourceReddit, "https://reddit.com/1", "a"),
			post(models.SourceReddit, "https://reddit.com/2", "b"),
		}},
		&stubFetcher{posts: []models.Post{
			post(models.SourceHackerNews, "https://reddit.com/1", "dup"),
			post(models.SourceHackerNews, "https://hn.example/3", "c"),
		}},
	}

	first := Collect(context.Background(), 7, fetchers...)
	second := Collect(context.Background(), 7, fetchers...)

	assert.Equal(t, first, second)
}
