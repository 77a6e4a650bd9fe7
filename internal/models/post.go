package models

import "time"

const (
	SourceReddit     = "reddit"
	SourceHackerNews = "hackernews"
)

const (
	LabelPositive = "Positive"
	LabelNeutral  = "Neutral"
	LabelNegative = "Negative"
	// LabelMixed only appears as a corpus-level overall label, never on a
	// single post.
	LabelMixed = "Mixed"
)

const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// Post is one normalized discussion item from any source. The URL is the
// unique key for deduplication across the whole merged set.
type Post struct {
	Source      string    `json:"source"`
	Subreddit   string    `json:"subreddit,omitempty"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	URL         string    `json:"url"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
	CreatedAt   time.Time `json:"created_at"`
	Author      string    `json:"author"`

	// Set by the analyzer. Every post in a finished report carries legal
	// values here, even when the model call for its batch failed.
	SentimentScore int    `json:"sentiment_score"`
	SentimentLabel string `json:"sentiment_label"`
	Category       string `json:"category"`
	KeyPoint       string `json:"key_point"`
	Severity       string `json:"severity"`

	// VADERScore is the local lexicon compound score in [-1, 1], recorded
	// alongside the model judgment as a cross-check.
	VADERScore float64 `json:"vader_score,omitempty"`
}
