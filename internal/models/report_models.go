package models

import "time"

type SentimentStats struct {
	TotalPosts            int            `json:"total_posts"`
	AverageScore          float64        `json:"average_score"`
	OverallLabel          string         `json:"overall_label"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
}

// Issue is one aggregated category of feedback, ranked by
// count x mean numeric severity.
type Issue struct {
	Category      string  `json:"category"`
	Count         int     `json:"count"`
	Severity      string  `json:"severity"`
	PriorityScore float64 `json:"priority_score"`
	Title         string  `json:"title"`
}

// Report is the persisted artifact. Field names are read by downstream
// consumers and must stay stable.
type Report struct {
	GeneratedAt    time.Time      `json:"generated_at"`
	RunID          string         `json:"run_id"`
	TotalPosts     int            `json:"total_posts"`
	SentimentStats SentimentStats `json:"sentiment_stats"`
	TopIssues      []Issue        `json:"top_issues"`
	Posts          []Post         `json:"posts"`
}
