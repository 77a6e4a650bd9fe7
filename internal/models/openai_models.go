package models

import "fmt"

// BatchAnalysisResponse is the JSON object the model is asked to return for
// one batch of posts.
type BatchAnalysisResponse struct {
	Analyses []PostAnalysis `json:"analyses"`
}

// PostAnalysis is the per-post judgment, indexed by position within the batch.
type PostAnalysis struct {
	PostIndex      int    `json:"post_index"`
	SentimentScore int    `json:"sentiment_score"`
	SentimentLabel string `json:"sentiment_label"`
	Category       string `json:"category"`
	KeyPoint       string `json:"key_point"`
	Severity       string `json:"severity"`
}

// Validate rejects analyses whose enum fields are not legal values. The score
// is not validated here; callers clamp it into [0, 100] instead.
func (a PostAnalysis) Validate() error {
	switch a.SentimentLabel {
	case LabelPositive, LabelNeutral, LabelNegative:
	default:
		return fmt.Errorf("invalid sentiment_label %q", a.SentimentLabel)
	}
	switch a.Severity {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
	default:
		return fmt.Errorf("invalid severity %q", a.Severity)
	}
	if a.Category == "" {
		return fmt.Errorf("empty category")
	}
	return nil
}
