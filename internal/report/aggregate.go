package report

import (
	"math"
	"sort"

	"github.com/spacesedan/socialpulse/internal/models"
)

const DefaultTopIssues = 5

var severityValues = map[string]int{
	models.SeverityLow:      1,
	models.SeverityMedium:   2,
	models.SeverityHigh:     3,
	models.SeverityCritical: 4,
}

var severityLabels = [...]string{
	1: models.SeverityLow,
	2: models.SeverityMedium,
	3: models.SeverityHigh,
	4: models.SeverityCritical,
}

// Summarize computes corpus-level sentiment statistics. An empty corpus
// yields the neutral defaults.
func Summarize(posts []models.Post) models.SentimentStats {
	if len(posts) == 0 {
		return models.SentimentStats{
			AverageScore:          50,
			OverallLabel:          models.LabelNeutral,
			SentimentDistribution: map[string]int{},
		}
	}

	total := 0
	distribution := make(map[string]int)
	for _, post := range posts {
		total += post.SentimentScore
		distribution[post.SentimentLabel]++
	}

	average := float64(total) / float64(len(posts))

	label := models.LabelNegative
	switch {
	case average >= 60:
		label = models.LabelPositive
	case average >= 40:
		label = models.LabelMixed
	}

	return models.SentimentStats{
		TotalPosts:            len(posts),
		AverageScore:          round1(average),
		OverallLabel:          label,
		SentimentDistribution: distribution,
	}
}

type issueGroup struct {
	category    string
	title       string
	count       int
	severitySum int
}

// RankIssues groups posts by category and ranks the groups by
// count x mean numeric severity (Low 1 ... Critical 4), descending. Ties
// keep first-encounter order, so the ranking is deterministic for a given
// post order. The issue severity label comes from the mean rounded half to
// even.
func RankIssues(posts []models.Post, limit int) []models.Issue {
	if limit <= 0 {
		limit = DefaultTopIssues
	}

	groups := make(map[string]*issueGroup)
	var order []string

	for _, post := range posts {
		group, ok := groups[post.Category]
		if !ok {
			group = &issueGroup{category: post.Category, title: post.KeyPoint}
			groups[post.Category] = group
			order = append(order, post.Category)
		}

		group.count++
		value, ok := severityValues[post.Severity]
		if !ok {
			value = 2
		}
		group.severitySum += value
	}

	issues := make([]models.Issue, 0, len(order))
	for _, category := range order {
		group := groups[category]
		mean := float64(group.severitySum) / float64(group.count)

		title := group.title
		if title == "" {
			title = "No details"
		}

		issues = append(issues, models.Issue{
			Category:      group.category,
			Count:         group.count,
			Severity:      severityLabel(mean),
			PriorityScore: round1(float64(group.count) * mean),
			Title:         title,
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].PriorityScore > issues[j].PriorityScore
	})

	if len(issues) > limit {
		issues = issues[:limit]
	}
	return issues
}

func severityLabel(mean float64) string {
	n := int(math.RoundToEven(mean))
	if n < 1 {
		n = 1
	}
	if n > 4 {
		n = 4
	}
	return severityLabels[n]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
