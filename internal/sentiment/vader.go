package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var vader = govader.NewSentimentIntensityAnalyzer()

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURLPattern      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]+>`)
)

// StripLinks keeps the text of markdown links and removes bare URLs, which
// only add noise to sentiment scoring and the analysis prompt.
func StripLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return bareURLPattern.ReplaceAllString(input, "")
}

// PlainText renders Reddit-style markdown to plain text, collapses
// whitespace, and strips links. The markdown renderer emits HTML, so the
// tags it produces are removed before scoring.
func PlainText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	text := htmlTagPattern.ReplaceAllString(string(output), " ")
	text = html.UnescapeString(text)
	collapsed := strings.Join(strings.Fields(text), " ")

	return StripLinks(collapsed)
}

// LocalScore is the VADER compound polarity in [-1, 1] for the given text.
// It runs offline and is recorded next to the model judgment as a
// cross-check.
func LocalScore(text string) float64 {
	return vader.PolarityScores(PlainText(text)).Compound
}

func localLabel(score float64) string {
	if score >= 0.20 {
		return "positive"
	}
	if score <= -0.20 {
		return "negative"
	}
	return "neutral"
}
