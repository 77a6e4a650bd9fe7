package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/socialpulse/internal/models"
)

const (
	DefaultBatchSize = 10

	analysisModel = openai.GPT4oMini
	maxTextRunes  = 500
)

const systemPrompt = "You are a product analyst specializing in extracting actionable insights from user feedback. Always return valid JSON."

// ChatCompleter is the slice of the OpenAI client the analyzer depends on.
// Tests substitute a double returning canned responses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Analyzer annotates posts with sentiment judgments in fixed-size batches,
// one blocking model round-trip per batch. A failed batch never drops posts:
// every post in it gets the neutral defaults and the run continues.
type Analyzer struct {
	client    ChatCompleter
	topic     string
	batchSize int
}

func NewAnalyzer(client ChatCompleter, topic string, batchSize int) *Analyzer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Analyzer{client: client, topic: topic, batchSize: batchSize}
}

// AnalyzeAll returns a new slice of the same length and order as posts with
// the sentiment fields populated on every entry.
func (a *Analyzer) AnalyzeAll(ctx context.Context, posts []models.Post) []models.Post {
	batches := chunkPosts(posts, a.batchSize)
	analyzed := make([]models.Post, 0, len(posts))

	for i, batch := range batches {
		slog.Info("[Analyzer] Processing batch",
			slog.Int("batch", i+1),
			slog.Int("batches", len(batches)),
			slog.Int("posts", len(batch)))
		analyzed = append(analyzed, a.analyzeBatch(ctx, batch)...)
	}

	return analyzed
}

func (a *Analyzer) analyzeBatch(ctx context.Context, batch []models.Post) []models.Post {
	out := make([]models.Post, len(batch))
	copy(out, batch)

	for i := range out {
		out[i].VADERScore = LocalScore(out[i].Title + "\n" + out[i].Text)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: analysisModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: a.buildBatchPrompt(out)},
		},
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		slog.Warn("[Analyzer] Batch analysis failed, applying neutral defaults",
			slog.String("error", err.Error()))
		return degradeBatch(out)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		slog.Warn("[Analyzer] Model returned an empty response, applying neutral defaults")
		return degradeBatch(out)
	}

	cleaned := cleanModelResponse(resp.Choices[0].Message.Content)

	var parsed models.BatchAnalysisResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		slog.Warn("[Analyzer] Failed to parse analysis response, applying neutral defaults",
			slog.String("error", err.Error()))
		return degradeBatch(out)
	}

	annotated := make([]bool, len(out))
	for _, analysis := range parsed.Analyses {
		idx := analysis.PostIndex
		if idx < 0 || idx >= len(out) {
			slog.Warn("[Analyzer] Analysis index outside batch, ignoring",
				slog.Int("post_index", idx))
			continue
		}
		if err := analysis.Validate(); err != nil {
			slog.Warn("[Analyzer] Invalid analysis, post keeps neutral defaults",
				slog.Int("post_index", idx),
				slog.String("error", err.Error()))
			continue
		}

		out[idx].SentimentScore = clampScore(analysis.SentimentScore)
		out[idx].SentimentLabel = analysis.SentimentLabel
		out[idx].Category = analysis.Category
		out[idx].KeyPoint = analysis.KeyPoint
		out[idx].Severity = analysis.Severity
		annotated[idx] = true
	}

	for i := range out {
		if !annotated[i] {
			applyDefaults(&out[i])
			continue
		}
		logLocalDisagreement(out[i])
	}

	return out
}

func (a *Analyzer) buildBatchPrompt(batch []models.Post) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Analyze these social media posts about %s for sentiment and key issues.\n\n", a.topic)
	for i, post := range batch {
		fmt.Fprintf(&sb, "POST %d: Title: %s\nText: %s\n\n",
			i, post.Title, truncateRunes(PlainText(post.Text), maxTextRunes))
	}

	sb.WriteString(`For each post, provide:
1. Sentiment score (0-100, where 0=very negative, 50=neutral, 100=very positive)
2. Sentiment label (Positive, Neutral, Negative)
3. Main category (e.g., "Performance Issues", "Driver Problems", "Pricing Concerns", "Feature Request", "General Praise")
4. Key pain point or praise (one sentence)
5. Severity (Low, Medium, High, Critical) - based on how urgent/impactful the issue is

Return ONLY valid JSON in this exact format:
{
  "analyses": [
    {
      "post_index": 0,
      "sentiment_score": 45,
      "sentiment_label": "Negative",
      "category": "Performance Issues",
      "key_point": "Users experiencing frame drops in specific games",
      "severity": "High"
    }
  ]
}`)

	return sb.String()
}

// cleanModelResponse strips markdown code fences the model sometimes wraps
// around its JSON despite the response-format instruction.
func cleanModelResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}

	return strings.TrimSpace(cleaned)
}

func degradeBatch(batch []models.Post) []models.Post {
	for i := range batch {
		applyDefaults(&batch[i])
	}
	return batch
}

func applyDefaults(p *models.Post) {
	p.SentimentScore = 50
	p.SentimentLabel = models.LabelNeutral
	p.Category = "Uncategorized"
	p.KeyPoint = "Analysis unavailable"
	p.Severity = models.SeverityLow
}

// logLocalDisagreement flags posts where the offline VADER polarity and the
// model label point in opposite directions.
func logLocalDisagreement(p models.Post) {
	local := localLabel(p.VADERScore)
	remote := strings.ToLower(p.SentimentLabel)
	if local == "neutral" || remote == "neutral" || local == remote {
		return
	}
	slog.Debug("[Analyzer] Local VADER polarity disagrees with model label",
		slog.String("url", p.URL),
		slog.Float64("vader_score", p.VADERScore),
		slog.String("model_label", p.SentimentLabel))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// chunkPosts splits posts into consecutive batches of `size`.
func chunkPosts(posts []models.Post, size int) [][]models.Post {
	var batches [][]models.Post
	for i := 0; i < len(posts); i += size {
		end := i + size
		if end > len(posts) {
			end = len(posts)
		}
		batches = append(batches, posts[i:end])
	}
	return batches
}
