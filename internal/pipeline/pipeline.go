package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spacesedan/socialpulse/internal/models"
	"github.com/spacesedan/socialpulse/internal/report"
	"github.com/spacesedan/socialpulse/internal/scraper"
	"github.com/spacesedan/socialpulse/internal/sentiment"
)

// Store persists the finished report. Persistence failures are fatal for
// the run: the previous artifact must stay intact.
type Store interface {
	Save(ctx context.Context, report models.Report) error
}

// Pipeline runs one scrape-classify-aggregate pass. Strictly sequential:
// sub-sources and batches run one at a time, and no state survives the run
// except the written artifact.
type Pipeline struct {
	fetchers   []scraper.Fetcher
	analyzer   *sentiment.Analyzer
	stores     []Store
	windowDays int
	topIssues  int
}

func New(fetchers []scraper.Fetcher, analyzer *sentiment.Analyzer, stores []Store, windowDays, topIssues int) *Pipeline {
	return &Pipeline{
		fetchers:   fetchers,
		analyzer:   analyzer,
		stores:     stores,
		windowDays: windowDays,
		topIssues:  topIssues,
	}
}

// Run executes the full pass and returns the report it persisted. Source
// outages and failed analysis batches degrade the data instead of aborting;
// only an empty corpus or a persistence failure is an error.
func (p *Pipeline) Run(ctx context.Context) (models.Report, error) {
	start := time.Now()
	slog.Info("[Pipeline] Starting run", slog.Int("window_days", p.windowDays))

	posts := scraper.Collect(ctx, p.windowDays, p.fetchers...)
	if len(posts) == 0 {
		return models.Report{}, errors.New("[Pipeline] no posts collected from any source")
	}

	analyzed := p.analyzer.AnalyzeAll(ctx, posts)
	slog.Info("[Pipeline] Analysis complete", slog.Int("posts", len(analyzed)))

	stats := report.Summarize(analyzed)
	issues := report.RankIssues(analyzed, p.topIssues)
	slog.Info("[Pipeline] Aggregation complete",
		slog.Float64("average_score", stats.AverageScore),
		slog.String("overall_label", stats.OverallLabel),
		slog.Int("top_issues", len(issues)))

	artifact := report.BuildReport(analyzed, stats, issues)
	for _, store := range p.stores {
		if err := store.Save(ctx, artifact); err != nil {
			return models.Report{}, err
		}
	}

	slog.Info("[Pipeline] Run complete",
		slog.String("run_id", artifact.RunID),
		slog.Duration("duration", time.Since(start)))
	return artifact, nil
}
