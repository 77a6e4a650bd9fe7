package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacesedan/socialpulse/config"
	"github.com/spacesedan/socialpulse/internal/clients"
	"github.com/spacesedan/socialpulse/internal/logging"
	"github.com/spacesedan/socialpulse/internal/pipeline"
	"github.com/spacesedan/socialpulse/internal/report"
	"github.com/spacesedan/socialpulse/internal/scraper"
	"github.com/spacesedan/socialpulse/internal/sentiment"
)

var (
	configFile string
	outputPath string
	windowDays int
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "socialpulse",
	Short: "Social listening report generator",
	Long: `Scrapes Reddit and Hacker News for discussion about a product topic,
scores it for sentiment with an LLM, and writes a ranked-issue report.`,
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		logging.InitLogger(debugMode)

		cfg, err := config.Load(configFile)
		if err != nil {
			slog.Error("[Main] Failed to load configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if outputPath != "" {
			cfg.OutputPath = outputPath
		}
		if windowDays > 0 {
			cfg.WindowDays = windowDays
		}

		// Credentials are checked before any network call so a misconfigured
		// run aborts without touching the previous artifact.
		openAIClient, err := clients.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
		if err != nil {
			slog.Error("[Main] OPENAI_API_KEY is required", slog.String("error", err.Error()))
			os.Exit(1)
		}

		ctx := context.Background()

		fetchers := []scraper.Fetcher{
			scraper.NewRedditFetcher(clients.NewRedditClient(),
				cfg.Subreddits, cfg.Keywords, cfg.SourceLimit, cfg.RequestDelay.Std()),
			scraper.NewHackerNewsFetcher(clients.NewHackerNewsClient(),
				cfg.Keywords, cfg.RequestDelay.Std()),
		}

		analyzer := sentiment.NewAnalyzer(openAIClient, cfg.Topic, cfg.BatchSize)

		stores := []pipeline.Store{report.NewFileStore(cfg.OutputPath)}
		if cfg.DynamoTable != "" {
			dynamoClient, err := clients.NewDynamoDBClient(ctx)
			if err != nil {
				slog.Error("[Main] Failed to initialize DynamoDB", slog.String("error", err.Error()))
				os.Exit(1)
			}
			stores = append(stores, report.NewDynamoStore(dynamoClient, cfg.DynamoTable))
		}

		p := pipeline.New(fetchers, analyzer, stores, cfg.WindowDays, cfg.TopIssues)

		artifact, err := p.Run(ctx)
		if err != nil {
			slog.Error("[Main] Pipeline run failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		slog.Info("[Main] Report generated",
			slog.Int("total_posts", artifact.TotalPosts),
			slog.String("overall_label", artifact.SentimentStats.OverallLabel),
			slog.Float64("average_score", artifact.SentimentStats.AverageScore),
			slog.String("output", cfg.OutputPath))
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "socialpulse.yaml", "Path to run configuration")
	rootCmd.Flags().StringVar(&outputPath, "output", "", "Report output path (overrides config)")
	rootCmd.Flags().IntVar(&windowDays, "window-days", 0, "Trailing window in days (overrides config)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
