package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "2s" parse directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config describes one scrape-and-analyze run. Zero fields fall back to the
// defaults below, so a partial YAML file only needs to name what it changes.
type Config struct {
	// Topic is the product topic the pipeline listens for, used in the
	// analysis prompt (e.g. "NVIDIA GPUs").
	Topic string `yaml:"topic"`

	Subreddits []string `yaml:"subreddits"`
	Keywords   []string `yaml:"keywords"`

	WindowDays  int `yaml:"window_days"`
	SourceLimit int `yaml:"source_limit"`
	BatchSize   int `yaml:"batch_size"`
	TopIssues   int `yaml:"top_issues"`

	OutputPath   string   `yaml:"output_path"`
	RequestDelay Duration `yaml:"request_delay"`

	// DynamoTable, when set, mirrors the latest report into DynamoDB in
	// addition to the JSON artifact on disk.
	DynamoTable string `yaml:"dynamo_table"`
}

func Default() Config {
	return Config{
		Topic:        "NVIDIA GPUs",
		Subreddits:   []string{"nvidia", "hardware", "buildapc", "pcmasterrace"},
		Keywords:     []string{"nvidia", "rtx", "4090", "4080", "3090", "gpu"},
		WindowDays:   7,
		SourceLimit:  25,
		BatchSize:    10,
		TopIssues:    5,
		OutputPath:   "latest_report.json",
		RequestDelay: Duration(2 * time.Second),
	}
}

// Load reads a YAML run configuration. A missing file is not an error: the
// built-in defaults are returned so the binary runs without any setup.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("[Config] failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("[Config] failed to parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Topic == "" {
		c.Topic = def.Topic
	}
	if len(c.Subreddits) == 0 {
		c.Subreddits = def.Subreddits
	}
	if len(c.Keywords) == 0 {
		c.Keywords = def.Keywords
	}
	if c.WindowDays <= 0 {
		c.WindowDays = def.WindowDays
	}
	if c.SourceLimit <= 0 {
		c.SourceLimit = def.SourceLimit
	}
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.TopIssues <= 0 {
		c.TopIssues = def.TopIssues
	}
	if c.OutputPath == "" {
		c.OutputPath = def.OutputPath
	}
	if c.RequestDelay < 0 {
		c.RequestDelay = def.RequestDelay
	}
}
