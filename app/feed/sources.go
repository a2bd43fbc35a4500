package feed

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the built-in source and model lists used when no
// sources file is present.
func DefaultConfig() *Config {
	return &Config{
		Feeds: []Source{
			{Name: "Reuters Business", URL: "https://feeds.reuters.com/reuters/businessNews"},
			{Name: "Reuters Markets", URL: "https://feeds.reuters.com/news/wealth"},
			{Name: "Reuters Money", URL: "https://feeds.reuters.com/news/deals"},
			{Name: "CNBC Top News", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html"},
			{Name: "MarketWatch Top Stories", URL: "http://feeds.marketwatch.com/marketwatch/topstories/"},
			{Name: "Seeking Alpha Market News", URL: "https://seekingalpha.com/feed.xml"},
			{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex"},
			{Name: "Benzinga", URL: "https://www.benzinga.com/feed"},
		},
		Models: []string{
			"google/gemma-3-27b-it:free",
			"openai/gpt-oss-120b:free",
			"nvidia/nemotron-nano-9b-v2:free",
		},
	}
}

// LoadSources reads the sources file at path. A missing file yields the
// built-in defaults; sections left out of the file are filled from them too.
func LoadSources(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("Sources file not found, using built-in sources", "path", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	config, err := parseSources(data)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}

	slog.Debug("Sources loaded", "path", path, "feeds", len(config.Feeds), "models", len(config.Models))

	return config, nil
}

func parseSources(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	defaults := DefaultConfig()
	if len(config.Feeds) == 0 {
		config.Feeds = defaults.Feeds
	}
	if len(config.Models) == 0 {
		config.Models = defaults.Models
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	if len(c.Models) == 0 {
		return fmt.Errorf("at least one model is required")
	}
	for i, model := range c.Models {
		if model == "" {
			return fmt.Errorf("model at index %d is empty", i)
		}
	}

	validFields := map[string]bool{
		"title":   true,
		"summary": true,
		"link":    true,
	}

	seen := make(map[string]bool, len(c.Feeds))
	for i, source := range c.Feeds {
		if source.Name == "" {
			return fmt.Errorf("feed name is required at index %d", i)
		}
		if source.URL == "" {
			return fmt.Errorf("feed URL is required for %s", source.Name)
		}
		if seen[source.Name] {
			return fmt.Errorf("duplicate feed name: %s", source.Name)
		}
		seen[source.Name] = true

		parsed, err := url.Parse(source.URL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("invalid feed URL for %s: %s", source.Name, source.URL)
		}

		if source.Timeout < 0 {
			return fmt.Errorf("timeout for %s must be non-negative", source.Name)
		}

		for j, filter := range source.Filters {
			if !validFields[filter.Field] {
				return fmt.Errorf("invalid filter field for %s at index %d: %s", source.Name, j, filter.Field)
			}
			if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
				return fmt.Errorf("filter for %s at index %d must have at least one include or exclude rule", source.Name, j)
			}
		}
	}

	return nil
}
