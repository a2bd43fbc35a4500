package cfg

import (
	"cmp"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/lysyi3m/market-radar/app/scorer"
)

// Version is set at build time via -ldflags
var Version = "dev"

var ErrMissingAPIKey = scorer.ErrMissingAPIKey

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Sources and lookback
	SourcesFile string `long:"sources" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file with feed sources and candidate models"`
	Minutes     int    `long:"minutes" env:"LOOKBACK_MINUTES" default:"30" description:"Lookback window in minutes"`

	// Scoring endpoint
	APIKey       string `long:"api-key" env:"OPENROUTER_API_KEY" description:"OpenRouter API key (required)"`
	BaseURL      string `long:"base-url" env:"OPENROUTER_BASE_URL" default:"https://openrouter.ai/api/v1" description:"Chat completions API base URL"`
	Referer      string `long:"referer" env:"OPENROUTER_REFERER" default:"https://github.com/lysyi3m/market-radar" description:"HTTP-Referer sent to OpenRouter"`
	AppTitle     string `long:"app-title" env:"OPENROUTER_TITLE" default:"Market Radar Ingestor" description:"X-Title sent to OpenRouter"`
	ScoreTimeout int    `long:"score-timeout" env:"SCORE_TIMEOUT" default:"60" description:"Scoring call timeout in seconds"`
	Fallback     bool   `long:"fallback" env:"SCORE_FALLBACK" description:"Retry failed scoring calls on the next candidate model"`

	// Collection
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"Market Radar/1.0" description:"User agent string for feed requests"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"20" description:"Per-source fetch timeout in seconds"`
	WorkerCount  int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Concurrent feed fetches and scoring calls"`

	// HTTP server
	Serve        bool   `long:"serve" env:"SERVE" description:"Run the HTTP server instead of a single scan"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	PublicURL    string `long:"public-url" env:"PUBLIC_URL" description:"Public base URL for the service (e.g., https://radar.example.com)"`
	APIAccessKey string `long:"api-access-key" env:"API_ACCESS_KEY" description:"API access key for /api endpoints (optional)"`
	MinScore     int    `long:"min-score" env:"MIN_SCORE" default:"0" description:"Lowest score included in the radar feed"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line flags and environment variables. It returns
// nil, nil when help was requested.
func Load() (*Cfg, error) {
	return Parse(os.Args[1:])
}

func Parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SourcesFile:  raw.SourcesFile,
		Minutes:      raw.Minutes,
		APIKey:       raw.APIKey,
		BaseURL:      raw.BaseURL,
		Referer:      raw.Referer,
		AppTitle:     raw.AppTitle,
		ScoreTimeout: time.Duration(raw.ScoreTimeout) * time.Second,
		Fallback:     raw.Fallback,
		UserAgent:    raw.UserAgent,
		FetchTimeout: time.Duration(raw.FetchTimeout) * time.Second,
		WorkerCount:  raw.WorkerCount,
		Serve:        raw.Serve,
		Port:         raw.Port,
		PublicURL:    raw.PublicURL,
		APIAccessKey: raw.APIAccessKey,
		MinScore:     raw.MinScore,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Cfg) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}

	nonNegativeFields := map[string]int{
		"minutes":   c.Minutes,
		"min score": c.MinScore,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	// Both timeouts also bound the worker pool, so zero cannot mean "default".
	timeoutFields := map[string]time.Duration{
		"score timeout": c.ScoreTimeout,
		"fetch timeout": c.FetchTimeout,
	}

	for fieldName, fieldValue := range timeoutFields {
		if fieldValue < time.Second {
			return fmt.Errorf("%s must be at least 1 second", fieldName)
		}
	}

	if c.WorkerCount < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	return nil
}
