package cfg

import "time"

type Cfg struct {
	// Sources and lookback
	SourcesFile string
	Minutes     int

	// Scoring endpoint
	APIKey       string
	BaseURL      string
	Referer      string
	AppTitle     string
	ScoreTimeout time.Duration
	Fallback     bool

	// Collection
	UserAgent    string
	FetchTimeout time.Duration
	WorkerCount  int

	// HTTP server
	Serve        bool
	Port         string
	PublicURL    string
	APIAccessKey string
	MinScore     int

	// Application metadata
	Debug   bool
	Version string
}
