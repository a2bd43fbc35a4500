package feed

import (
	"fmt"
	"time"
)

// Feed processing types

type Source struct {
	Name           string         `yaml:"name"`
	URL            string         `yaml:"url"`
	ExtractContent bool           `yaml:"extract_content"` // fetch linked page when feed text is too short
	Timeout        int            `yaml:"timeout"`         // seconds, 0 means collector default
	Filters        []ConfigFilter `yaml:"filters"`
}

// Entry is a single parsed feed item as delivered by a Fetcher.
type Entry struct {
	Title       string
	Link        string
	Content     string
	Description string
	PublishedAt *time.Time // nil when the feed carries no parseable date
}

type Article struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"` // always UTC
	Summary     string    `json:"summary"`
}

type SourceReport struct {
	Source   string
	Count    int
	Filtered int
	Err      error
}

type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Configuration types

type Config struct {
	Feeds  []Source `yaml:"feeds"`
	Models []string `yaml:"models"`
}

type ConfigFilter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
