package api

import (
	"context"

	"github.com/lysyi3m/market-radar/app/feed"
	"github.com/lysyi3m/market-radar/app/metrics"
	"github.com/lysyi3m/market-radar/app/radar"
)

type ScannerInterface interface {
	Run(ctx context.Context, minutes int) radar.Report
	Sources() []feed.Source
}

var _ ScannerInterface = (*radar.Pipeline)(nil)

type GeneratorInterface interface {
	Run(report radar.Report, minScore int) (string, error)
}

var _ GeneratorInterface = (*radar.Generator)(nil)

type Handler struct {
	scanner        ScannerInterface
	generator      GeneratorInterface
	metrics        *metrics.Metrics
	models         []string
	defaultMinutes int
	minScore       int
	version        string
}

type sourceResponse struct {
	Source   string `json:"source"`
	Count    int    `json:"count"`
	Filtered int    `json:"filtered"`
	Error    string `json:"error,omitempty"`
}
