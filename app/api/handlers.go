package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/market-radar/app/metrics"
	"github.com/lysyi3m/market-radar/app/radar"
)

// maxMinutes caps on-demand scans at one week.
const maxMinutes = 7 * 24 * 60

func NewHandler(scanner ScannerInterface, generator GeneratorInterface, m *metrics.Metrics,
	models []string, defaultMinutes, minScore int, version string) *Handler {
	return &Handler{
		scanner:        scanner,
		generator:      generator,
		metrics:        m,
		models:         append([]string(nil), models...),
		defaultMinutes: defaultMinutes,
		minScore:       minScore,
		version:        version,
	}
}

func (h *Handler) GetRadarFeed(c *gin.Context) {
	minutes, ok := h.intQuery(c, "minutes", h.defaultMinutes, 0, maxMinutes)
	if !ok {
		return
	}
	minScore, ok := h.intQuery(c, "min_score", h.minScore, 0, 10)
	if !ok {
		return
	}

	report := h.scanner.Run(c.Request.Context(), minutes)

	rss, err := h.generator.Run(report, minScore)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(report.Articles)))
	c.Header("X-Failed-Sources", strconv.Itoa(report.Failed()))
	c.Header("X-Last-Updated", report.GeneratedAt.Format(time.RFC3339))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"sources":   len(h.scanner.Sources()),
		"models":    len(h.models),
	})
}

func (h *Handler) GetMetrics(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

func (h *Handler) APIListArticles(c *gin.Context) {
	minutes, ok := h.intQuery(c, "minutes", h.defaultMinutes, 0, maxMinutes)
	if !ok {
		return
	}

	report := h.scanner.Run(c.Request.Context(), minutes)

	articles := report.Articles
	if articles == nil {
		articles = []radar.ScoredArticle{}
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at": report.GeneratedAt,
		"minutes":      report.Minutes,
		"sources":      h.sourceResponses(report),
		"articles":     articles,
		"total":        len(articles),
	})
}

func (h *Handler) APIListSources(c *gin.Context) {
	sources := h.scanner.Sources()

	feeds := make([]gin.H, 0, len(sources))
	for _, source := range sources {
		feeds = append(feeds, gin.H{
			"name":            source.Name,
			"url":             source.URL,
			"extract_content": source.ExtractContent,
			"filters":         len(source.Filters),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"feeds":  feeds,
		"models": h.models,
		"total":  len(feeds),
	})
}

func (h *Handler) sourceResponses(report radar.Report) []sourceResponse {
	responses := make([]sourceResponse, 0, len(report.Sources))
	for _, source := range report.Sources {
		response := sourceResponse{
			Source:   source.Source,
			Count:    source.Count,
			Filtered: source.Filtered,
		}
		if source.Err != nil {
			response.Error = source.Err.Error()
		}
		responses = append(responses, response)
	}
	return responses
}

func (h *Handler) intQuery(c *gin.Context, name string, fallback, lower, upper int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < lower || value > upper {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameter",
			"details": name + " must be an integer between " + strconv.Itoa(lower) + " and " + strconv.Itoa(upper),
		})
		return 0, false
	}

	return value, true
}
