package scorer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	MinScore = 0
	MaxScore = 10
)

type rawResult struct {
	Score        *json.Number `json:"score"`
	Category     string       `json:"category"`
	Reasoning    string       `json:"reasoning"`
	IsStructural bool         `json:"is_structural"`
}

// ParseResponse validates a completion as a single JSON object carrying an
// integer score within [MinScore, MaxScore].
func ParseResponse(content string) (Result, error) {
	payload := stripCodeFence(strings.TrimSpace(content))
	if payload == "" {
		return Result{}, errors.New("empty response")
	}

	decoder := json.NewDecoder(strings.NewReader(payload))
	decoder.UseNumber()

	var raw rawResult
	if err := decoder.Decode(&raw); err != nil {
		return Result{}, fmt.Errorf("invalid JSON response: %w", err)
	}
	if decoder.More() {
		return Result{}, errors.New("unexpected data after JSON object")
	}

	if raw.Score == nil {
		return Result{}, errors.New("response has no score")
	}

	score, err := parseScore(*raw.Score)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Score:        score,
		Category:     strings.TrimSpace(raw.Category),
		Reasoning:    strings.TrimSpace(raw.Reasoning),
		IsStructural: raw.IsStructural,
	}, nil
}

func parseScore(number json.Number) (int, error) {
	value, err := number.Float64()
	if err != nil || value != math.Trunc(value) {
		return 0, fmt.Errorf("score %q is not an integer", number.String())
	}
	if value < MinScore || value > MaxScore {
		return 0, fmt.Errorf("score %v out of range %d-%d", value, MinScore, MaxScore)
	}
	return int(value), nil
}

// stripCodeFence unwraps ```json ... ``` blocks some models emit despite the
// JSON response format.
func stripCodeFence(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if newline := strings.IndexByte(content, '\n'); newline >= 0 {
		content = content[newline+1:]
	} else {
		content = strings.TrimPrefix(content, "json")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}
