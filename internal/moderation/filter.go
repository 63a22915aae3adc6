package moderation

import (
	"strings"

	"uplift/internal/models"
	"uplift/internal/observability"
)

// ErrEmptyContent is returned for empty or whitespace-only text. This check
// runs before any scoring.
var ErrEmptyContent = models.NewValidationError("Content cannot be empty")

// ErrRejected is returned when the sentiment score is negative.
var ErrRejected = models.NewModerationError("Content was rejected by the moderation filter")

// Verdict is the outcome of assessing a piece of text.
type Verdict struct {
	Accepted bool
	Score    float64
}

// Filter gates content on its sentiment score.
type Filter struct {
	scorer Scorer
}

// NewFilter returns a Filter using the given scorer.
func NewFilter(scorer Scorer) *Filter {
	return &Filter{scorer: scorer}
}

// Assess scores text and accepts it iff the score is non-negative. Empty or
// whitespace-only text fails with ErrEmptyContent without being scored.
func (f *Filter) Assess(text string) (Verdict, error) {
	if strings.TrimSpace(text) == "" {
		observability.ModerationVerdicts.WithLabelValues("empty").Inc()
		return Verdict{}, ErrEmptyContent
	}

	score := f.scorer.Score(text)
	if score < 0 {
		observability.ModerationVerdicts.WithLabelValues("rejected").Inc()
		return Verdict{Accepted: false, Score: score}, ErrRejected
	}

	observability.ModerationVerdicts.WithLabelValues("accepted").Inc()
	return Verdict{Accepted: true, Score: score}, nil
}
