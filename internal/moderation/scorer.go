// Package moderation implements the content gate applied to submissions and
// replies before they are persisted.
package moderation

import (
	"github.com/jonreiter/govader"
)

// Scorer produces a signed sentiment score for a piece of text. Negative
// scores indicate negative sentiment.
type Scorer interface {
	Score(text string) float64
}

// VaderScorer scores text with the VADER sentiment model. The compound
// polarity score is a float in [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer returns a Scorer backed by VADER.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity score for text.
func (s *VaderScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}

// ScorerFunc adapts a plain function to the Scorer interface. Used in tests.
type ScorerFunc func(text string) float64

// Score calls f.
func (f ScorerFunc) Score(text string) float64 {
	return f(text)
}
