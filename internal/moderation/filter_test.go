package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessAcceptsNonNegativeScore(t *testing.T) {
	filter := NewFilter(ScorerFunc(func(string) float64 { return 0.7 }))

	verdict, err := filter.Assess("what a lovely day")
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
	assert.Equal(t, 0.7, verdict.Score)
}

func TestAssessAcceptsZeroScore(t *testing.T) {
	filter := NewFilter(ScorerFunc(func(string) float64 { return 0 }))

	verdict, err := filter.Assess("the sky is blue")
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
}

func TestAssessRejectsNegativeScore(t *testing.T) {
	filter := NewFilter(ScorerFunc(func(string) float64 { return -0.4 }))

	verdict, err := filter.Assess("this is terrible")
	assert.ErrorIs(t, err, ErrRejected)
	assert.False(t, verdict.Accepted)
}

func TestAssessRejectsEmptyBeforeScoring(t *testing.T) {
	scored := false
	filter := NewFilter(ScorerFunc(func(string) float64 {
		scored = true
		return 1
	}))

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := filter.Assess(text)
		assert.ErrorIs(t, err, ErrEmptyContent)
	}
	assert.False(t, scored, "empty text must not reach the scorer")
}

func TestVaderScorerSignsMatchSentiment(t *testing.T) {
	scorer := NewVaderScorer()

	assert.Positive(t, scorer.Score("I love this, it is wonderful and great!"))
	assert.Negative(t, scorer.Score("I hate this, it is horrible and disgusting."))
}
