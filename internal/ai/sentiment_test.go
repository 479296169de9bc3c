package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vibecatcher/event-service/internal/domain"
)

func TestAnalyzeSentimentPositive(t *testing.T) {
	result := AnalyzeSentiment("The concert was amazing, I loved it!")

	assert.Equal(t, domain.SentimentPositive, result.Sentiment)
	assert.Positive(t, result.Score)
	assert.Contains(t, result.Positive, "amazing")
	assert.Contains(t, result.Positive, "loved")
	assert.Empty(t, result.Negative)
}

func TestAnalyzeSentimentNegative(t *testing.T) {
	result := AnalyzeSentiment("Terrible organization, a waste of money.")

	assert.Equal(t, domain.SentimentNegative, result.Sentiment)
	assert.Negative(t, result.Score)
	assert.Contains(t, result.Negative, "terrible")
	assert.Contains(t, result.Negative, "waste")
}

func TestAnalyzeSentimentNeutral(t *testing.T) {
	result := AnalyzeSentiment("The venue opened at seven.")

	assert.Equal(t, domain.SentimentNeutral, result.Sentiment)
	assert.Zero(t, result.Score)
	assert.Empty(t, result.Words)
}

func TestAnalyzeSentimentMixedLeansOnScore(t *testing.T) {
	// "good" (+3) vs "slow" (-1)
	result := AnalyzeSentiment("Good show but slow entry")

	assert.Equal(t, domain.SentimentPositive, result.Sentiment)
	assert.Equal(t, 2, result.Score)
	assert.Len(t, result.Words, 2)
}

func TestAnalyzeSentimentComparative(t *testing.T) {
	result := AnalyzeSentiment("good good")

	assert.Equal(t, 6, result.Score)
	assert.InDelta(t, 3.0, result.Comparative, 0.001)
}

func TestAnalyzeSentimentEmptyText(t *testing.T) {
	result := AnalyzeSentiment("")

	assert.Equal(t, domain.SentimentNeutral, result.Sentiment)
	assert.Zero(t, result.Comparative)
}

func TestAnalyzeSentimentIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, AnalyzeSentiment("GREAT event").Score, AnalyzeSentiment("great event").Score)
}
