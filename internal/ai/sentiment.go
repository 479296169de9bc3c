package ai

import (
	"strings"
	"unicode"

	"github.com/vibecatcher/event-service/internal/domain"
)

// sentimentLexicon maps tokens to valence weights, AFINN style. Small on
// purpose: reviews are short and the label only needs to be directionally
// right for the aggregate sentiment score.
var sentimentLexicon = map[string]int{
	"amazing":     4,
	"awesome":     4,
	"fantastic":   4,
	"wonderful":   4,
	"excellent":   3,
	"great":       3,
	"good":        3,
	"love":        3,
	"loved":       3,
	"best":        3,
	"happy":       3,
	"perfect":     3,
	"nice":        3,
	"fun":         2,
	"enjoyed":     2,
	"helpful":     2,
	"friendly":    2,
	"recommend":   2,
	"interesting": 2,

	"bad":           -3,
	"terrible":      -3,
	"awful":         -3,
	"horrible":      -3,
	"hate":          -3,
	"hated":         -3,
	"worst":         -3,
	"boring":        -2,
	"poor":          -2,
	"disappointing": -2,
	"disappointed":  -2,
	"waste":         -2,
	"rude":          -2,
	"crowded":       -1,
	"slow":          -1,
	"expensive":     -1,
}

// SentimentResult carries the score breakdown for one text.
type SentimentResult struct {
	Score       int              `json:"score"`
	Comparative float64          `json:"comparative"`
	Sentiment   domain.Sentiment `json:"sentiment"`
	Words       []string         `json:"words"`
	Positive    []string         `json:"positive"`
	Negative    []string         `json:"negative"`
}

// AnalyzeSentiment scores a text against the lexicon. Zero score maps to
// neutral.
func AnalyzeSentiment(text string) SentimentResult {
	tokens := tokenize(text)

	result := SentimentResult{
		Words:    []string{},
		Positive: []string{},
		Negative: []string{},
	}

	for _, token := range tokens {
		weight, ok := sentimentLexicon[token]
		if !ok {
			continue
		}
		result.Score += weight
		result.Words = append(result.Words, token)
		if weight > 0 {
			result.Positive = append(result.Positive, token)
		} else {
			result.Negative = append(result.Negative, token)
		}
	}

	if len(tokens) > 0 {
		result.Comparative = float64(result.Score) / float64(len(tokens))
	}

	switch {
	case result.Score > 0:
		result.Sentiment = domain.SentimentPositive
	case result.Score < 0:
		result.Sentiment = domain.SentimentNegative
	default:
		result.Sentiment = domain.SentimentNeutral
	}
	return result
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
