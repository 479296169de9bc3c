package domain

import "time"

// Sentiment labels assigned to a review at write time.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Review is the domain model for an event review. Username is denormalized
// at creation so reviews survive account renames.
type Review struct {
	ID            string
	EventID       string
	UserID        string
	Username      string
	ReviewText    string
	Rating        int
	Sentiment     Sentiment
	AdminResponse *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
