package dto

import (
	"time"

	"github.com/vibecatcher/event-service/internal/domain"
)

// ReviewRequest payload for posting a review.
type ReviewRequest struct {
	ReviewText string `json:"reviewText"`
	Rating     int    `json:"rating"`
}

// ReviewResponseRequest payload for the admin reply endpoint.
type ReviewResponseRequest struct {
	Response string `json:"response"`
}

// ReviewResponse is the public view of a review.
type ReviewResponse struct {
	ID            string    `json:"id"`
	EventID       string    `json:"eventId"`
	Username      string    `json:"username"`
	ReviewText    string    `json:"reviewText"`
	Rating        int       `json:"rating"`
	Sentiment     string    `json:"sentiment"`
	AdminResponse *string   `json:"adminResponse,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewReviewResponse maps a domain review.
func NewReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:            review.ID,
		EventID:       review.EventID,
		Username:      review.Username,
		ReviewText:    review.ReviewText,
		Rating:        review.Rating,
		Sentiment:     string(review.Sentiment),
		AdminResponse: review.AdminResponse,
		CreatedAt:     review.CreatedAt,
	}
}
