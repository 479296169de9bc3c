package dto

import "github.com/vibecatcher/event-service/internal/domain"

// ChatRequest payload for the assistant endpoint. Messages carry the full
// conversation history, oldest first.
type ChatRequest struct {
	Messages []domain.ChatTurn `json:"messages"`
}

// SentimentRequest payload for ad-hoc sentiment analysis.
type SentimentRequest struct {
	Text string `json:"text"`
}
