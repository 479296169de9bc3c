package ai

import (
	"context"

	"github.com/vibecatcher/event-service/internal/domain"
)

// CompletionRequest carries the conversation forwarded to a provider.
type CompletionRequest struct {
	System    string
	Turns     []domain.ChatTurn
	MaxTokens int
}

// EmitFunc receives incremental text fragments in provider emission order.
// Returning an error aborts the stream.
type EmitFunc func(text string) error

// CompletionProvider abstracts one streaming chat-completion backend. The
// relay depends only on this interface; one adapter exists per concrete
// provider SDK or wire protocol.
type CompletionProvider interface {
	StreamCompletion(ctx context.Context, req CompletionRequest, emit EmitFunc) error
}
