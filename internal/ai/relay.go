package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/vibecatcher/event-service/internal/domain"
)

// systemPrompt fixes the assistant's persona and scope for every request.
const systemPrompt = "You are a helpful assistant for the VibeCatcher Event application. " +
	"Answer user questions concisely about navigating the app, finding events, " +
	"leaving reviews, and understanding features. Keep responses relatively short and friendly."

// doneSentinel terminates every stream, error paths included.
const doneSentinel = "[DONE]"

// User-safe messages written instead of raw errors.
const (
	msgUnavailable = "Sorry, the chatbot is currently unavailable due to a configuration issue."
	msgNeedInput   = "Hmm, I need your message to respond."
	msgError       = "Sorry, I encountered an error. Please try again."
)

// Chunk is the uniform on-wire envelope for one text fragment.
type Chunk struct {
	Content string `json:"content"`
}

// Relay forwards a conversation to the configured completion provider and
// writes the provider's incremental output as server-sent events. Whatever
// happens, the stream always ends with the terminal sentinel; raw provider
// errors never reach the client.
type Relay struct {
	provider  CompletionProvider
	maxTokens int
	timeout   time.Duration
	logger    *zap.Logger
}

// NewRelay builds a relay. A nil provider is valid and means the assistant
// is unconfigured; every request then gets the unavailable message.
func NewRelay(provider CompletionProvider, maxTokens int, timeout time.Duration, logger *zap.Logger) *Relay {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Relay{provider: provider, maxTokens: maxTokens, timeout: timeout, logger: logger}
}

// Stream validates the conversation, opens the provider stream and relays
// fragments FIFO to w. Closes the stream with the sentinel in all cases.
func (r *Relay) Stream(ctx context.Context, turns []domain.ChatTurn, w io.Writer) {
	defer r.writeDone(w)

	turns = sanitizeTurns(turns)
	if len(turns) == 0 || turns[len(turns)-1].Role != domain.ChatRoleUser {
		r.writeChunk(w, msgNeedInput)
		return
	}

	if r.provider == nil {
		r.writeChunk(w, msgUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.provider.StreamCompletion(ctx, CompletionRequest{
		System:    systemPrompt,
		Turns:     turns,
		MaxTokens: r.maxTokens,
	}, func(text string) error {
		return r.writeChunk(w, text)
	})
	if err != nil {
		r.logger.Error("completion stream failed", zap.Error(err))
		r.writeChunk(w, msgError)
	}
}

// sanitizeTurns drops turns with unknown roles or empty content, mirroring
// the filtering applied before any provider call.
func sanitizeTurns(turns []domain.ChatTurn) []domain.ChatTurn {
	out := make([]domain.ChatTurn, 0, len(turns))
	for _, turn := range turns {
		if turn.Content == "" {
			continue
		}
		if turn.Role != domain.ChatRoleUser && turn.Role != domain.ChatRoleAssistant {
			continue
		}
		out = append(out, turn)
	}
	return out
}

func (r *Relay) writeChunk(w io.Writer, content string) error {
	data, err := json.Marshal(Chunk{Content: content})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	flush(w)
	return nil
}

func (r *Relay) writeDone(w io.Writer) {
	_, _ = fmt.Fprintf(w, "data: %s\n\n", doneSentinel)
	flush(w)
}

func flush(w io.Writer) {
	if f, ok := w.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}
