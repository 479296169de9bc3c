package handlers

import (
	"bufio"
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/vibecatcher/event-service/internal/ai"
	"github.com/vibecatcher/event-service/internal/api/dto"
	"github.com/vibecatcher/event-service/internal/domain"
	apperrors "github.com/vibecatcher/event-service/pkg/util"
)

// ChatHandler streams assistant completions as server-sent events.
type ChatHandler struct {
	relay *ai.Relay
}

// NewChatHandler constructs handler.
func NewChatHandler(relay *ai.Relay) *ChatHandler {
	return &ChatHandler{relay: relay}
}

// Get handles GET /api/chat. History arrives as a JSON array in the
// messages query parameter.
func (h *ChatHandler) Get(c *fiber.Ctx) error {
	var turns []domain.ChatTurn
	if raw := c.Query("messages"); raw != "" {
		// Malformed history streams the validation fallback rather than
		// failing the request, so ignore the unmarshal error.
		_ = json.Unmarshal([]byte(raw), &turns)
	}
	return h.stream(c, turns)
}

// Post handles POST /api/chat.
func (h *ChatHandler) Post(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return h.stream(c, req.Messages)
}

func (h *ChatHandler) stream(c *fiber.Ctx, turns []domain.ChatTurn) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	relay := h.relay
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The stream outlives the handler, so it cannot borrow the
		// request context. The relay applies its own deadline.
		relay.Stream(context.Background(), turns, w)
	}))
	return nil
}

// Sentiment handles POST /api/sentiment for ad-hoc analysis.
func (h *ChatHandler) Sentiment(c *fiber.Ctx) error {
	var req dto.SentimentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Text == "" {
		return apperrors.NewValidationError("text required", nil)
	}
	return c.JSON(fiber.Map{"data": ai.AnalyzeSentiment(req.Text)})
}
