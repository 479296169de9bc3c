package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vibecatcher/event-service/internal/api/dto"
	"github.com/vibecatcher/event-service/internal/domain"
	"github.com/vibecatcher/event-service/internal/service"
	apperrors "github.com/vibecatcher/event-service/pkg/util"
)

// EventsHandler manages event listing endpoints.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// List handles GET /events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	rows, err := h.service.ListWithStats(c.Context())
	if err != nil {
		return err
	}
	results := make([]dto.EventResponse, 0, len(rows))
	for _, row := range rows {
		results = append(results, dto.NewEventWithStatsResponse(row))
	}
	return c.JSON(fiber.Map{"data": results})
}

// Get handles GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	event, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Create handles POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	event, err := h.service.Create(c.Context(), eventInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Update handles PUT /events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	event, err := h.service.Update(c.Context(), c.Params("id"), eventInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Delete handles DELETE /events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func eventInput(req dto.EventRequest) service.EventCreateInput {
	return service.EventCreateInput{
		Title:                req.Title,
		Location:             req.Location,
		Description:          req.Description,
		Date:                 req.Date,
		Time:                 req.Time,
		Category:             req.Category,
		IsPaid:               req.IsPaid,
		Price:                req.Price,
		TicketsAvailable:     req.TicketsAvailable,
		RegistrationDeadline: req.RegistrationDeadline,
		MaxRegistrations:     req.MaxRegistrations,
		Status:               domain.EventStatus(req.Status),
		ImageURL:             req.ImageURL,
	}
}
