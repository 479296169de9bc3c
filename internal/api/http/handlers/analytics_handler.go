package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vibecatcher/event-service/internal/service"
)

// AnalyticsHandler serves the admin reporting endpoint.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// Report handles GET /analytics.
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	report, err := h.service.Report(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}
