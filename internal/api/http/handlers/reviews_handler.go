package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vibecatcher/event-service/internal/api/dto"
	"github.com/vibecatcher/event-service/internal/auth"
	"github.com/vibecatcher/event-service/internal/service"
	apperrors "github.com/vibecatcher/event-service/pkg/util"
)

// ReviewsHandler manages review endpoints.
type ReviewsHandler struct {
	service *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviewService *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: reviewService}
}

// ListByEvent handles GET /events/:id/reviews.
func (h *ReviewsHandler) ListByEvent(c *fiber.Ctx) error {
	reviews, err := h.service.ListByEvent(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	results := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		results = append(results, dto.NewReviewResponse(&reviews[i]))
	}
	return c.JSON(fiber.Map{"data": results})
}

// Create handles POST /events/:id/reviews.
func (h *ReviewsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.Create(c.Context(), c.Params("id"), principal.User, req.ReviewText, req.Rating)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// Respond handles POST /reviews/:id/respond.
func (h *ReviewsHandler) Respond(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.ReviewResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.Respond(c.Context(), c.Params("id"), req.Response, principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReviewResponse(review)})
}

// Delete handles DELETE /reviews/:id.
func (h *ReviewsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
