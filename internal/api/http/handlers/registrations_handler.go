package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vibecatcher/event-service/internal/api/dto"
	"github.com/vibecatcher/event-service/internal/auth"
	"github.com/vibecatcher/event-service/internal/domain"
	"github.com/vibecatcher/event-service/internal/service"
	apperrors "github.com/vibecatcher/event-service/pkg/util"
)

// RegistrationsHandler manages event sign-up endpoints. Creation works for
// guests too, so auth is optional there.
type RegistrationsHandler struct {
	service *service.RegistrationService
}

// NewRegistrationsHandler constructs handler.
func NewRegistrationsHandler(registrationService *service.RegistrationService) *RegistrationsHandler {
	return &RegistrationsHandler{service: registrationService}
}

// Create handles POST /registrations.
func (h *RegistrationsHandler) Create(c *fiber.Ctx) error {
	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var user *domain.User
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.User != nil {
		user = principal.User
	}

	input := service.RegistrationCreateInput{
		EventID:             req.EventID,
		FullName:            req.FullName,
		Email:               req.Email,
		Phone:               req.Phone,
		Address:             req.Address,
		City:                req.City,
		State:               req.State,
		ZipCode:             req.ZipCode,
		SpecialRequirements: req.SpecialRequirements,
		TicketQuantity:      req.TicketQuantity,
	}
	reg, err := h.service.Create(c.Context(), input, user)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}

// Mine handles GET /registrations/mine.
func (h *RegistrationsHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	regs, err := h.service.ListForUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	results := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		results = append(results, dto.NewRegistrationResponse(&regs[i]))
	}
	return c.JSON(fiber.Map{"data": results})
}

// ListForEvent handles GET /events/:id/registrations.
func (h *RegistrationsHandler) ListForEvent(c *fiber.Ctx) error {
	regs, err := h.service.ListForEvent(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	results := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		results = append(results, dto.NewRegistrationResponse(&regs[i]))
	}
	return c.JSON(fiber.Map{"data": results})
}

// CheckIn handles POST /registrations/:id/check-in.
func (h *RegistrationsHandler) CheckIn(c *fiber.Ctx) error {
	reg, err := h.service.CheckIn(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRegistrationResponse(reg)})
}
