package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vibecatcher/event-service/internal/api/dto"
	"github.com/vibecatcher/event-service/internal/auth"
	"github.com/vibecatcher/event-service/internal/service"
	apperrors "github.com/vibecatcher/event-service/pkg/util"
)

// NotificationsHandler manages per-user notification endpoints.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List handles GET /notifications. Pass ?unread=true for unread only.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	unreadOnly := c.QueryBool("unread")
	records, err := h.service.ListForUser(c.Context(), principal.User.ID, unreadOnly)
	if err != nil {
		return err
	}
	results := make([]dto.NotificationResponse, 0, len(records))
	for i := range records {
		results = append(results, dto.NewNotificationResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": results})
}

// UnreadCount handles GET /notifications/unread-count.
func (h *NotificationsHandler) UnreadCount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	count, err := h.service.CountUnread(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"count": count}})
}

// MarkRead handles POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	if err := h.service.MarkRead(c.Context(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"marked": true}})
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}

	if err := h.service.MarkAllRead(c.Context(), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"marked": true}})
}
