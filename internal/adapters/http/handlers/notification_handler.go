package handlers

import (
	"github.com/gofiber/fiber/v2"

	"unihub/internal/core/services"
	"unihub/internal/pkg/response"
)

// NotificationHandler handles notification dispatch
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Send records a notification and pushes it to the university's devices
// @Summary Send notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param universityId path int true "University ID"
// @Param body body services.NotificationInput true "Notification"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /universities/{universityId}/notifications [post]
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	scope, err := scopeFromPath(c, []ScopeParam{UniversityScope})
	if err != nil {
		return err
	}
	input, err := parseBody[services.NotificationInput](c)
	if err != nil {
		return err
	}

	out, err := h.notifications.Send(c.UserContext(), scope, input)
	if err != nil {
		return err
	}
	return response.Created(c, out)
}
