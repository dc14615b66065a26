package handlers

import (
	"github.com/gofiber/fiber/v2"

	"unihub/internal/adapters/http/middleware"
	"unihub/internal/core/services"
	"unihub/internal/pkg/pagination"
	"unihub/internal/pkg/response"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers handles listing all users (Admin only)
// @Summary List all users
// @Description Get a paginated list of users, optionally filtered by email or name (Admin only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Email or name substring"
// @Param page query int false "Page index" default(0)
// @Param size query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	result, err := h.userService.ListUsers(c.UserContext(), c.Query("search"), pagination.GetParams(c))
	if err != nil {
		return err
	}
	return response.Success(c, result)
}

// GetUser handles getting a user by ID (Admin only)
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{userId} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	user, err := h.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, user)
}

// CreateUser handles creating a staff account (Admin only)
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	input, err := parseBody[services.CreateUserInput](c)
	if err != nil {
		return err
	}

	user, err := h.userService.CreateUser(c.UserContext(), input)
	if err != nil {
		return err
	}
	return response.Created(c, user)
}

// UpdateUser handles updating a user's role or status (Admin only)
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param body body services.UpdateUserByAdminInput true "Update data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{userId} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	input, err := parseBody[services.UpdateUserByAdminInput](c)
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateUserByAdmin(c.UserContext(), id, middleware.Principal(c).UserID, input)
	if err != nil {
		return err
	}
	return response.Success(c, user)
}

// DeleteUser handles deleting a user account (Admin only)
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.UserContext(), id, middleware.Principal(c).UserID); err != nil {
		return err
	}
	return response.Message(c, "user.deleted")
}
