package handlers

import (
	"github.com/gofiber/fiber/v2"

	"unihub/internal/adapters/http/middleware"
	"unihub/internal/core/domain"
	"unihub/internal/core/services"
	"unihub/internal/pkg/response"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Register handles student self-registration
// @Summary Register student
// @Description Create a student profile and its user account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	input, err := parseBody[services.RegisterInput](c)
	if err != nil {
		return err
	}

	result, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return err
	}
	return response.Created(c, result)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email and password and return tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	input, err := parseBody[services.LoginInput](c)
	if err != nil {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return err
	}
	return response.Success(c, result)
}

// LoginProvider handles login with an identity provider access token
// @Summary Login with provider
// @Description Verify a Google or Facebook access token and log the matching user in
// @Tags Auth
// @Accept json
// @Produce json
// @Param provider path string true "google or facebook"
// @Param body body services.ExternalLoginInput true "Provider token"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login/{provider} [post]
func (h *AuthHandler) LoginProvider(c *fiber.Ctx) error {
	provider, ok := services.ParseProvider(c.Params("provider"))
	if !ok {
		return domain.IllegalArgument("provider.invalid.value")
	}
	input, err := parseBody[services.ExternalLoginInput](c)
	if err != nil {
		return err
	}

	result, err := h.authService.LoginExternal(c.UserContext(), provider, input)
	if err != nil {
		return err
	}
	return response.Success(c, result)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Rotate a refresh token and issue a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RefreshInput true "Refresh token"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	input, err := parseBody[services.RefreshInput](c)
	if err != nil {
		return err
	}
	if input.RefreshToken == "" {
		return domain.Validation("refreshToken.must.not.be.null")
	}

	result, err := h.authService.RefreshToken(c.UserContext(), input.RefreshToken)
	if err != nil {
		return err
	}
	return response.Success(c, result)
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the given refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RefreshInput true "Refresh token"
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	input, err := parseBody[services.RefreshInput](c)
	if err != nil {
		return err
	}
	if input.RefreshToken != "" {
		if err := h.authService.Logout(c.UserContext(), input.RefreshToken); err != nil {
			return err
		}
	}
	return response.Message(c, "logged.out")
}

// LogoutAll handles logout from all devices
// @Summary Logout from all devices
// @Description Revoke every refresh token of the current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	if err := h.authService.LogoutAll(c.UserContext(), principal.UserID); err != nil {
		return err
	}
	return response.Message(c, "logged.out")
}

// Me returns the current user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.userService.GetProfile(c.UserContext(), middleware.Principal(c).UserID)
	if err != nil {
		return err
	}
	return response.Success(c, user)
}

// UpdateMe updates the current user's display fields
// @Summary Update current user
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/me [put]
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	input, err := parseBody[services.UpdateProfileInput](c)
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), middleware.Principal(c).UserID, input)
	if err != nil {
		return err
	}
	return response.Success(c, user)
}

// ChangePassword changes the current user's password
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Old and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/me/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	input, err := parseBody[services.ChangePasswordInput](c)
	if err != nil {
		return err
	}

	principal := middleware.Principal(c)
	if err := h.userService.ChangePassword(c.UserContext(), principal.UserID, input); err != nil {
		return err
	}
	// Other sessions must log in again with the new password
	if err := h.authService.LogoutAll(c.UserContext(), principal.UserID); err != nil {
		return err
	}
	return response.Message(c, "password.changed")
}
