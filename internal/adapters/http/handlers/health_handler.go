package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"unihub/internal/config"
	"unihub/internal/pkg/response"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db   *gorm.DB
	mode string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, mode string) *HealthHandler {
	return &HealthHandler{db: db, mode: mode}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{
		"status": "running",
		"mode":   h.mode,
		"docs":   "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and database health
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status, dbStatus := fiber.StatusOK, "healthy"
	if err := config.HealthCheck(ctx, h.db); err != nil {
		status, dbStatus = fiber.StatusServiceUnavailable, "unhealthy"
	}

	return c.Status(status).JSON(response.Response{
		Status: status,
		Payload: fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
		},
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1 [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{
		"name":    "unihub API",
		"version": "1.0.0",
	})
}
