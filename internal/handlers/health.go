package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/services"
)

// HealthHandler reports dependency health
type HealthHandler struct {
	Checker *services.HealthChecker
}

// Health handles GET /api/health
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := h.Checker.Check(c.UserContext())
	status := fiber.StatusOK
	if !result.Healthy() {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
