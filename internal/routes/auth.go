package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dagron78/custodyvault/internal/auth"
)

// RegisterAuthRoutes wires login and token refresh endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Post("/refresh", h.Refresh)
}
