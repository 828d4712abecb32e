package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dagron78/custodyvault/internal/auth"
	"github.com/dagron78/custodyvault/internal/config"
)

// AccountLocal is the Locals key carrying the authenticated vault address.
const AccountLocal = "account"

// AccountAuth validates bearer tokens and exposes the caller's vault
// address to downstream handlers.
func AccountAuth(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		token := strings.TrimSpace(header[len("Bearer "):])

		claims, err := auth.Verify(token, []byte(cfg.AuthSecret), time.Now())
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}
		if claims.Subject == "" {
			return fiber.NewError(http.StatusUnauthorized, "token has no subject")
		}

		c.Locals(AccountLocal, claims.Subject)
		return c.Next()
	}
}
