package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimit caps login attempts per handle, falling back to the
// client IP when the body carries no handle. Redis errors fail open.
func LoginRateLimit(cache *redis.Client, maxPerMinute int) fiber.Handler {
	if maxPerMinute <= 0 {
		maxPerMinute = 5
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}
		var req struct {
			Handle string `json:"handle"`
		}
		_ = c.BodyParser(&req)
		subject := strings.TrimSpace(req.Handle)
		if subject == "" {
			subject = c.IP()
		}
		return limit(c, cache, "rl:login:"+subject, maxPerMinute)
	}
}

// AccountRateLimit caps vault operations per authenticated account. It
// runs after AccountAuth so the account local is always present.
func AccountRateLimit(cache *redis.Client, maxPerMinute int) fiber.Handler {
	if maxPerMinute <= 0 {
		maxPerMinute = 60
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}
		account, _ := c.Locals(AccountLocal).(string)
		if account == "" {
			account = c.IP()
		}
		return limit(c, cache, "rl:vault:"+account, maxPerMinute)
	}
}

func limit(c *fiber.Ctx, cache *redis.Client, key string, maxPerMinute int) error {
	count, err := cache.Incr(c.UserContext(), key).Result()
	if err != nil {
		return c.Next() // fail-open on cache errors
	}
	if count == 1 {
		cache.Expire(c.UserContext(), key, time.Minute)
	}
	if count > int64(maxPerMinute) {
		return fiber.NewError(http.StatusTooManyRequests, "rate limit exceeded, try again later")
	}
	return c.Next()
}
