package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dagron78/custodyvault/internal/auth"
	"github.com/dagron78/custodyvault/internal/config"
)

func TestAccountAuth(t *testing.T) {
	cfg := config.Config{AuthSecret: "test-secret"}

	app := fiber.New()
	app.Get("/whoami", AccountAuth(cfg), func(c *fiber.Ctx) error {
		account, _ := c.Locals(AccountLocal).(string)
		return c.SendString(account)
	})

	request := func(header string) int {
		t.Helper()
		req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if status := request(""); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	if status := request("Bearer garbage"); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", status)
	}

	token, err := auth.Sign(auth.Claims{
		Subject:  "addr-1",
		IssuedAt: time.Now().Unix(),
		Expires:  time.Now().Add(time.Hour).Unix(),
	}, []byte(cfg.AuthSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if status := request("Bearer " + token); status != fiber.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", status)
	}

	expired, err := auth.Sign(auth.Claims{
		Subject: "addr-1",
		Expires: time.Now().Add(-time.Minute).Unix(),
	}, []byte(cfg.AuthSecret))
	if err != nil {
		t.Fatalf("sign expired: %v", err)
	}
	if status := request("Bearer " + expired); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", status)
	}
}
