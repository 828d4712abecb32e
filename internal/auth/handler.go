package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dagron78/custodyvault/internal/registry"
)

// Handler exposes login and token refresh endpoints.
type Handler struct {
	depositors *registry.Service
	service    *Service
}

// NewHandler constructs an auth HTTP handler.
func NewHandler(depositors *registry.Service, service *Service) *Handler {
	return &Handler{depositors: depositors, service: service}
}

type loginRequest struct {
	Handle     string `json:"handle"`
	Passphrase string `json:"passphrase"`
}

// Login validates credentials and returns a token pair bound to the
// depositor's vault address.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	depositor, err := h.depositors.Authenticate(c.UserContext(), registry.Credentials{Handle: req.Handle, Passphrase: req.Passphrase})
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}
	pair, err := h.service.Login(depositor)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"address":       depositor.Address,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh issues a new access token from a valid refresh token.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	token, expiresIn, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid refresh token")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"access_token": token, "expires_in": expiresIn})
}
