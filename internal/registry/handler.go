package registry

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes depositor onboarding endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a registry HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Handle     string `json:"handle"`
	Passphrase string `json:"passphrase"`
}

// Register onboards a depositor and returns their vault address.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	depositor, err := h.service.Register(c.UserContext(), Credentials{Handle: req.Handle, Passphrase: req.Passphrase})
	if err != nil {
		if errors.Is(err, ErrHandleTaken) {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"address":    depositor.Address,
		"handle":     depositor.Handle,
		"created_at": depositor.CreatedAt,
	})
}
