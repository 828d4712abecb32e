package vault

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dagron78/custodyvault/internal/ledger"
	"github.com/dagron78/custodyvault/internal/money"
)

// Handler exposes custody endpoints.
type Handler struct {
	vault *Vault
}

// NewHandler constructs a custody HTTP handler.
func NewHandler(vault *Vault) *Handler {
	return &Handler{vault: vault}
}

// mapError translates engine errors into transport errors. Every handler
// funnels through here so the taxonomy stays in one place.
func mapError(err error) error {
	switch {
	case errors.Is(err, ErrPaused):
		return fiber.NewError(http.StatusServiceUnavailable, "vault is paused")
	case errors.Is(err, ErrUnauthorized):
		return fiber.NewError(http.StatusForbidden, "caller is not the vault owner")
	case errors.Is(err, ErrNotWhitelisted):
		return fiber.NewError(http.StatusForbidden, "recipient not whitelisted for this amount")
	case errors.Is(err, ErrDailyLimitExceeded):
		return fiber.NewError(http.StatusTooManyRequests, "daily withdrawal limit exceeded")
	case errors.Is(err, ErrNoPendingWithdrawal):
		return fiber.NewError(http.StatusNotFound, "no pending withdrawal")
	case errors.Is(err, ErrInvalidTimeWindow):
		return fiber.NewError(http.StatusConflict, "withdrawal outside its execution window")
	case errors.Is(err, ErrReentrantCall):
		return fiber.NewError(http.StatusConflict, "vault is busy, retry shortly")
	case errors.Is(err, ledger.ErrInsufficientPoolBalance):
		return fiber.NewError(http.StatusConflict, "vault pool cannot cover this amount")
	case errors.Is(err, ErrExternalTransferFailed):
		return fiber.NewError(http.StatusBadGateway, "outbound settlement failed")
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return fiber.NewError(http.StatusBadRequest, "insufficient balance")
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidRecipient),
		errors.Is(err, ErrArrayMismatch),
		errors.Is(err, money.ErrAmountOverflow),
		errors.Is(err, ledger.ErrBalanceOverflow):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}

func callerAccount(c *fiber.Ctx) string {
	account, _ := c.Locals("account").(string)
	return account
}

type depositRequest struct {
	AmountMinor int64 `json:"amount_minor"`
}

// Deposit credits the caller's custodial balance.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req depositRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.vault.Deposit(c.UserContext(), callerAccount(c), req.AmountMinor)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"account":       receipt.Account,
		"amount_minor":  receipt.Amount,
		"balance_minor": receipt.Balance,
		"balance_coins": money.FormatCoins(receipt.Balance),
	})
}

// Balance returns the caller's custodial balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	view, err := h.vault.Balance(c.UserContext(), callerAccount(c))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account":             view.Account,
		"balance_minor":       view.Minor,
		"balance_coins":       money.FormatCoins(view.Minor),
		"balance_whole_coins": view.Coins,
	})
}

type withdrawalRequest struct {
	AmountCoins int64 `json:"amount_coins"`
}

// RequestWithdrawal schedules a delayed withdrawal for the caller.
func (h *Handler) RequestWithdrawal(c *fiber.Ctx) error {
	var req withdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.vault.RequestWithdrawal(c.UserContext(), callerAccount(c), req.AmountCoins)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"reference":     receipt.Reference,
		"amount_minor":  receipt.Amount,
		"amount_coins":  money.FormatCoins(receipt.Amount),
		"balance_minor": receipt.Balance,
		"release_at":    receipt.ReleaseAt,
	})
}

// ExecuteWithdrawal settles the caller's matured withdrawal.
func (h *Handler) ExecuteWithdrawal(c *fiber.Ctx) error {
	receipt, err := h.vault.ExecuteWithdrawal(c.UserContext(), callerAccount(c))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"reference":    receipt.Reference,
		"amount_minor": receipt.Amount,
		"amount_coins": money.FormatCoins(receipt.Amount),
	})
}

// CancelWithdrawal voids the caller's scheduled withdrawal and restores
// the withheld amount.
func (h *Handler) CancelWithdrawal(c *fiber.Ctx) error {
	receipt, err := h.vault.CancelWithdrawal(c.UserContext(), callerAccount(c))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"reference":     receipt.Reference,
		"amount_minor":  receipt.Amount,
		"balance_minor": receipt.Balance,
		"balance_coins": money.FormatCoins(receipt.Balance),
	})
}

// PendingWithdrawal reports the caller's scheduled withdrawal, if any.
func (h *Handler) PendingWithdrawal(c *fiber.Ctx) error {
	view, err := h.vault.PendingWithdrawal(c.UserContext(), callerAccount(c))
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"reference":    view.Reference,
		"amount_minor": view.Amount,
		"amount_coins": money.FormatCoins(view.Amount),
		"release_at":   view.ReleaseAt,
		"expires_at":   view.ExpiresAt,
	})
}

type transferRequest struct {
	Recipient   string `json:"recipient"`
	AmountCoins int64  `json:"amount_coins"`
}

// Transfer sends part of the caller's balance to an external recipient.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.vault.Transfer(c.UserContext(), callerAccount(c), req.Recipient, req.AmountCoins)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"reference":     receipt.Reference,
		"amount_minor":  receipt.Amount,
		"amount_coins":  money.FormatCoins(receipt.Amount),
		"balance_minor": receipt.Balance,
	})
}

type batchTransferRequest struct {
	Recipients   []string `json:"recipients"`
	AmountsMinor []int64  `json:"amounts_minor"`
}

// BatchTransfer settles several outbound payments as one all-or-nothing
// batch.
func (h *Handler) BatchTransfer(c *fiber.Ctx) error {
	var req batchTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.vault.BatchTransfer(c.UserContext(), callerAccount(c), req.Recipients, req.AmountsMinor)
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"reference":     receipt.Reference,
		"amount_minor":  receipt.Amount,
		"amount_coins":  money.FormatCoins(receipt.Amount),
		"balance_minor": receipt.Balance,
		"payments":      len(req.Recipients),
	})
}

type tokenWithdrawalRequest struct {
	TokenAddress string `json:"token_address"`
	Amount       int64  `json:"amount"`
}

// WithdrawToken forwards stray token holdings to the vault owner.
func (h *Handler) WithdrawToken(c *fiber.Ctx) error {
	var req tokenWithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.vault.WithdrawToken(c.UserContext(), callerAccount(c), req.TokenAddress, req.Amount); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"token_address": req.TokenAddress,
		"amount":        req.Amount,
		"status":        "forwarded",
	})
}

// Status reports the vault's operational state.
func (h *Handler) Status(c *fiber.Ctx) error {
	status, err := h.vault.Status(c.UserContext())
	if err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"owner":      status.Owner,
		"paused":     status.Paused,
		"pool_minor": status.PoolMinor,
		"pool_coins": money.FormatCoins(status.PoolMinor),
	})
}

// Pause halts balance-changing operations.
func (h *Handler) Pause(c *fiber.Ctx) error {
	if err := h.vault.Pause(c.UserContext(), callerAccount(c)); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"paused": true})
}

// Unpause resumes balance-changing operations.
func (h *Handler) Unpause(c *fiber.Ctx) error {
	if err := h.vault.Unpause(c.UserContext(), callerAccount(c)); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"paused": false})
}

type whitelistRequest struct {
	Account     string `json:"account"`
	Whitelisted bool   `json:"whitelisted"`
}

// SetWhitelisted flags a recipient as trusted for large transfers.
func (h *Handler) SetWhitelisted(c *fiber.Ctx) error {
	var req whitelistRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.vault.SetWhitelisted(c.UserContext(), callerAccount(c), req.Account, req.Whitelisted); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account":     req.Account,
		"whitelisted": req.Whitelisted,
	})
}

type ownershipRequest struct {
	NewOwner string `json:"new_owner"`
}

// TransferOwnership hands vault administration to another account.
func (h *Handler) TransferOwnership(c *fiber.Ctx) error {
	var req ownershipRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.vault.TransferOwnership(c.UserContext(), callerAccount(c), req.NewOwner); err != nil {
		return mapError(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"owner": req.NewOwner})
}
