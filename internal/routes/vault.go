package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dagron78/custodyvault/internal/middleware"
	"github.com/dagron78/custodyvault/internal/vault"
)

// RegisterVaultRoutes wires custody endpoints under /vault. All of them
// require an authenticated account; admin endpoints additionally require
// the caller to be the vault owner, which the engine enforces.
func RegisterVaultRoutes(r fiber.Router, h *vault.Handler, d Deps) {
	group := r.Group("/vault",
		middleware.AccountRateLimit(d.Cache, vaultCallsPerMinute),
		middleware.Audit(d.Logger),
	)

	group.Get("/balance", h.Balance)
	group.Get("/status", h.Status)
	group.Post("/deposits", h.Deposit)

	group.Post("/withdrawals", h.RequestWithdrawal)
	group.Get("/withdrawals/pending", h.PendingWithdrawal)
	group.Post("/withdrawals/execute", h.ExecuteWithdrawal)
	group.Post("/withdrawals/cancel", h.CancelWithdrawal)

	group.Post("/transfers", h.Transfer)
	group.Post("/transfers/batch", h.BatchTransfer)

	group.Post("/tokens/withdrawals", h.WithdrawToken)

	admin := group.Group("/admin")
	admin.Post("/pause", h.Pause)
	admin.Post("/unpause", h.Unpause)
	admin.Put("/whitelist", h.SetWhitelisted)
	admin.Post("/ownership", h.TransferOwnership)
}
