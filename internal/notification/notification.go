package notification

import (
	"context"
	"log/slog"
)

const (
	// KindDeposit indicates funds were credited into custody.
	KindDeposit = "deposit"
	// KindWithdrawalRequested indicates a delayed withdrawal was scheduled.
	KindWithdrawalRequested = "withdrawal_requested"
	// KindWithdrawalExecuted indicates a scheduled withdrawal was paid out.
	KindWithdrawalExecuted = "withdrawal_executed"
	// KindWithdrawalCancelled indicates a scheduled withdrawal was refunded.
	KindWithdrawalCancelled = "withdrawal_cancelled"
	// KindTransferSent indicates a direct transfer left custody.
	KindTransferSent = "transfer_sent"
	// KindBatchTransferSent indicates a batch of transfers left custody.
	KindBatchTransferSent = "batch_transfer_sent"
	// KindTokenWithdrawal indicates a token sweep to the vault owner.
	KindTokenWithdrawal = "token_withdrawal"
	// KindWhitelistUpdated indicates a recipient's whitelist flag changed.
	KindWhitelistUpdated = "whitelist_updated"
	// KindOwnershipTransferred indicates the vault owner changed.
	KindOwnershipTransferred = "ownership_transferred"
	// KindVaultPaused indicates custody operations were halted.
	KindVaultPaused = "vault_paused"
	// KindVaultUnpaused indicates custody operations resumed.
	KindVaultUnpaused = "vault_unpaused"
)

// Message describes a notification payload.
type Message struct {
	Kind    string
	Account string
	Body    string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the
// logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "account", message.Account, "body", message.Body)
	return nil
}
