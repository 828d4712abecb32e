// Package payout connects the vault to the external settlement rail that
// moves value out of custody.
package payout

import (
	"context"
	"log/slog"
)

// Payment describes one outbound movement from the custody pool. Amount is
// in minor units.
type Payment struct {
	To        string
	Amount    int64
	Reference string
}

// Gateway represents a connector to an external settlement rail. SendBatch
// settles all payments or none; implementations must not partially settle.
type Gateway interface {
	Send(ctx context.Context, payment Payment) error
	SendBatch(ctx context.Context, payments []Payment) error
}

// LogGateway simulates a settlement rail that approves every payment,
// recording it on the structured logger.
type LogGateway struct {
	logger *slog.Logger
}

// NewLogGateway constructs a logging gateway stub.
func NewLogGateway(logger *slog.Logger) *LogGateway {
	return &LogGateway{logger: logger}
}

// Send approves a single payment.
func (g *LogGateway) Send(_ context.Context, payment Payment) error {
	if g == nil || g.logger == nil {
		return nil
	}
	g.logger.Info("payout sent", "to", payment.To, "amount", payment.Amount, "reference", payment.Reference)
	return nil
}

// SendBatch approves a batch of payments.
func (g *LogGateway) SendBatch(_ context.Context, payments []Payment) error {
	if g == nil || g.logger == nil {
		return nil
	}
	for _, payment := range payments {
		g.logger.Info("payout sent", "to", payment.To, "amount", payment.Amount, "reference", payment.Reference)
	}
	return nil
}
