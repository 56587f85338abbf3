package delivery

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	deliveryports "github.com/Apurer/dharai-delivery/internal/domains/delivery/ports"
	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
)

const (
	// MarkOrderDeliveredActivityName records the delivery on the order registry.
	MarkOrderDeliveredActivityName = "delivery.activities.MarkOrderDelivered"
	// ClearHandoffActivityName removes the tab's Transfer record.
	ClearHandoffActivityName = "delivery.activities.ClearHandoff"
)

// CompletionInput identifies the order and browsing tab being closed out.
type CompletionInput struct {
	OrderID int64
	TabID   string
}

// Activities groups the steps of delivery completion.
type Activities struct {
	ledger  deliveryports.OrderLedger
	handoff deliveryports.Handoff
}

// NewActivities wires the order registry and Transfer Store into the activities bundle.
func NewActivities(ledger deliveryports.OrderLedger, handoff deliveryports.Handoff) *Activities {
	return &Activities{ledger: ledger, handoff: handoff}
}

// MarkOrderDelivered completes the order. It is idempotent, so retries are safe.
// An order that has left the registry counts as already closed.
func (a *Activities) MarkOrderDelivered(ctx context.Context, input CompletionInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.ledger == nil {
		logger.Error("mark delivered activity not initialized", "orderId", input.OrderID)
		return errors.New("mark delivered activity not initialized")
	}
	logger.Info("MarkOrderDelivered activity started", "orderId", input.OrderID)
	if _, err := a.ledger.MarkDelivered(ctx, input.OrderID); err != nil {
		if errors.Is(err, ordersports.ErrNotFound) {
			logger.Warn("MarkOrderDelivered order already closed", "orderId", input.OrderID)
			return nil
		}
		logger.Error("MarkOrderDelivered activity failed", "orderId", input.OrderID, "error", err)
		return err
	}
	logger.Info("MarkOrderDelivered activity completed", "orderId", input.OrderID)
	return nil
}

// ClearHandoff removes the Transfer record so the route page no longer shows the order.
func (a *Activities) ClearHandoff(ctx context.Context, input CompletionInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.handoff == nil {
		logger.Error("clear handoff activity not initialized", "tabId", input.TabID)
		return errors.New("clear handoff activity not initialized")
	}
	logger.Info("ClearHandoff activity started", "tabId", input.TabID)
	if err := a.handoff.Clear(ctx, input.TabID); err != nil {
		logger.Error("ClearHandoff activity failed", "tabId", input.TabID, "error", err)
		return err
	}
	logger.Info("ClearHandoff activity completed", "tabId", input.TabID)
	return nil
}
