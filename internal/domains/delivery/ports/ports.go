package ports

import (
	"context"

	ordersdomain "github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
)

// Handoff reads and clears the Transfer record written by the dashboard.
type Handoff interface {
	Current(ctx context.Context, tabID string) (*ordersdomain.Snapshot, error)
	Clear(ctx context.Context, tabID string) error
	MarkArrived(ctx context.Context, tabID string) (bool, error)
	Arrived(ctx context.Context, tabID string) (bool, error)
}

// OrderLookup reads the order registry behind a Transfer record.
type OrderLookup interface {
	GetByID(ctx context.Context, id int64) (*ordersdomain.Order, error)
}

// OrderLedger records the end of a delivery on the order registry.
type OrderLedger interface {
	MarkDelivered(ctx context.Context, id int64) (*ordersdomain.Order, error)
}

// CompletionCommand identifies the delivery being completed.
type CompletionCommand struct {
	OrderID int64
	TabID   string
}

// CompletionOrchestrator runs the steps that close a delivery.
type CompletionOrchestrator interface {
	CompleteDelivery(ctx context.Context, cmd CompletionCommand) error
}
