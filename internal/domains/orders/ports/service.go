package ports

import (
	"context"
	"time"

	"github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

// DashboardView is the dashboard page model. When Navigation is set the page
// must not render and Orders is empty.
type DashboardView struct {
	Navigation *view.Navigation
	UserName   string
	Orders     []*domain.Order
}

// CancelResult describes the outcome of a confirmed cancel.
type CancelResult struct {
	OrderID       int64
	Removed       bool
	ExitAnimation time.Duration
}

// Service exposes the Dashboard Controller use cases to adapters.
type Service interface {
	Dashboard(ctx context.Context, visitor sessiondomain.Visitor) (*DashboardView, error)
	ShowDetails(ctx context.Context, visitor sessiondomain.Visitor, id int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, visitor sessiondomain.Visitor, id int64, confirmed bool) (*CancelResult, error)
	AdvanceOrder(ctx context.Context, visitor sessiondomain.Visitor, id int64, actionLabel string, confirmed bool) (*domain.Order, error)
	RouteToOrder(ctx context.Context, visitor sessiondomain.Visitor, id int64) (*view.Navigation, error)
	Logout(ctx context.Context, visitor sessiondomain.Visitor, confirmed bool) (*view.Navigation, error)
	SelectMenuItem(ctx context.Context, visitor sessiondomain.Visitor, label string) error
	MarkDelivered(ctx context.Context, id int64) (*domain.Order, error)
}
