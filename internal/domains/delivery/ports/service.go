package ports

import (
	"context"

	"github.com/Apurer/dharai-delivery/internal/domains/delivery/domain"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

// RouteView is the route page model. When Navigation is set nothing else is populated.
type RouteView struct {
	Navigation     *view.Navigation
	OrderID        int64
	OrderReference string
	Customer       *domain.Customer
	Note           string
	Arrived        bool
}

// DeliveryResult is returned once a delivery is confirmed.
type DeliveryResult struct {
	OrderID    int64
	Navigation *view.Navigation
}

// Dial asks the operating environment to call the customer.
type Dial struct {
	URI string
}

// Service exposes the Route Controller use cases to adapters.
type Service interface {
	RouteView(ctx context.Context, visitor sessiondomain.Visitor) (*RouteView, error)
	StartNavigation(ctx context.Context, visitor sessiondomain.Visitor) error
	MarkArrived(ctx context.Context, visitor sessiondomain.Visitor) (*RouteView, error)
	ConfirmDelivery(ctx context.Context, visitor sessiondomain.Visitor, confirmed bool) (*DeliveryResult, error)
	CallCustomer(ctx context.Context, visitor sessiondomain.Visitor, confirmed bool) (*Dial, error)
	Search(ctx context.Context, visitor sessiondomain.Visitor, query string) error
	GoBack(ctx context.Context, visitor sessiondomain.Visitor) (*view.Navigation, error)
}
