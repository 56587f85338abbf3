// Package dashctl drives the courier flow in-process for terminal walkthroughs.
package dashctl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	authargon2 "github.com/Apurer/dharai-delivery/internal/domains/auth/adapters/argon2"
	authapp "github.com/Apurer/dharai-delivery/internal/domains/auth/application"
	authdomain "github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
	authports "github.com/Apurer/dharai-delivery/internal/domains/auth/ports"
	deliveryworkflows "github.com/Apurer/dharai-delivery/internal/domains/delivery/adapters/workflows"
	deliveryapp "github.com/Apurer/dharai-delivery/internal/domains/delivery/application"
	deliveryports "github.com/Apurer/dharai-delivery/internal/domains/delivery/ports"
	notifmemory "github.com/Apurer/dharai-delivery/internal/domains/notifications/adapters/memory"
	notifapp "github.com/Apurer/dharai-delivery/internal/domains/notifications/application"
	notifdomain "github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
	notifports "github.com/Apurer/dharai-delivery/internal/domains/notifications/ports"
	ordersapp "github.com/Apurer/dharai-delivery/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
	sessionmemory "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/memory"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

// Harness wires the three pages against in-memory stores for one visitor.
type Harness struct {
	Auth     authports.Service
	Orders   ordersports.Service
	Delivery deliveryports.Service
	Visitor  sessiondomain.Visitor

	feed *notifmemory.Feed
}

// NewHarness builds the services over repo. The demo password is hashed with argon2
// exactly like the API does.
func NewHarness(repo ordersports.Repository, demoPassword string, latency time.Duration) (*Harness, error) {
	verifier, err := authargon2.NewVerifier(demoPassword)
	if err != nil {
		return nil, err
	}
	sessions := sessionapp.NewSessions(sessionmemory.NewStore())
	handoff := ordersapp.NewHandoff(sessionmemory.NewStore())
	feed := notifmemory.NewFeed()
	notifier := notifapp.NewDispatcher([]notifports.Sink{feed})
	orders := ordersapp.NewService(repo, sessions, handoff, notifier)
	return &Harness{
		Auth:     authapp.NewService(sessions, verifier, authapp.WithLatency(latency)),
		Orders:   orders,
		Delivery: deliveryapp.NewService(sessions, repo, handoff, deliveryworkflows.NewInlineCompletion(orders, handoff), notifier),
		Visitor:  sessiondomain.Visitor{ClientID: uuid.NewString(), TabID: uuid.NewString()},
		feed:     feed,
	}, nil
}

// Toasts lists the notifications raised so far, including ones not yet shown.
func (h *Harness) Toasts(ctx context.Context) ([]notifdomain.Toast, error) {
	return h.feed.Active(ctx, h.Visitor.TabID, time.Now())
}

// Step is one line of a walkthrough transcript.
type Step struct {
	Action  string
	Outcome string
}

// Walkthrough signs in, hands orderID to the route page and completes its delivery,
// recording what each page would show.
func (h *Harness) Walkthrough(ctx context.Context, email, password string, orderID int64) ([]Step, error) {
	var steps []Step
	record := func(action, format string, args ...any) {
		steps = append(steps, Step{Action: action, Outcome: fmt.Sprintf(format, args...)})
	}

	login, err := h.Auth.Login(ctx, h.Visitor, authdomain.Credentials{Email: email, Password: password, RememberMe: true})
	if err != nil {
		record("login", "rejected: %v", err)
		return steps, err
	}
	record("login", "signed in as %s, %s", login.Session.UserEmail, describeNavigation(login.Navigation))

	dashboard, err := h.Orders.Dashboard(ctx, h.Visitor)
	if err != nil {
		return steps, err
	}
	record("dashboard", "%d orders for %s", len(dashboard.Orders), dashboard.UserName)

	nav, err := h.Orders.RouteToOrder(ctx, h.Visitor, orderID)
	if err != nil {
		record("route order", "refused: %v", err)
		return steps, err
	}
	record("route order", "%s", describeNavigation(nav))

	route, err := h.Delivery.RouteView(ctx, h.Visitor)
	if err != nil {
		return steps, err
	}
	if route.Customer == nil {
		record("route view", "%s", describeNavigation(route.Navigation))
		return steps, errors.New("route page did not receive the order")
	}
	record("route view", "%s for %s at %s", route.OrderReference, route.Customer.Name, route.Customer.Address)

	if err := h.Delivery.StartNavigation(ctx, h.Visitor); err != nil {
		return steps, err
	}
	record("navigate", "maps opened")

	if _, err := h.Delivery.MarkArrived(ctx, h.Visitor); err != nil {
		return steps, err
	}
	record("arrive", "confirmation revealed")

	var confirm *view.ConfirmationRequired
	if _, err := h.Delivery.ConfirmDelivery(ctx, h.Visitor, false); errors.As(err, &confirm) {
		record("confirm", "prompt %q", confirm.Prompt)
	}
	done, err := h.Delivery.ConfirmDelivery(ctx, h.Visitor, true)
	if err != nil {
		return steps, err
	}
	record("confirm", "order %d delivered, %s", done.OrderID, describeNavigation(done.Navigation))

	order, err := h.Orders.ShowDetails(ctx, h.Visitor, orderID)
	if err != nil {
		return steps, err
	}
	record("dashboard", "order %s is %s", order.Reference, order.Status.Label())
	return steps, nil
}

func describeNavigation(nav *view.Navigation) string {
	if nav == nil {
		return "stays on page"
	}
	if nav.After > 0 {
		return fmt.Sprintf("to %s after %s", nav.To, nav.After)
	}
	return fmt.Sprintf("to %s", nav.To)
}

// OrderRow is the table projection of an order.
func OrderRow(o *ordersdomain.Order) []any {
	action := ""
	if !o.IsCompleted() {
		action = o.DefaultAction()
	}
	return []any{o.ID, o.Reference, o.Status.Label(), o.CustomerName, o.CustomerPhone, o.Note, action}
}
