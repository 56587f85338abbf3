package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/dharai-delivery/internal/domains/delivery/adapters/workflows"
	"github.com/Apurer/dharai-delivery/internal/domains/delivery/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/delivery/ports"
	notifdomain "github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
	ordersmemory "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/dharai-delivery/internal/domains/orders/application"
	sessionmemory "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/memory"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

type fakeNotifier struct {
	messages []string
	delays   []time.Duration
}

func (f *fakeNotifier) Notify(_ context.Context, _ string, message string, _ notifdomain.Severity, opts ...notifdomain.Option) {
	var toast notifdomain.Toast
	for _, opt := range opts {
		opt(&toast)
	}
	f.messages = append(f.messages, message)
	f.delays = append(f.delays, toast.Delay)
}

type failingOrchestrator struct{}

func (failingOrchestrator) CompleteDelivery(context.Context, ports.CompletionCommand) error {
	return errors.New("workflow unavailable")
}

type fixture struct {
	svc      *Service
	orders   *ordersapp.Service
	repo     *ordersmemory.Repository
	handoff  *ordersapp.Handoff
	notifier *fakeNotifier
	sessions *sessionapp.Sessions
}

var courier = sessiondomain.Visitor{ClientID: "client-1", TabID: "tab-1"}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		repo:     ordersmemory.NewSeededRepository(),
		sessions: sessionapp.NewSessions(sessionmemory.NewStore()),
		handoff:  ordersapp.NewHandoff(sessionmemory.NewStore()),
		notifier: &fakeNotifier{},
	}
	f.orders = ordersapp.NewService(f.repo, f.sessions, f.handoff, nil)
	f.svc = NewService(f.sessions, f.repo, f.handoff, workflows.NewInlineCompletion(f.orders, f.handoff), f.notifier)
	require.NoError(t, f.sessions.SignIn(context.Background(), courier.ClientID, "courier@dharai.app", false))
	return f
}

func (f fixture) routeTo(t *testing.T, id int64) {
	t.Helper()
	_, err := f.orders.RouteToOrder(context.Background(), courier, id)
	require.NoError(t, err)
}

func TestRouteView_WithoutTransferGoesToDashboard(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.RouteView(context.Background(), courier)
	require.NoError(t, err)
	require.NotNil(t, result.Navigation)
	assert.Equal(t, view.PageDashboard, result.Navigation.To)
	assert.Nil(t, result.Customer)
}

func TestRouteView_WithoutLoginGoesToLogin(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.RouteView(context.Background(), sessiondomain.Visitor{ClientID: "stranger", TabID: "tab-9"})
	require.NoError(t, err)
	assert.Equal(t, view.PageLogin, result.Navigation.To)
}

func TestRouteView_ShowsHandedOffOrder(t *testing.T) {
	f := newFixture(t)
	f.routeTo(t, 2)

	result, err := f.svc.RouteView(context.Background(), courier)
	require.NoError(t, err)
	assert.Nil(t, result.Navigation)
	assert.Equal(t, "Mohamed Ali", result.Customer.Name)
	assert.Equal(t, "0112010666", result.Customer.Phone)
	assert.Contains(t, result.Customer.AvatarURL, "name=Mohamed%20Ali")
	assert.False(t, result.Arrived)
}

func TestStartNavigation_AnnouncesTwice(t *testing.T) {
	f := newFixture(t)
	f.routeTo(t, 1)

	require.NoError(t, f.svc.StartNavigation(context.Background(), courier))
	assert.Equal(t, []string{"Opening Maps app...", "Navigation started!"}, f.notifier.messages)
	assert.Equal(t, []time.Duration{0, time.Second}, f.notifier.delays)
}

func TestMarkArrived_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.routeTo(t, 1)
	ctx := context.Background()

	result, err := f.svc.MarkArrived(ctx, courier)
	require.NoError(t, err)
	assert.True(t, result.Arrived)
	_, err = f.svc.MarkArrived(ctx, courier)
	require.NoError(t, err)
	assert.Equal(t, []string{"Location reached!"}, f.notifier.messages)

	routeView, err := f.svc.RouteView(ctx, courier)
	require.NoError(t, err)
	assert.True(t, routeView.Arrived)
}

func TestConfirmDelivery_NeedsConfirmation(t *testing.T) {
	f := newFixture(t)
	f.routeTo(t, 1)
	ctx := context.Background()

	_, err := f.svc.ConfirmDelivery(ctx, courier, false)
	var confirm *view.ConfirmationRequired
	require.True(t, errors.As(err, &confirm))
	assert.Equal(t, "Confirm delivery completion?", confirm.Prompt)

	snapshot, err := f.handoff.Current(ctx, courier.TabID)
	require.NoError(t, err)
	assert.NotNil(t, snapshot)
}

func TestConfirmDelivery_ClearsTransferAndCompletesOrder(t *testing.T) {
	f := newFixture(t)
	f.routeTo(t, 1)
	ctx := context.Background()

	result, err := f.svc.ConfirmDelivery(ctx, courier, true)
	require.NoError(t, err)
	assert.Equal(t, view.PageDashboard, result.Navigation.To)
	assert.Equal(t, 1500*time.Millisecond, result.Navigation.After)
	assert.Equal(t, []string{"Delivery completed successfully!"}, f.notifier.messages)

	routeView, err := f.svc.RouteView(ctx, courier)
	require.NoError(t, err)
	assert.Equal(t, view.PageDashboard, routeView.Navigation.To)

	order, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, order.IsCompleted())

	_, err = f.svc.ConfirmDelivery(ctx, courier, true)
	require.ErrorIs(t, err, domain.ErrNoActiveDelivery)
}

func TestConfirmDelivery_OrchestratorFailureKeepsTransfer(t *testing.T) {
	f := newFixture(t)
	f.routeTo(t, 1)
	svc := NewService(f.sessions, f.repo, f.handoff, failingOrchestrator{}, f.notifier)

	_, err := svc.ConfirmDelivery(context.Background(), courier, true)
	require.Error(t, err)
	assert.Empty(t, f.notifier.messages)
	snapshot, err := f.handoff.Current(context.Background(), courier.TabID)
	require.NoError(t, err)
	assert.NotNil(t, snapshot)
}

func TestCallCustomer(t *testing.T) {
	f := newFixture(t)
	f.routeTo(t, 3)
	ctx := context.Background()

	_, err := f.svc.CallCustomer(ctx, courier, false)
	var confirm *view.ConfirmationRequired
	require.True(t, errors.As(err, &confirm))
	assert.Equal(t, "Call 0123456789?", confirm.Prompt)

	dial, err := f.svc.CallCustomer(ctx, courier, true)
	require.NoError(t, err)
	assert.Equal(t, "tel:0123456789", dial.URI)
}

func TestActionsWithoutTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.svc.StartNavigation(ctx, courier), domain.ErrNoActiveDelivery)
	_, err := f.svc.MarkArrived(ctx, courier)
	require.ErrorIs(t, err, domain.ErrNoActiveDelivery)
	_, err = f.svc.CallCustomer(ctx, courier, true)
	require.ErrorIs(t, err, domain.ErrNoActiveDelivery)
	_, err = f.svc.ConfirmDelivery(ctx, sessiondomain.Visitor{TabID: "tab-1"}, true)
	require.ErrorIs(t, err, ErrLoginRequired)
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Search(ctx, courier, "   "))
	assert.Empty(t, f.notifier.messages)
	require.NoError(t, f.svc.Search(ctx, courier, " Nasr City "))
	assert.Equal(t, []string{"Searching for: Nasr City"}, f.notifier.messages)
}

func TestGoBack_KeepsTransfer(t *testing.T) {
	f := newFixture(t)
	f.routeTo(t, 1)

	nav, err := f.svc.GoBack(context.Background(), courier)
	require.NoError(t, err)
	assert.Equal(t, view.PageDashboard, nav.To)
	snapshot, err := f.handoff.Current(context.Background(), courier.TabID)
	require.NoError(t, err)
	assert.NotNil(t, snapshot)
}

func TestCancelledOrderReleasesTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.routeTo(t, 1)
	_, err := f.svc.GoBack(ctx, courier)
	require.NoError(t, err)

	cancelled, err := f.orders.CancelOrder(ctx, courier, 1, true)
	require.NoError(t, err)
	require.True(t, cancelled.Removed)

	routeView, err := f.svc.RouteView(ctx, courier)
	require.NoError(t, err)
	require.NotNil(t, routeView.Navigation)
	assert.Equal(t, view.PageDashboard, routeView.Navigation.To)
	assert.Nil(t, routeView.Customer)

	_, err = f.svc.ConfirmDelivery(ctx, courier, true)
	require.ErrorIs(t, err, domain.ErrNoActiveDelivery)
	snapshot, err := f.handoff.Current(ctx, courier.TabID)
	require.NoError(t, err)
	require.Nil(t, snapshot)
}

func TestConfirmDelivery_OrderRemovedMidConfirmStillClearsTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.routeTo(t, 2)
	completion := workflows.NewInlineCompletion(f.orders, f.handoff)
	require.NoError(t, f.repo.Delete(ctx, 2))

	require.NoError(t, completion.CompleteDelivery(ctx, ports.CompletionCommand{OrderID: 2, TabID: courier.TabID}))
	snapshot, err := f.handoff.Current(ctx, courier.TabID)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

// End-to-end walk through the three pages with in-memory stores.
func TestDeliveryRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dashboard, err := f.orders.Dashboard(ctx, courier)
	require.NoError(t, err)
	require.Len(t, dashboard.Orders, 3)

	f.routeTo(t, 1)
	routeView, err := f.svc.RouteView(ctx, courier)
	require.NoError(t, err)
	assert.Equal(t, "Mohamed Salah", routeView.Customer.Name)

	result, err := f.svc.ConfirmDelivery(ctx, courier, true)
	require.NoError(t, err)
	assert.Equal(t, view.PageDashboard, result.Navigation.To)

	snapshot, err := f.handoff.Current(ctx, courier.TabID)
	require.NoError(t, err)
	assert.Nil(t, snapshot)

	dashboard, err = f.orders.Dashboard(ctx, courier)
	require.NoError(t, err)
	assert.Nil(t, dashboard.Navigation)
}
