package application

import (
	"context"
	"errors"

	"github.com/Apurer/dharai-delivery/internal/domains/delivery/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/delivery/ports"
	notifdomain "github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
	notifports "github.com/Apurer/dharai-delivery/internal/domains/notifications/ports"
	ordersdomain "github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

// ErrLoginRequired is returned to route actions without a signed-in session.
var ErrLoginRequired = errors.New("login required")

// Service implements the Route Controller.
type Service struct {
	sessions     *sessionapp.Sessions
	orders       ports.OrderLookup
	handoff      ports.Handoff
	orchestrator ports.CompletionOrchestrator
	notifier     notifports.Notifier
}

func NewService(sessions *sessionapp.Sessions, orders ports.OrderLookup, handoff ports.Handoff, orchestrator ports.CompletionOrchestrator, notifier notifports.Notifier) *Service {
	if notifier == nil {
		notifier = notifports.NoopNotifier
	}
	return &Service{sessions: sessions, orders: orders, handoff: handoff, orchestrator: orchestrator, notifier: notifier}
}

// RouteView renders the handed-off order. Without a session it sends the
// courier to login; without a live Transfer record, back to the dashboard.
func (s *Service) RouteView(ctx context.Context, visitor sessiondomain.Visitor) (*ports.RouteView, error) {
	if err := s.requireLogin(ctx, visitor); err != nil {
		if errors.Is(err, ErrLoginRequired) {
			return &ports.RouteView{Navigation: view.NavigateNow(view.PageLogin)}, nil
		}
		return nil, err
	}
	snapshot, err := s.currentDelivery(ctx, visitor.TabID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return &ports.RouteView{Navigation: view.NavigateNow(view.PageDashboard)}, nil
	}
	arrived, err := s.handoff.Arrived(ctx, visitor.TabID)
	if err != nil {
		return nil, err
	}
	return buildRouteView(snapshot, arrived), nil
}

func (s *Service) StartNavigation(ctx context.Context, visitor sessiondomain.Visitor) error {
	if _, err := s.activeDelivery(ctx, visitor); err != nil {
		return err
	}
	s.notifier.Notify(ctx, visitor.TabID, domain.MessageOpeningMaps, notifdomain.SeverityInfo)
	s.notifier.Notify(ctx, visitor.TabID, domain.MessageNavigationStarted, notifdomain.SeveritySuccess,
		notifdomain.After(domain.NavigationStartedDelay))
	return nil
}

// MarkArrived reveals the delivery confirmation. Repeats change nothing.
func (s *Service) MarkArrived(ctx context.Context, visitor sessiondomain.Visitor) (*ports.RouteView, error) {
	snapshot, err := s.activeDelivery(ctx, visitor)
	if err != nil {
		return nil, err
	}
	already, err := s.handoff.MarkArrived(ctx, visitor.TabID)
	if err != nil {
		return nil, err
	}
	if !already {
		s.notifier.Notify(ctx, visitor.TabID, domain.MessageLocationReached, notifdomain.SeveritySuccess)
	}
	return buildRouteView(snapshot, true), nil
}

// ConfirmDelivery completes the delivery once confirmed and returns to the dashboard.
func (s *Service) ConfirmDelivery(ctx context.Context, visitor sessiondomain.Visitor, confirmed bool) (*ports.DeliveryResult, error) {
	snapshot, err := s.activeDelivery(ctx, visitor)
	if err != nil {
		return nil, err
	}
	if err := view.Confirm(confirmed, domain.PromptConfirmDelivery); err != nil {
		return nil, err
	}
	cmd := ports.CompletionCommand{OrderID: snapshot.OrderID, TabID: visitor.TabID}
	if err := s.orchestrator.CompleteDelivery(ctx, cmd); err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, visitor.TabID, domain.MessageDeliveryCompleted, notifdomain.SeveritySuccess)
	return &ports.DeliveryResult{
		OrderID:    snapshot.OrderID,
		Navigation: view.NavigateAfter(view.PageDashboard, domain.ReturnToDashboardWait),
	}, nil
}

// CallCustomer hands the customer's number to the dialer once confirmed.
func (s *Service) CallCustomer(ctx context.Context, visitor sessiondomain.Visitor, confirmed bool) (*ports.Dial, error) {
	snapshot, err := s.activeDelivery(ctx, visitor)
	if err != nil {
		return nil, err
	}
	if err := view.Confirm(confirmed, domain.CallPrompt(snapshot.CustomerPhone)); err != nil {
		return nil, err
	}
	return &ports.Dial{URI: domain.DialURI(snapshot.CustomerPhone)}, nil
}

// Search echoes the query. Blank queries are ignored.
func (s *Service) Search(ctx context.Context, visitor sessiondomain.Visitor, query string) error {
	if err := s.requireLogin(ctx, visitor); err != nil {
		return err
	}
	if message := domain.SearchMessage(query); message != "" {
		s.notifier.Notify(ctx, visitor.TabID, message, notifdomain.SeverityInfo)
	}
	return nil
}

// GoBack leaves the route page. The Transfer record is kept.
func (s *Service) GoBack(_ context.Context, _ sessiondomain.Visitor) (*view.Navigation, error) {
	return view.NavigateNow(view.PageDashboard), nil
}

func (s *Service) activeDelivery(ctx context.Context, visitor sessiondomain.Visitor) (*ordersdomain.Snapshot, error) {
	if err := s.requireLogin(ctx, visitor); err != nil {
		return nil, err
	}
	snapshot, err := s.currentDelivery(ctx, visitor.TabID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, domain.ErrNoActiveDelivery
	}
	return snapshot, nil
}

// currentDelivery reads the tab's Transfer record. A record whose order has
// left the registry is cleared and reported as absent.
func (s *Service) currentDelivery(ctx context.Context, tabID string) (*ordersdomain.Snapshot, error) {
	snapshot, err := s.handoff.Current(ctx, tabID)
	if err != nil || snapshot == nil {
		return snapshot, err
	}
	if s.orders == nil {
		return snapshot, nil
	}
	if _, err := s.orders.GetByID(ctx, snapshot.OrderID); err != nil {
		if !errors.Is(err, ordersports.ErrNotFound) {
			return nil, err
		}
		if err := s.handoff.Clear(ctx, tabID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return snapshot, nil
}

func (s *Service) requireLogin(ctx context.Context, visitor sessiondomain.Visitor) error {
	record, err := s.sessions.Load(ctx, visitor.ClientID)
	if errors.Is(err, sessionapp.ErrMissingClient) {
		return ErrLoginRequired
	}
	if err != nil {
		return err
	}
	if !record.LoggedIn {
		return ErrLoginRequired
	}
	return nil
}

func buildRouteView(snapshot *ordersdomain.Snapshot, arrived bool) *ports.RouteView {
	return &ports.RouteView{
		OrderID:        snapshot.OrderID,
		OrderReference: snapshot.ID,
		Customer: &domain.Customer{
			Name:      snapshot.CustomerName,
			Address:   snapshot.CustomerAddress,
			Phone:     snapshot.CustomerPhone,
			AvatarURL: domain.AvatarURL(snapshot.CustomerName),
		},
		Note:    snapshot.Note,
		Arrived: arrived,
	}
}

var _ ports.Service = (*Service)(nil)
