package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	notifdomain "github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
	notifports "github.com/Apurer/dharai-delivery/internal/domains/notifications/ports"
	"github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

// Dashboard feedback timing.
const (
	WelcomeDelay  = 500 * time.Millisecond
	MenuDelay     = 300 * time.Millisecond
	ExitAnimation = 300 * time.Millisecond
)

// Confirmation prompts.
const (
	PromptCancel = "Are you sure you want to cancel this order?"
	PromptLogout = "Are you sure you want to logout?"
)

// Toast texts.
const (
	MessageOrderCompleted = "Order completed successfully!"
)

var errEmptyMenuLabel = errors.New("menu item label is required")

// Service implements the Dashboard Controller.
type Service struct {
	repo     ports.Repository
	sessions *sessionapp.Sessions
	handoff  *Handoff
	notifier notifports.Notifier
}

func NewService(repo ports.Repository, sessions *sessionapp.Sessions, handoff *Handoff, notifier notifports.Notifier) *Service {
	if notifier == nil {
		notifier = notifports.NoopNotifier
	}
	return &Service{repo: repo, sessions: sessions, handoff: handoff, notifier: notifier}
}

// Dashboard gates on the session and lists the registry in display order.
func (s *Service) Dashboard(ctx context.Context, visitor sessiondomain.Visitor) (*ports.DashboardView, error) {
	record, err := s.sessions.Load(ctx, visitor.ClientID)
	if err != nil && !errors.Is(err, sessionapp.ErrMissingClient) {
		return nil, err
	}
	if !record.LoggedIn {
		return &ports.DashboardView{Navigation: view.NavigateNow(view.PageLogin), Orders: []*domain.Order{}}, nil
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	name := record.DisplayName()
	if record.UserEmail != "" {
		s.notifier.Notify(ctx, visitor.TabID, fmt.Sprintf("Welcome back, %s!", name),
			notifdomain.SeveritySuccess, notifdomain.After(WelcomeDelay))
	}
	return &ports.DashboardView{UserName: name, Orders: orders}, nil
}

func (s *Service) ShowDetails(ctx context.Context, visitor sessiondomain.Visitor, id int64) (*domain.Order, error) {
	if err := s.requireLogin(ctx, visitor); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// CancelOrder removes the order once confirmed. A missing order is a no-op.
func (s *Service) CancelOrder(ctx context.Context, visitor sessiondomain.Visitor, id int64, confirmed bool) (*ports.CancelResult, error) {
	if err := s.requireLogin(ctx, visitor); err != nil {
		return nil, err
	}
	if err := view.Confirm(confirmed, PromptCancel); err != nil {
		return nil, err
	}
	order, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ports.ErrNotFound) {
		return &ports.CancelResult{OrderID: id}, nil
	}
	if err != nil {
		return nil, err
	}
	if order.IsCompleted() {
		return nil, domain.ErrOrderCompleted
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return &ports.CancelResult{OrderID: id}, nil
		}
		return nil, err
	}
	return &ports.CancelResult{OrderID: id, Removed: true, ExitAnimation: ExitAnimation}, nil
}

// AdvanceOrder completes the order once confirmed. actionLabel names the
// button pressed and defaults to the order's primary action.
func (s *Service) AdvanceOrder(ctx context.Context, visitor sessiondomain.Visitor, id int64, actionLabel string, confirmed bool) (*domain.Order, error) {
	if err := s.requireLogin(ctx, visitor); err != nil {
		return nil, err
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsCompleted() {
		return nil, domain.ErrOrderCompleted
	}
	action := strings.TrimSpace(actionLabel)
	if action == "" {
		action = order.DefaultAction()
	}
	if err := view.Confirm(confirmed, fmt.Sprintf("%s this order?", action)); err != nil {
		return nil, err
	}
	if err := order.Complete(); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	s.notifier.Notify(ctx, visitor.TabID, MessageOrderCompleted, notifdomain.SeveritySuccess)
	return saved, nil
}

// RouteToOrder hands the order to the route page through the Transfer Store.
func (s *Service) RouteToOrder(ctx context.Context, visitor sessiondomain.Visitor, id int64) (*view.Navigation, error) {
	if err := s.requireLogin(ctx, visitor); err != nil {
		return nil, err
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsCompleted() {
		return nil, domain.ErrOrderCompleted
	}
	if err := s.handoff.Put(ctx, visitor.TabID, order); err != nil {
		return nil, err
	}
	return view.NavigateNow(view.PageRoute), nil
}

func (s *Service) Logout(ctx context.Context, visitor sessiondomain.Visitor, confirmed bool) (*view.Navigation, error) {
	if err := s.requireLogin(ctx, visitor); err != nil {
		return nil, err
	}
	if err := view.Confirm(confirmed, PromptLogout); err != nil {
		return nil, err
	}
	if err := s.sessions.SignOut(ctx, visitor.ClientID); err != nil {
		return nil, err
	}
	return view.NavigateNow(view.PageLogin), nil
}

// SelectMenuItem closes the drawer and announces the placeholder feature.
func (s *Service) SelectMenuItem(ctx context.Context, visitor sessiondomain.Visitor, label string) error {
	if err := s.requireLogin(ctx, visitor); err != nil {
		return err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, errEmptyMenuLabel)
	}
	s.notifier.Notify(ctx, visitor.TabID, fmt.Sprintf("%s - Feature coming soon!", label),
		notifdomain.SeverityInfo, notifdomain.After(MenuDelay))
	return nil
}

// MarkDelivered completes the order at the end of a delivery. Repeats are no-ops.
func (s *Service) MarkDelivered(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsCompleted() {
		return order, nil
	}
	order.MarkDelivered()
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
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

var _ ports.Service = (*Service)(nil)
