package dispatchserver

import (
	"time"

	authports "github.com/Apurer/dharai-delivery/internal/domains/auth/ports"
	deliverydomain "github.com/Apurer/dharai-delivery/internal/domains/delivery/domain"
	deliveryports "github.com/Apurer/dharai-delivery/internal/domains/delivery/ports"
	notifdomain "github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
	ordersdomain "github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

// Navigation tells the client which page to show and when.
type Navigation struct {
	To      string `json:"to"`
	AfterMs int64  `json:"afterMs,omitempty"`
}

// LoginRequest is the login form submission.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginForm pre-fills the login page.
type LoginForm struct {
	Email      string `json:"email"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse confirms a successful sign-in.
type LoginResponse struct {
	UserEmail  string      `json:"userEmail"`
	RememberMe bool        `json:"rememberMe"`
	Navigation *Navigation `json:"navigation,omitempty"`
}

// EmailCheck reports live email feedback.
type EmailCheck struct {
	Email     string `json:"email"`
	Valid     bool   `json:"valid"`
	Plausible bool   `json:"plausible"`
}

// Order is the dashboard card of one order.
type Order struct {
	Id              int64  `json:"id"`
	Reference       string `json:"reference"`
	Status          string `json:"status"`
	StatusLabel     string `json:"statusLabel"`
	CustomerName    string `json:"customerName"`
	CustomerAddress string `json:"customerAddress"`
	CustomerPhone   string `json:"customerPhone"`
	Note            string `json:"note"`
	HasNote         bool   `json:"hasNote"`
	Action          string `json:"action,omitempty"`
}

// Dashboard is the dashboard page model.
type Dashboard struct {
	Navigation *Navigation `json:"navigation,omitempty"`
	UserName   string      `json:"userName,omitempty"`
	Orders     []Order     `json:"orders"`
}

// ConfirmRequest carries the answer to a confirmation prompt.
type ConfirmRequest struct {
	Confirmed bool `json:"confirmed"`
}

// AdvanceRequest names the action button that was pressed.
type AdvanceRequest struct {
	Action    string `json:"action"`
	Confirmed bool   `json:"confirmed"`
}

// MenuRequest names the selected menu item.
type MenuRequest struct {
	Label string `json:"label"`
}

// SearchRequest carries the route search field.
type SearchRequest struct {
	Query string `json:"query"`
}

// CancelResult reports a confirmed cancel.
type CancelResult struct {
	OrderId         int64 `json:"orderId"`
	Removed         bool  `json:"removed"`
	ExitAnimationMs int64 `json:"exitAnimationMs"`
}

// NavigationResult wraps a bare navigation.
type NavigationResult struct {
	Navigation *Navigation `json:"navigation"`
}

// Customer is the route page customer card.
type Customer struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	AvatarUrl string `json:"avatarUrl"`
}

// Route is the route page model.
type Route struct {
	Navigation     *Navigation `json:"navigation,omitempty"`
	OrderId        int64       `json:"orderId,omitempty"`
	OrderReference string      `json:"orderReference,omitempty"`
	Customer       *Customer   `json:"customer,omitempty"`
	Note           string      `json:"note,omitempty"`
	Arrived        bool        `json:"arrived"`
}

// DeliveryResult reports a confirmed delivery.
type DeliveryResult struct {
	OrderId    int64       `json:"orderId"`
	Navigation *Navigation `json:"navigation"`
}

// Dial is the call handoff.
type Dial struct {
	Uri string `json:"uri"`
}

// Toast is one notification with its current lifecycle phase.
type Toast struct {
	Id        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Phase     string    `json:"phase"`
	ShownAt   time.Time `json:"shownAt"`
	LeavesAt  time.Time `json:"leavesAt"`
	RemovedAt time.Time `json:"removedAt"`
}

func fromNavigation(nav *view.Navigation) *Navigation {
	if nav == nil {
		return nil
	}
	return &Navigation{To: string(nav.To), AfterMs: nav.After.Milliseconds()}
}

func fromLoginView(v *authports.LoginView) LoginForm {
	return LoginForm{Email: v.Email, RememberMe: v.RememberMe}
}

func fromLoginResult(r *authports.LoginResult) LoginResponse {
	return LoginResponse{
		UserEmail:  r.Session.UserEmail,
		RememberMe: r.Session.HasSavedEmail(),
		Navigation: fromNavigation(r.Navigation),
	}
}

func fromEmailCheck(c authports.EmailCheck) EmailCheck {
	return EmailCheck{Email: c.Email, Valid: c.Valid, Plausible: c.Plausible}
}

func fromOrder(o *ordersdomain.Order) Order {
	out := Order{
		Id:              o.ID,
		Reference:       o.Reference,
		Status:          string(o.Status),
		StatusLabel:     o.Status.Label(),
		CustomerName:    o.CustomerName,
		CustomerAddress: o.CustomerAddress,
		CustomerPhone:   o.CustomerPhone,
		Note:            o.Note,
		HasNote:         o.HasNote(),
	}
	if !o.IsCompleted() {
		out.Action = o.DefaultAction()
	}
	return out
}

func fromDashboard(d *ordersports.DashboardView) Dashboard {
	out := Dashboard{Navigation: fromNavigation(d.Navigation), UserName: d.UserName, Orders: make([]Order, 0, len(d.Orders))}
	for _, o := range d.Orders {
		out.Orders = append(out.Orders, fromOrder(o))
	}
	return out
}

func fromCancel(r *ordersports.CancelResult) CancelResult {
	return CancelResult{OrderId: r.OrderID, Removed: r.Removed, ExitAnimationMs: r.ExitAnimation.Milliseconds()}
}

func fromCustomer(c *deliverydomain.Customer) *Customer {
	if c == nil {
		return nil
	}
	return &Customer{Name: c.Name, Address: c.Address, Phone: c.Phone, AvatarUrl: c.AvatarURL}
}

func fromRoute(r *deliveryports.RouteView) Route {
	return Route{
		Navigation:     fromNavigation(r.Navigation),
		OrderId:        r.OrderID,
		OrderReference: r.OrderReference,
		Customer:       fromCustomer(r.Customer),
		Note:           r.Note,
		Arrived:        r.Arrived,
	}
}

func fromDelivery(r *deliveryports.DeliveryResult) DeliveryResult {
	return DeliveryResult{OrderId: r.OrderID, Navigation: fromNavigation(r.Navigation)}
}

func fromToasts(toasts []notifdomain.Toast, now time.Time) []Toast {
	out := make([]Toast, 0, len(toasts))
	for _, t := range toasts {
		out = append(out, Toast{
			Id:        t.ID,
			Message:   t.Message,
			Severity:  string(t.Severity),
			Phase:     string(t.PhaseAt(now)),
			ShownAt:   t.ShownAt(),
			LeavesAt:  t.LeavesAt(),
			RemovedAt: t.RemovedAt(),
		})
	}
	return out
}
