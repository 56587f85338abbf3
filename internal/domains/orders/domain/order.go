package domain

import (
	"errors"
	"strings"
)

// Status enumerates delivery progression.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOnTheWay  Status = "on_the_way"
	StatusCompleted Status = "completed"
)

// NoNote marks an order without delivery instructions.
const NoNote = "None"

var (
	ErrInvalidID        = errors.New("order id must be greater than zero")
	ErrInvalidReference = errors.New("order reference is required")
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrMissingCustomer  = errors.New("customer name is required")
	ErrOrderCompleted   = errors.New("order is already completed")
)

// Label is the status text shown on the dashboard.
func (s Status) Label() string {
	switch s {
	case StatusUpcoming:
		return "Upcoming"
	case StatusOnTheWay:
		return "On The Way"
	case StatusCompleted:
		return "Order Completed"
	default:
		return string(s)
	}
}

// StatusFromLabel reverses Label, also accepting the raw status values.
func StatusFromLabel(label string) (Status, bool) {
	for _, s := range []Status{StatusUpcoming, StatusOnTheWay, StatusCompleted} {
		if label == s.Label() || label == string(s) {
			return s, true
		}
	}
	return "", false
}

// Order is one delivery task. ID keys the registry; Reference is what couriers see.
type Order struct {
	ID              int64
	Reference       string
	Status          Status
	CustomerName    string
	CustomerAddress string
	CustomerPhone   string
	Note            string
	Position        int
}

// NewOrder validates and constructs an order.
func NewOrder(id int64, reference string, status Status, name, address, phone, note string, position int) (*Order, error) {
	order := &Order{
		ID:              id,
		Reference:       strings.TrimSpace(reference),
		Status:          status,
		CustomerName:    strings.TrimSpace(name),
		CustomerAddress: strings.TrimSpace(address),
		CustomerPhone:   strings.TrimSpace(phone),
		Note:            strings.TrimSpace(note),
		Position:        position,
	}
	if order.Note == "" {
		order.Note = NoNote
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.ID <= 0 {
		return ErrInvalidID
	}
	if o.Reference == "" {
		return ErrInvalidReference
	}
	if o.CustomerName == "" {
		return ErrMissingCustomer
	}
	switch o.Status {
	case StatusUpcoming, StatusOnTheWay, StatusCompleted:
		return nil
	default:
		return ErrInvalidStatus
	}
}

func (o *Order) IsCompleted() bool { return o.Status == StatusCompleted }

// HasNote reports whether the order carries real instructions.
func (o *Order) HasNote() bool { return o.Note != "" && o.Note != NoNote }

// DefaultAction is the label of the order's primary button.
func (o *Order) DefaultAction() string {
	if o.Status == StatusOnTheWay {
		return "Deliver"
	}
	return "Confirm"
}

// Complete is the terminal dashboard transition. A completed order accepts no further actions.
func (o *Order) Complete() error {
	if o.IsCompleted() {
		return ErrOrderCompleted
	}
	o.Status = StatusCompleted
	return nil
}

// MarkDelivered completes the order and tolerates repeats.
func (o *Order) MarkDelivered() {
	o.Status = StatusCompleted
}
