package application

import (
	"context"
	"errors"

	"github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	sessionports "github.com/Apurer/dharai-delivery/internal/domains/session/ports"
)

// Handoff owns the Transfer record: the single order snapshot passed from the
// dashboard to the route page, plus the route page's arrival flag.
type Handoff struct {
	store sessionports.TransferStore
}

func NewHandoff(store sessionports.TransferStore) *Handoff {
	return &Handoff{store: store}
}

// Put replaces the tab's Transfer record with order and resets arrival.
func (h *Handoff) Put(ctx context.Context, tabID string, order *domain.Order) error {
	if tabID == "" {
		return errors.New("browsing id is required")
	}
	raw, err := domain.NewSnapshot(order).Encode()
	if err != nil {
		return err
	}
	if err := h.store.Clear(ctx, tabID, sessiondomain.KeyArrived); err != nil {
		return err
	}
	return h.store.Set(ctx, tabID, sessiondomain.KeyCurrentOrder, raw)
}

// Current returns the tab's snapshot. An unreadable record is dropped and reported absent.
func (h *Handoff) Current(ctx context.Context, tabID string) (*domain.Snapshot, error) {
	if tabID == "" {
		return nil, nil
	}
	raw, ok, err := h.store.Get(ctx, tabID, sessiondomain.KeyCurrentOrder)
	if err != nil || !ok {
		return nil, err
	}
	snapshot, err := domain.DecodeSnapshot(raw)
	if err != nil {
		return nil, h.Clear(ctx, tabID)
	}
	return &snapshot, nil
}

// Clear removes the Transfer record and the arrival flag.
func (h *Handoff) Clear(ctx context.Context, tabID string) error {
	if err := h.store.Clear(ctx, tabID, sessiondomain.KeyCurrentOrder); err != nil {
		return err
	}
	return h.store.Clear(ctx, tabID, sessiondomain.KeyArrived)
}

// MarkArrived records the arrival and reports whether it was already set.
func (h *Handoff) MarkArrived(ctx context.Context, tabID string) (bool, error) {
	already, err := h.Arrived(ctx, tabID)
	if err != nil || already {
		return already, err
	}
	return false, h.store.Set(ctx, tabID, sessiondomain.KeyArrived, "true")
}

func (h *Handoff) Arrived(ctx context.Context, tabID string) (bool, error) {
	value, ok, err := h.store.Get(ctx, tabID, sessiondomain.KeyArrived)
	if err != nil {
		return false, err
	}
	return ok && value == "true", nil
}
