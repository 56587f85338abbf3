package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/notifications/ports"
)

var (
	_ ports.Sink = (*Feed)(nil)
	_ ports.Feed = (*Feed)(nil)
)

// Feed keeps toasts per scope until they are gone.
type Feed struct {
	mu     sync.Mutex
	toasts map[string][]domain.Toast
}

func NewFeed() *Feed {
	return &Feed{toasts: map[string][]domain.Toast{}}
}

// Deliver stores the toast and drops every toast, in any scope, that is gone
// by the time this one was created. Scopes nobody polls stay bounded.
func (f *Feed) Deliver(_ context.Context, toast domain.Toast) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweep(toast.CreatedAt)
	f.toasts[toast.Scope] = append(f.toasts[toast.Scope], toast)
	return nil
}

// Active returns the scope's toasts that are not yet gone, oldest first, pruning the rest.
func (f *Feed) Active(_ context.Context, scope string, now time.Time) ([]domain.Toast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweep(now)
	kept := f.toasts[scope]
	if len(kept) == 0 {
		return []domain.Toast{}, nil
	}
	out := make([]domain.Toast, len(kept))
	copy(out, kept)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ShownAt().Before(out[j].ShownAt()) })
	return out, nil
}

// Len reports how many scopes still hold toasts.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.toasts)
}

func (f *Feed) sweep(now time.Time) {
	for scope, toasts := range f.toasts {
		kept := toasts[:0]
		for _, toast := range toasts {
			if toast.PhaseAt(now) != domain.PhaseGone {
				kept = append(kept, toast)
			}
		}
		if len(kept) == 0 {
			delete(f.toasts, scope)
			continue
		}
		f.toasts[scope] = kept
	}
}
