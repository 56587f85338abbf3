package ports

import (
	"context"
	"errors"

	"github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists the order registry. List returns orders by Position.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Order, error)
}
