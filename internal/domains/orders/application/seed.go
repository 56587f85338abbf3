package application

import (
	"context"

	"github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
)

// EnsureSeeded loads the default registry into an empty repository.
func EnsureSeeded(ctx context.Context, repo ports.Repository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, order := range domain.SeedOrders() {
		if _, err := repo.Save(ctx, order); err != nil {
			return err
		}
	}
	return nil
}
