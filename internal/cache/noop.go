package cache

import (
	"context"

	"github.com/fjod/pharmacy_cashier/internal/domain"
)

// Noop always misses. It stands in for Redis when no address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]domain.ParkedOrder, error) {
	return nil, ErrCacheMiss
}

func (Noop) Set(context.Context, string, []domain.ParkedOrder) error { return nil }

func (Noop) Delete(context.Context, string) error { return nil }
