package cache

import (
	"context"
	"errors"

	"github.com/fjod/pharmacy_cashier/internal/domain"
)

// ParkedOrderCache holds the parked-order listing of a store.
type ParkedOrderCache interface {
	Get(ctx context.Context, storeID string) ([]domain.ParkedOrder, error)
	Set(ctx context.Context, storeID string, orders []domain.ParkedOrder) error
	Delete(ctx context.Context, storeID string) error
}

var ErrCacheMiss = errors.New("cache miss")
