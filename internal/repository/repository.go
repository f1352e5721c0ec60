package repository

import (
	"context"
	"errors"

	"github.com/fjod/pharmacy_cashier/internal/domain"
)

var ErrParkedOrderNotFound = errors.New("parked order not found")

// ParkedOrderRepository is the durable store of hang orders. List is scoped to
// one store and ordered newest first.
type ParkedOrderRepository interface {
	Create(ctx context.Context, order domain.ParkedOrder) error
	List(ctx context.Context, storeID string) ([]domain.ParkedOrder, error)
	Get(ctx context.Context, hangID string) (*domain.ParkedOrder, error)
	Delete(ctx context.Context, hangID string) error
}
