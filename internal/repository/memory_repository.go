package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fjod/pharmacy_cashier/internal/domain"
)

// MemoryRepository keeps parked orders in process memory. Orders do not
// survive a restart; it backs local development and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.ParkedOrder
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[string]domain.ParkedOrder)}
}

func (m *MemoryRepository) Create(_ context.Context, order domain.ParkedOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[order.HangID]; ok {
		return fmt.Errorf("failed to create parked order: duplicate hang id %s", order.HangID)
	}
	order.Lines = domain.CloneLines(order.Lines)
	m.orders[order.HangID] = order
	return nil
}

func (m *MemoryRepository) List(_ context.Context, storeID string) ([]domain.ParkedOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ParkedOrder, 0, len(m.orders))
	for _, o := range m.orders {
		if o.StoreID != storeID {
			continue
		}
		o.Lines = domain.CloneLines(o.Lines)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].HangID > out[j].HangID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepository) Get(_ context.Context, hangID string) (*domain.ParkedOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[hangID]
	if !ok {
		return nil, ErrParkedOrderNotFound
	}
	o.Lines = domain.CloneLines(o.Lines)
	return &o, nil
}

func (m *MemoryRepository) Delete(_ context.Context, hangID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[hangID]; !ok {
		return ErrParkedOrderNotFound
	}
	delete(m.orders, hangID)
	return nil
}
