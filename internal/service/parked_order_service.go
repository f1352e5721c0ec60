package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/cache"
	"github.com/fjod/pharmacy_cashier/internal/cart"
	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/fjod/pharmacy_cashier/internal/repository"
	"golang.org/x/sync/singleflight"
)

// ParkedOrderService is the parked-order store used by cashier sessions of one
// store. Listings are served from the cache when possible.
type ParkedOrderService struct {
	repo    repository.ParkedOrderRepository
	cache   cache.ParkedOrderCache
	storeID string
	log     *slog.Logger
	now     func() time.Time
	sfg     singleflight.Group

	// writes counts invalidations; a listing read before a write is not cached.
	writes atomic.Uint64
}

var _ cart.ParkedOrderStore = (*ParkedOrderService)(nil)

func NewParkedOrderService(repo repository.ParkedOrderRepository, c cache.ParkedOrderCache, storeID string, log *slog.Logger) *ParkedOrderService {
	if log == nil {
		log = slog.Default()
	}
	return &ParkedOrderService{
		repo:    repo,
		cache:   c,
		storeID: storeID,
		log:     log,
		now:     time.Now,
	}
}

func (s *ParkedOrderService) Create(ctx context.Context, order domain.ParkedOrder) (string, error) {
	if order.HangID == "" {
		order.HangID = domain.NewHangID(s.now())
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now()
	}
	order.StoreID = s.storeID

	if err := s.repo.Create(ctx, order); err != nil {
		s.log.Error("repo create parked order failed", "hang_id", order.HangID, "error", err)
		return "", err
	}

	s.invalidateCache()
	return order.HangID, nil
}

func (s *ParkedOrderService) List(ctx context.Context) ([]domain.ParkedOrder, error) {
	v, err, _ := s.sfg.Do(s.storeID, func() (interface{}, error) {
		orders, err := s.cache.Get(ctx, s.storeID)
		if err == nil {
			return orders, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("cache get failed", "store_id", s.storeID, "error", err)
		}

		gen := s.writes.Load()
		orders, err = s.repo.List(ctx, s.storeID)
		if err != nil {
			return nil, err
		}
		if s.writes.Load() != gen {
			return orders, nil
		}

		setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(setCtx, s.storeID, orders); err != nil {
			s.log.Warn("cache set failed", "store_id", s.storeID, "error", err)
		}
		// a write between the check and Set has already deleted the key
		if s.writes.Load() != gen {
			s.invalidateCache()
		}
		return orders, nil
	})
	if err != nil {
		return nil, err
	}

	// callers sharing a singleflight result must not alias each other's lines
	shared := v.([]domain.ParkedOrder)
	out := make([]domain.ParkedOrder, len(shared))
	for i, o := range shared {
		o.Lines = domain.CloneLines(o.Lines)
		out[i] = o
	}
	return out, nil
}

func (s *ParkedOrderService) Get(ctx context.Context, hangID string) (*domain.ParkedOrder, error) {
	o, err := s.repo.Get(ctx, hangID)
	if err != nil {
		return nil, mapNotFound(hangID, err)
	}
	return o, nil
}

func (s *ParkedOrderService) Delete(ctx context.Context, hangID string) error {
	if err := s.repo.Delete(ctx, hangID); err != nil {
		if !errors.Is(err, repository.ErrParkedOrderNotFound) {
			s.log.Error("repo delete parked order failed", "hang_id", hangID, "error", err)
		}
		return mapNotFound(hangID, err)
	}

	s.invalidateCache()
	return nil
}

func (s *ParkedOrderService) invalidateCache() {
	s.writes.Add(1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, s.storeID); err != nil {
		s.log.Warn("cache invalidate failed", "store_id", s.storeID, "error", err)
	}
}

func mapNotFound(hangID string, err error) error {
	if errors.Is(err, repository.ErrParkedOrderNotFound) {
		return fmt.Errorf("parked order %q: %w", hangID, cart.ErrNotFound)
	}
	return err
}
