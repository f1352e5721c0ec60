package http

import (
	"sync"
	"testing"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/cart"
	"github.com/fjod/pharmacy_cashier/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBareRegistry() *SessionRegistry {
	return NewSessionRegistry(func(string) *cart.Session {
		return cart.NewSession(cart.Collaborators{})
	})
}

func TestRegistry_SessionPerTerminal(t *testing.T) {
	r := newBareRegistry()
	created := 0
	r.OnCreate(func() { created++ })

	var first, again, other *cart.Session
	require.NoError(t, r.With("t1", func(s *cart.Session) error { first = s; return nil }))
	require.NoError(t, r.With("t1", func(s *cart.Session) error { again = s; return nil }))
	require.NoError(t, r.With("t2", func(s *cart.Session) error { other = s; return nil }))

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_SerialisesTerminalAccess(t *testing.T) {
	r := newBareRegistry()
	p := domain.Product{ID: "A", Name: "A", RetailPrice: decimal.RequireFromString("1")}
	require.NoError(t, r.With("t1", func(s *cart.Session) error { s.AddProduct(p); return nil }))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.With("t1", func(s *cart.Session) error { return s.Increment("A") })
		}()
	}
	wg.Wait()

	require.NoError(t, r.With("t1", func(s *cart.Session) error {
		assert.Equal(t, 51, s.Lines()[0].Quantity)
		return nil
	}))
}

func TestRegistry_EvictIdle(t *testing.T) {
	r := newBareRegistry()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	evicted := 0
	r.OnEvict(func() { evicted++ })

	p := domain.Product{ID: "A", Name: "A", RetailPrice: decimal.RequireFromString("1")}
	require.NoError(t, r.With("busy", func(s *cart.Session) error { s.AddProduct(p); return nil }))
	require.NoError(t, r.With("idle", func(*cart.Session) error { return nil }))

	now = now.Add(10 * time.Minute)
	require.NoError(t, r.With("recent", func(*cart.Session) error { return nil }))

	now = now.Add(25 * time.Minute)
	assert.Equal(t, 1, r.EvictIdle(SessionIdleTTL))
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_EvictIdleSkipsTerminalInUse(t *testing.T) {
	r := newBareRegistry()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	p := domain.Product{ID: "A", Name: "A", RetailPrice: decimal.RequireFromString("1")}

	require.NoError(t, r.With("t1", func(s *cart.Session) error {
		now = now.Add(time.Hour)
		assert.Equal(t, 0, r.EvictIdle(SessionIdleTTL))
		s.AddProduct(p)
		return nil
	}))

	assert.Equal(t, 1, r.Len())
	require.NoError(t, r.With("t1", func(s *cart.Session) error {
		assert.Len(t, s.Lines(), 1)
		return nil
	}))
}

func TestRegistry_SweeperStops(t *testing.T) {
	r := newBareRegistry()
	require.NoError(t, r.With("t1", func(*cart.Session) error { return nil }))

	r.StartSweeper(0, 5*time.Millisecond)
	require.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
	r.Stop()
	r.Stop()
}
