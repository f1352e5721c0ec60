package http

import (
	"sync"
	"time"

	"github.com/fjod/pharmacy_cashier/internal/cart"
)

const (
	// SessionIdleTTL is how long an empty terminal session is kept after its
	// last request.
	SessionIdleTTL = 30 * time.Minute

	// SessionSweepInterval is how often idle sessions are evicted.
	SessionSweepInterval = time.Minute
)

type terminal struct {
	mu      sync.Mutex
	session *cart.Session

	// guarded by SessionRegistry.mu
	inUse    int
	lastUsed time.Time
}

// SessionRegistry owns one cashier session per terminal and serialises access
// to each of them.
type SessionRegistry struct {
	mu        sync.Mutex
	terminals map[string]*terminal
	factory   func(terminalID string) *cart.Session
	onCreate  func()
	onEvict   func()
	now       func() time.Time

	stopSweep chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

func NewSessionRegistry(factory func(terminalID string) *cart.Session) *SessionRegistry {
	return &SessionRegistry{
		terminals: make(map[string]*terminal),
		factory:   factory,
		now:       time.Now,
		stopSweep: make(chan struct{}),
	}
}

// OnCreate and OnEvict register callbacks run when a terminal session is made
// or dropped.
func (r *SessionRegistry) OnCreate(fn func()) {
	r.mu.Lock()
	r.onCreate = fn
	r.mu.Unlock()
}

func (r *SessionRegistry) OnEvict(fn func()) {
	r.mu.Lock()
	r.onEvict = fn
	r.mu.Unlock()
}

// acquire returns the terminal marked in use so the sweeper leaves it alone
// until release.
func (r *SessionRegistry) acquire(terminalID string) *terminal {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.terminals[terminalID]
	if !ok {
		t = &terminal{session: r.factory(terminalID)}
		r.terminals[terminalID] = t
		if r.onCreate != nil {
			r.onCreate()
		}
	}
	t.inUse++
	t.lastUsed = r.now()
	return t
}

func (r *SessionRegistry) release(t *terminal) {
	r.mu.Lock()
	t.inUse--
	t.lastUsed = r.now()
	r.mu.Unlock()
}

// With runs fn while holding the terminal's lock.
func (r *SessionRegistry) With(terminalID string, fn func(s *cart.Session) error) error {
	t := r.acquire(terminalID)
	defer r.release(t)
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.session)
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.terminals)
}

// EvictIdle drops sessions with an empty cart that have not been used for
// idle. Sessions holding lines or serving a request are never evicted.
func (r *SessionRegistry) EvictIdle(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	evicted := 0
	for id, t := range r.terminals {
		// no request holds t.mu while inUse is zero
		if t.inUse > 0 || !t.lastUsed.Before(cutoff) || !t.session.IsEmpty() {
			continue
		}
		delete(r.terminals, id)
		evicted++
		if r.onEvict != nil {
			r.onEvict()
		}
	}
	return evicted
}

// StartSweeper evicts idle sessions in the background until Stop is called.
func (r *SessionRegistry) StartSweeper(idle, interval time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.EvictIdle(idle)
			case <-r.stopSweep:
				return
			}
		}
	}()
}

func (r *SessionRegistry) Stop() {
	r.stopOnce.Do(func() { close(r.stopSweep) })
	r.wg.Wait()
}
