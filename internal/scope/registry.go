// Package scope keeps one isolated portal scope per browser: its own API
// client and cookie jar, a staff session and a client-portal session.
package scope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flowpilot/portal-go/internal/apiclient"
	"github.com/flowpilot/portal-go/internal/session"
)

var (
	ErrScopeNotFound = errors.New("scope not found")
	ErrRegistryFull  = errors.New("scope registry full")
)

// Scope is the Go counterpart of a browser tab's providers.
type Scope struct {
	ID     uuid.UUID
	API    *apiclient.Client
	Staff  *session.Staff
	Client *session.Client
}

type entry struct {
	scope    *Scope
	cancel   context.CancelFunc
	lastSeen time.Time
}

// Registry owns every live scope and evicts the idle ones.
type Registry struct {
	mu     sync.Mutex
	scopes map[uuid.UUID]*entry
	newAPI func() (*apiclient.Client, error)
	ttl    time.Duration
	max    int
	ctx    context.Context
	now    func() time.Time
}

// NewRegistry creates a registry holding at most maxScopes scopes, unbounded
// when maxScopes <= 0. A scope lives at most ttl without being used. Cleanup
// stops when ctx is done.
func NewRegistry(ctx context.Context, newAPI func() (*apiclient.Client, error), ttl time.Duration, maxScopes int) *Registry {
	r := &Registry{
		scopes: make(map[uuid.UUID]*entry),
		newAPI: newAPI,
		ttl:    ttl,
		max:    maxScopes,
		ctx:    ctx,
		now:    time.Now,
	}
	go r.cleanup(cleanupInterval(ttl))
	return r
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > 10*time.Minute {
		return 10 * time.Minute
	}
	return ttl
}

// Create builds a new scope and starts the mount probes of its providers. It
// returns ErrRegistryFull once the registry is at capacity.
func (r *Registry) Create() (*Scope, error) {
	if r.full() {
		return nil, ErrRegistryFull
	}

	api, err := r.newAPI()
	if err != nil {
		return nil, fmt.Errorf("creating api client: %w", err)
	}

	ctx, cancel := context.WithCancel(r.ctx)
	s := &Scope{
		ID:     uuid.New(),
		API:    api,
		Staff:  session.NewStaff(api),
		Client: session.NewClient(api),
	}

	r.mu.Lock()
	if r.max > 0 && len(r.scopes) >= r.max {
		r.mu.Unlock()
		cancel()
		return nil, ErrRegistryFull
	}
	r.scopes[s.ID] = &entry{scope: s, cancel: cancel, lastSeen: r.now()}
	r.mu.Unlock()

	s.Staff.Activate(ctx)
	s.Client.Activate(ctx)

	slog.Debug("scope created", "scope_id", s.ID)
	return s, nil
}

// Get returns a live scope and marks it as used.
func (r *Registry) Get(id uuid.UUID) (*Scope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.scopes[id]
	if !ok {
		return nil, ErrScopeNotFound
	}
	e.lastSeen = r.now()
	return e.scope, nil
}

func (r *Registry) full() bool {
	if r.max <= 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scopes) >= r.max
}

// Len returns the number of live scopes.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scopes)
}

func (r *Registry) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			if n := r.evictIdle(); n > 0 {
				slog.Info("evicted idle scopes", "count", n)
			}
		}
	}
}

// evictIdle drops scopes unused for longer than the ttl and cancels their
// pending probes.
func (r *Registry) evictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for id, e := range r.scopes {
		if now.Sub(e.lastSeen) > r.ttl {
			e.cancel()
			delete(r.scopes, id)
			evicted++
		}
	}
	return evicted
}
