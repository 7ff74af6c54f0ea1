// Package session holds the in-memory identity of one browser scope: a staff
// provider and a client-portal provider, each with its own state.
package session

import (
	"context"
	"sync"

	"github.com/flowpilot/portal-go/internal/model"
)

// State is a snapshot of a provider. The flags are derived from the lookups
// made by the latest probe and are never kept apart from it.
type State[I any] struct {
	Identity              *I
	Loading               bool
	HasWorkspace          bool
	HasActiveSubscription bool
}

// IsAuthenticated reports whether an identity is present.
func (s State[I]) IsAuthenticated() bool {
	return s.Identity != nil
}

// tracker is the single-writer state shared by both providers. Every probe,
// login and logout takes a sequence number; a probe result only applies if
// nothing newer started since.
type tracker[I any] struct {
	mu     sync.Mutex
	state  State[I]
	seq    uint64
	loaded chan struct{}
	once   sync.Once
}

func newTracker[I any]() *tracker[I] {
	return &tracker[I]{
		state:  State[I]{Loading: true},
		loaded: make(chan struct{}),
	}
}

// begin starts a new operation and returns its sequence number.
func (t *tracker[I]) begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	return t.seq
}

// apply stores st if seq is still the latest operation.
func (t *tracker[I]) apply(seq uint64, st State[I]) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return false
	}
	st.Loading = false
	t.state = st
	t.markLoaded()
	return true
}

// clear drops the identity and supersedes any probe in flight.
func (t *tracker[I]) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.state = State[I]{}
	t.markLoaded()
}

func (t *tracker[I]) markLoaded() {
	t.once.Do(func() { close(t.loaded) })
}

func (t *tracker[I]) snapshot() State[I] {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.state
	if st.Identity != nil {
		id := *st.Identity
		st.Identity = &id
	}
	return st
}

// wait blocks until the first probe settles or ctx is done.
func (t *tracker[I]) wait(ctx context.Context) error {
	select {
	case <-t.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// detached keeps the refresh that follows an accepted mutation alive when the
// caller goes away. The API client's per-call timeout still bounds it.
func detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// transportFailed reports whether r failed before the backend answered.
func transportFailed[T any](r model.Response[T]) bool {
	return !r.Success && r.Error != nil && r.Error.Code == model.CodeNetworkError
}
