package core

import (
	"sync"
	"time"

	"dentsync/pkg/domain"
)

// Store owns the singleton application state. Dispatch is its sole mutator
// entry point: it applies the reducer, notifies subscribers with the new
// snapshot, and persists the non-volatile projection best-effort. Actions are
// serialized under one mutex, so the reducer never observes a torn state.
type Store struct {
	mu        sync.Mutex
	state     AppState
	reducer   *Reducer
	persister Persister
	logger    Logger
	metrics   MetricsRecorder

	listenerMu   sync.Mutex
	listeners    map[int]func(AppState)
	nextListener int
}

// StoreOption customizes store construction.
type StoreOption func(*Store)

// WithLogger installs the logger used for persistence failures.
func WithLogger(logger Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics installs a dispatch metrics recorder.
func WithMetrics(metrics MetricsRecorder) StoreOption {
	return func(s *Store) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithReducer replaces the default reducer, primarily to inject a
// deterministic clock and id generator in tests.
func WithReducer(r *Reducer) StoreOption {
	return func(s *Store) {
		if r != nil {
			s.reducer = r
		}
	}
}

// NewStore builds the container around a persister. Stored state is loaded
// once and merged over the hard-coded defaults; an absent or malformed
// payload degrades to the defaults and never fails startup. A nil persister
// yields a purely in-memory store.
func NewStore(persister Persister, opts ...StoreOption) *Store {
	s := &Store{
		state:     domain.DefaultState(),
		reducer:   NewReducer(),
		persister: persister,
		logger:    noopLogger{},
		metrics:   noopMetrics{},
		listeners: make(map[int]func(AppState)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if persister != nil {
		ps, found, err := persister.Load()
		switch {
		case err != nil:
			s.logger.Error("load persisted state failed, starting from defaults", "error", err)
		case found:
			s.state = domain.StateFromPersisted(ps)
		}
	}
	return s
}

// State returns the current snapshot. Snapshots share containers with
// committed state and must be treated as read-only.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies one action. It runs to completion: the in-memory
// transition always commits, subscribers always hear about a change, and a
// persistence failure is logged without rolling anything back.
func (s *Store) Dispatch(action Action) {
	start := time.Now()

	s.mu.Lock()
	prev := s.state
	next := s.reducer.Apply(prev, action)
	changed := !sameSnapshot(prev, next)
	s.state = next
	s.mu.Unlock()

	saved := true
	if changed {
		s.notify(next)
		saved = s.save(next)
	}
	s.metrics.Observe(string(action.ActionType()), saved, time.Since(start))
}

// Subscribe registers a listener invoked with every new snapshot. The
// returned function removes the listener; calling it more than once is safe.
func (s *Store) Subscribe(fn func(AppState)) (unsubscribe func()) {
	s.listenerMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

// Close releases the persister.
func (s *Store) Close() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Close()
}

func (s *Store) notify(state AppState) {
	s.listenerMu.Lock()
	fns := make([]func(AppState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenerMu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

func (s *Store) save(state AppState) bool {
	if s.persister == nil {
		return true
	}
	if err := s.persister.Save(state.Persisted()); err != nil {
		s.logger.Error("persist state failed", "error", err)
		return false
	}
	return true
}

// sameSnapshot reports whether the reducer returned its input untouched
// (unknown action, stale delete-document reference, and similar literal
// no-ops). Collections are compared by identity, not content, mirroring the
// reference-equality contract consumers rely on.
func sameSnapshot(a, b AppState) bool {
	return a.IsAuthenticated == b.IsAuthenticated &&
		a.IsAuthLoading == b.IsAuthLoading &&
		a.User == b.User &&
		a.Settings == b.Settings &&
		a.WhatsAppTemplates == b.WhatsAppTemplates &&
		sliceIdentical(a.Patients, b.Patients) &&
		sliceIdentical(a.Appointments, b.Appointments) &&
		sliceIdentical(a.Transactions, b.Transactions) &&
		sliceIdentical(a.Shortcuts, b.Shortcuts)
}

func sliceIdentical[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
