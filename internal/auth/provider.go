// Package auth binds an external identity provider to the state container.
// The provider pushes the current user (or nil once signed out) and the
// binding folds those notifications into session actions.
package auth

import (
	"context"
	"errors"
	"sync"

	"dentsync/pkg/domain"
)

// Provider is the minimal surface of an external auth service. Subscribe
// delivers the current session user immediately if one is known, then every
// subsequent change. A nil user means signed out.
type Provider interface {
	Subscribe(fn func(*domain.User)) (unsubscribe func())
	SignIn(ctx context.Context) (*domain.User, error)
	SignOut(ctx context.Context) error
}

// ErrNoIdentity is returned by LocalProvider.SignIn when no identity was
// configured.
var ErrNoIdentity = errors.New("auth: no identity configured")

// LocalProvider is an in-process Provider for single-machine installs and
// tests. It holds one configured identity and replays the current session
// state to new subscribers, mirroring the behaviour of hosted providers
// that emit an initial auth-state event.
type LocalProvider struct {
	mu        sync.Mutex
	identity  *domain.User
	current   *domain.User
	announced bool
	nextID    int
	listeners map[int]func(*domain.User)
}

// NewLocalProvider returns a provider whose SignIn yields the given identity.
func NewLocalProvider(identity *domain.User) *LocalProvider {
	return &LocalProvider{identity: identity, listeners: make(map[int]func(*domain.User))}
}

// Subscribe registers fn and, once the session state is known, immediately
// delivers the current user.
func (p *LocalProvider) Subscribe(fn func(*domain.User)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	announced, current := p.announced, p.current
	p.mu.Unlock()

	if announced {
		fn(cloneUser(current))
	}
	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// SignIn establishes the configured identity as the current session.
func (p *LocalProvider) SignIn(_ context.Context) (*domain.User, error) {
	p.mu.Lock()
	if p.identity == nil {
		p.mu.Unlock()
		return nil, ErrNoIdentity
	}
	user := cloneUser(p.identity)
	p.current = user
	p.mu.Unlock()

	p.notify(user)
	return cloneUser(user), nil
}

// SignOut clears the current session.
func (p *LocalProvider) SignOut(_ context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	p.notify(nil)
	return nil
}

// AnnounceInitial pushes the current (possibly empty) session state to all
// subscribers. Callers invoke it once at startup so the container can leave
// its loading state even when nobody is signed in.
func (p *LocalProvider) AnnounceInitial() {
	p.mu.Lock()
	current := p.current
	p.mu.Unlock()
	p.notify(current)
}

func (p *LocalProvider) notify(user *domain.User) {
	p.mu.Lock()
	p.announced = true
	fns := make([]func(*domain.User), 0, len(p.listeners))
	for _, fn := range p.listeners {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(cloneUser(user))
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
