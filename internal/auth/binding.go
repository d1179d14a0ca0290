package auth

import (
	"dentsync/internal/core"
	"dentsync/pkg/domain"
)

// Bind subscribes to the provider and translates every notification into a
// session action on the store: a user becomes SetUser, nil becomes Logout.
// The returned function tears the binding down.
func Bind(store *core.Store, provider Provider) (unbind func()) {
	return provider.Subscribe(func(user *domain.User) {
		if user != nil {
			store.Dispatch(domain.SetUser{User: *user})
			return
		}
		store.Dispatch(domain.Logout{})
	})
}
