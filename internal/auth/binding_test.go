package auth

import (
	"context"
	"testing"

	"dentsync/internal/core"
	"dentsync/pkg/domain"
)

func TestBindTranslatesProviderNotifications(t *testing.T) {
	store := core.NewStore(nil)
	provider := NewLocalProvider(&domain.User{DisplayName: "Dr. Rao", Email: "rao@example.com"})
	unbind := Bind(store, provider)
	defer unbind()

	if !store.State().IsAuthLoading {
		t.Fatalf("state must stay loading until the first notification")
	}

	provider.AnnounceInitial()
	state := store.State()
	if state.IsAuthLoading || state.IsAuthenticated || state.User != nil {
		t.Fatalf("initial nil session must map to logout: %+v", state)
	}

	if _, err := provider.SignIn(context.Background()); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	state = store.State()
	if !state.IsAuthenticated || state.User == nil || state.User.DisplayName != "Dr. Rao" {
		t.Fatalf("sign in must map to set_user: %+v", state)
	}

	if err := provider.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	state = store.State()
	if state.IsAuthenticated || state.User != nil {
		t.Fatalf("sign out must map to logout: %+v", state)
	}
}

func TestLocalProviderReplaysSessionToLateSubscribers(t *testing.T) {
	provider := NewLocalProvider(&domain.User{DisplayName: "Dr. Rao"})
	if _, err := provider.SignIn(context.Background()); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	var got *domain.User
	unsubscribe := provider.Subscribe(func(u *domain.User) { got = u })
	defer unsubscribe()

	if got == nil || got.DisplayName != "Dr. Rao" {
		t.Fatalf("late subscriber must receive the current session, got %+v", got)
	}
}

func TestLocalProviderUnsubscribeStopsDelivery(t *testing.T) {
	provider := NewLocalProvider(&domain.User{DisplayName: "Dr. Rao"})

	count := 0
	unsubscribe := provider.Subscribe(func(*domain.User) { count++ })
	if _, err := provider.SignIn(context.Background()); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	unsubscribe()
	_ = provider.SignOut(context.Background())

	if count != 1 {
		t.Fatalf("expected one delivery before unsubscribe, got %d", count)
	}
}

func TestLocalProviderSignInWithoutIdentityFails(t *testing.T) {
	provider := NewLocalProvider(nil)
	if _, err := provider.SignIn(context.Background()); err != ErrNoIdentity {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
}
