package session

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

type fakeSessionStore map[string]string

func (f fakeSessionStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "session::broken" {
		return "", false, errors.New("connection refused")
	}
	value, ok := f[key]
	return value, ok, nil
}

func headers(pairs ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

func TestRedisResolver(t *testing.T) {
	resolver := &RedisResolver{store: fakeSessionStore{"session::tok-1": "user-1"}}
	ctx := context.Background()

	identity, err := resolver.Resolve(ctx, headers("Authorization", "Bearer tok-1"))
	if err != nil || identity == nil || identity.OwnerID != "user-1" || identity.Guest {
		t.Fatalf("Resolve(valid) = %+v, %v", identity, err)
	}

	for _, h := range []http.Header{
		headers(),
		headers("Authorization", "Bearer unknown"),
		headers("Authorization", "Basic tok-1"),
	} {
		identity, err := resolver.Resolve(ctx, h)
		if err != nil || identity != nil {
			t.Fatalf("Resolve(%v) = %+v, %v", h, identity, err)
		}
	}

	if _, err := resolver.Resolve(ctx, headers("Authorization", "Bearer broken")); err == nil {
		t.Fatal("expected store error to surface")
	}
}

func TestGuestResolverPrefersUser(t *testing.T) {
	resolver := NewGuestResolver(NewHeaderResolver())
	ctx := context.Background()

	identity, _ := resolver.Resolve(ctx, headers(UserIDHeader, "user-1", GuestIDHeader, "guest-1"))
	if identity == nil || identity.OwnerID != "user-1" || identity.Guest {
		t.Fatalf("expected user identity, got %+v", identity)
	}

	identity, _ = resolver.Resolve(ctx, headers(GuestIDHeader, "guest-1"))
	if identity == nil || identity.OwnerID != "guest-1" || !identity.Guest {
		t.Fatalf("expected guest identity, got %+v", identity)
	}

	identity, _ = resolver.Resolve(ctx, headers())
	if identity != nil {
		t.Fatalf("expected no identity, got %+v", identity)
	}
}
