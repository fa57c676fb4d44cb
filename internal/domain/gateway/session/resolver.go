package session

import (
	"context"
	"net/http"
	"strings"
	"todo-api/internal/domain/model"
)

const (
	UserIDHeader  = "X-User-ID"
	GuestIDHeader = "X-Guest-ID"
)

// Resolver maps request headers to the authenticated identity, or nil when there is none
type Resolver interface {
	Resolve(ctx context.Context, headers http.Header) (*model.Identity, error)
}

// HeaderResolver trusts the X-User-ID header set by a fronting proxy or in development
type HeaderResolver struct{}

var _ Resolver = HeaderResolver{}

func NewHeaderResolver() HeaderResolver {
	return HeaderResolver{}
}

func (HeaderResolver) Resolve(_ context.Context, headers http.Header) (*model.Identity, error) {
	userID := strings.TrimSpace(headers.Get(UserIDHeader))
	if userID == "" {
		return nil, nil
	}
	return model.NewUserIdentity(userID), nil
}

// GuestResolver falls back to the client-generated X-Guest-ID when the wrapped resolver finds no user
type GuestResolver struct {
	next Resolver
}

var _ Resolver = GuestResolver{}

func NewGuestResolver(next Resolver) GuestResolver {
	return GuestResolver{next: next}
}

func (resolver GuestResolver) Resolve(ctx context.Context, headers http.Header) (*model.Identity, error) {
	identity, err := resolver.next.Resolve(ctx, headers)
	if err != nil || identity != nil {
		return identity, err
	}

	guestID := strings.TrimSpace(headers.Get(GuestIDHeader))
	if guestID == "" {
		return nil, nil
	}
	return model.NewGuestIdentity(guestID), nil
}

func bearerToken(headers http.Header) string {
	authorization := strings.TrimSpace(headers.Get("Authorization"))
	scheme, token, found := strings.Cut(authorization, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
