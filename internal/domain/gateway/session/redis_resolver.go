package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"todo-api/internal/domain/model"
	"todo-api/pkg/redis"
)

const sessionCache = "session"

// SessionStore reads session values written by the external auth service
type SessionStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

// RedisResolver looks the bearer token up under session::<token> and reads the user id stored there
type RedisResolver struct {
	store SessionStore
}

var _ Resolver = (*RedisResolver)(nil)

func NewRedisResolver(client *redis.Client) *RedisResolver {
	return &RedisResolver{store: client}
}

func (resolver *RedisResolver) Resolve(ctx context.Context, headers http.Header) (*model.Identity, error) {
	token := bearerToken(headers)
	if token == "" {
		return nil, nil
	}

	userID, found, err := resolver.store.Get(ctx, redis.BuildCacheKey(sessionCache, token))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if !found || strings.TrimSpace(userID) == "" {
		return nil, nil
	}
	return model.NewUserIdentity(strings.TrimSpace(userID)), nil
}
