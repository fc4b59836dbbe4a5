package selection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/redis"
)

// Store persists the working set of each session.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Set, error)
	Save(ctx context.Context, sessionID string, set *Set) error
	Delete(ctx context.Context, sessionID string) error
}

type redisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SelectionKey(sessionID string) string
}

// RedisStore keeps each session's set as JSON under km:selection:<session>.
type RedisStore struct {
	client redisClient
	ttl    time.Duration
}

// NewRedisStore builds a store whose entries live as long as the session.
func NewRedisStore(client redisClient, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required for selection store")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Load returns the stored set, or an empty one when nothing (or nothing readable) is stored.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Set, error) {
	key, err := s.key(sessionID)
	if err != nil {
		return nil, err
	}
	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsMiss(err) {
			return NewSet(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load selection")
	}
	set := NewSet()
	if err := json.Unmarshal([]byte(raw), set); err != nil {
		return NewSet(), nil
	}
	return set, nil
}

// Save writes the set; an empty set removes the entry.
func (s *RedisStore) Save(ctx context.Context, sessionID string, set *Set) error {
	key, err := s.key(sessionID)
	if err != nil {
		return err
	}
	if set == nil || set.IsEmpty() {
		return s.Delete(ctx, sessionID)
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode selection")
	}
	if err := s.client.Set(ctx, key, string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save selection")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	key, err := s.key(sessionID)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("del %s: %w", key, err), "clear selection")
	}
	return nil
}

func (s *RedisStore) key(sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session")
	}
	return s.client.SelectionKey(sessionID), nil
}
