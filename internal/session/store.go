package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/redis"
)

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type redisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// RedisStore keeps sessions as JSON under km:session:<id>.
type RedisStore struct {
	client redisClient
}

func NewRedisStore(client redisClient) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required for session store")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *Session, ttl time.Duration) error {
	if sess == nil || strings.TrimSpace(sess.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeInternal, "session id is required")
	}
	if ttl <= 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session")
	}
	if err := s.client.Set(ctx, s.client.SessionKey(sess.ID), string(payload), ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save session")
	}
	return nil
}

// Load returns ErrNoSession when the id is unknown or its entry is unreadable.
func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNoSession
	}
	raw, err := s.client.Get(ctx, s.client.SessionKey(id))
	if err != nil {
		if redis.IsMiss(err) {
			return nil, ErrNoSession
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.client.SessionKey(id)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete session")
	}
	return nil
}
