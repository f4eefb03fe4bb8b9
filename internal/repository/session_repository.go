package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/celebration-service/internal/domain"
)

// ErrSessionNotFound is returned when a session is missing or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores login sessions.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	// DeleteByPrincipal revokes every session opened by principalID.
	DeleteByPrincipal(ctx context.Context, principalID string) error
}

type sessionRepository struct {
	client      *redis.Client
	prefix      string
	indexPrefix string
}

// NewSessionRepository creates a Redis-backed session repository. Keys expire
// together with the session. A per-principal set indexes the session ids so
// they can be revoked together.
func NewSessionRepository(client *redis.Client) SessionRepository {
	return &sessionRepository{
		client:      client,
		prefix:      "celebration:session:",
		indexPrefix: "celebration:principal-sessions:",
	}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, r.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session id required")
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.prefix+session.ID, payload, ttl)
	if session.Principal != nil {
		index := r.indexPrefix + session.Principal.ID
		pipe.SAdd(ctx, index, session.ID)
		pipe.Expire(ctx, index, ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.prefix+id).Err()
}

func (r *sessionRepository) DeleteByPrincipal(ctx context.Context, principalID string) error {
	index := r.indexPrefix + principalID
	ids, err := r.client.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, r.prefix+id)
	}
	keys = append(keys, index)
	return r.client.Del(ctx, keys...).Err()
}
