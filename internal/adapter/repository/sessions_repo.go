package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"resume-builder/pkg/apperror"
)

const sessionKeyPrefix = "session:"

// SessionsRepo tracks live auth sessions in redis, keyed by token id.
// Sign-out deletes the key, which revokes the token before its JWT expiry.
type SessionsRepo struct {
	client *redis.Client
}

func NewSessionsRepo(client *redis.Client) *SessionsRepo {
	return &SessionsRepo{client: client}
}

func (r *SessionsRepo) Create(ctx context.Context, jti string, userID uuid.UUID, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKeyPrefix+jti, userID.String(), ttl).Err(); err != nil {
		return apperror.NewUnavailable("session store write failed", err)
	}
	return nil
}

// Exists reports whether the session is still live.
func (r *SessionsRepo) Exists(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, sessionKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewUnavailable("session store read failed", err)
	}
	return true, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, jti string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+jti).Err(); err != nil {
		return apperror.NewUnavailable("session store delete failed", err)
	}
	return nil
}
