package repository

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"LithiumHedge/internal/domain/models"
	"LithiumHedge/pkg/cache"
)

// RedisCodeStore keeps single-use password reset codes with natural TTL
// expiry. Redemption deletes the key so a code can never be replayed.
type RedisCodeStore struct {
	cache cache.Service
}

// NewRedisCodeStore creates the code store on any cache backend.
func NewRedisCodeStore(c cache.Service) *RedisCodeStore {
	return &RedisCodeStore{cache: c}
}

func codeKey(email string) string {
	return cache.GenerateKey("reset_code", email)
}

// Put stores a code for an email, replacing any outstanding one.
func (s *RedisCodeStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.cache.Set(ctx, codeKey(email), code, ttl); err != nil {
		return fmt.Errorf("%w: store reset code: %v", models.ErrPersistence, err)
	}
	return nil
}

// Redeem checks the code and consumes it on match.
func (s *RedisCodeStore) Redeem(ctx context.Context, email, code string) (bool, error) {
	var stored string
	err := s.cache.Get(ctx, codeKey(email), &stored)
	if errors.Is(err, cache.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: read reset code: %v", models.ErrPersistence, err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	if err := s.cache.Delete(ctx, codeKey(email)); err != nil {
		return false, fmt.Errorf("%w: consume reset code: %v", models.ErrPersistence, err)
	}
	return true, nil
}

// RedisSessionStore keeps bearer-token sessions.
type RedisSessionStore struct {
	cache cache.Service
}

// NewRedisSessionStore creates the session store on any cache backend.
func NewRedisSessionStore(c cache.Service) *RedisSessionStore {
	return &RedisSessionStore{cache: c}
}

func sessionKey(token string) string {
	return cache.GenerateKey("session", token)
}

// Put stores a session under its token.
func (s *RedisSessionStore) Put(ctx context.Context, sess models.Session, ttl time.Duration) error {
	if err := s.cache.Set(ctx, sessionKey(sess.Token), sess, ttl); err != nil {
		return fmt.Errorf("%w: store session: %v", models.ErrPersistence, err)
	}
	return nil
}

// Get resolves a token to its session, or models.ErrUnauthorized.
func (s *RedisSessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	var sess models.Session
	err := s.cache.Get(ctx, sessionKey(token), &sess)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read session: %v", models.ErrPersistence, err)
	}
	return &sess, nil
}

// Drop removes a session (logout).
func (s *RedisSessionStore) Drop(ctx context.Context, token string) error {
	if err := s.cache.Delete(ctx, sessionKey(token)); err != nil {
		return fmt.Errorf("%w: drop session: %v", models.ErrPersistence, err)
	}
	return nil
}
