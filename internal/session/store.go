package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

var ErrNoSession = errors.New("no session")

const sessionKeyPrefix = "mysocialapp-session||"

// Store keeps login sessions in redis, keyed by token. Sessions are
// written once at login, read on every gated request, and deleted at
// logout; there is no TTL.
type Store struct {
	redisClient *redis.Client
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		redisClient: redisClient,
	}
}

func (s *Store) Set(ctx context.Context, token string, sess Session) error {
	sessionBytes, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Set(ctx, sessionKey, sessionBytes, 0).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := s.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	sess := &Session{}
	if err := json.Unmarshal([]byte(cmd.Val()), sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	return sess, nil
}

func (s *Store) Clear(ctx context.Context, token string) error {
	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
