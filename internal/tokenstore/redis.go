package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

const (
	redisTokenKeyPrefix = "cero:token:"
	redisIdentitySetKey = "cero:identities"
)

// RedisStore implements Store on Redis. Tokens are stored as JSON under a
// per-user key and the set of known identities is tracked separately so the
// fallback lookup does not need a SCAN.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*oauth2.Token, error) {
	raw, err := s.client.Get(ctx, redisTokenKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: get token %q: %w", userID, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(raw, &token); err != nil {
		return nil, fmt.Errorf("tokenstore: decode token %q: %w", userID, err)
	}
	return &token, nil
}

func (s *RedisStore) Set(ctx context.Context, userID string, token *oauth2.Token) error {
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("tokenstore: encode token %q: %w", userID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisTokenKeyPrefix+userID, raw, 0)
	pipe.SAdd(ctx, redisIdentitySetKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("tokenstore: store token %q: %w", userID, err)
	}
	return nil
}

func (s *RedisStore) Identities(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, redisIdentitySetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("tokenstore: list identities: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
