package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/moharam-dev/hotelbook/config"
	"github.com/moharam-dev/hotelbook/internal/domain"
)

// RedisStore keeps the session in Redis so several front-desk terminals can
// share one signed-in operator. Keys are scoped per terminal id.
type RedisStore struct {
	client   *redis.Client
	terminal string
}

func NewRedisStore(cfg config.RedisConfig, terminal string) *RedisStore {
	return &RedisStore{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		terminal: terminal,
	}
}

func (s *RedisStore) Token() (string, error) {
	token, err := s.client.Get(context.Background(), s.key("token")).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (s *RedisStore) User() (*domain.User, error) {
	data, err := s.client.Get(context.Background(), s.key("user")).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *RedisStore) Set(token string, user *domain.User) error {
	ctx := context.Background()
	if err := s.client.Set(ctx, s.key("token"), token, 0).Err(); err != nil {
		return err
	}
	if user == nil {
		return s.client.Del(ctx, s.key("user")).Err()
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key("user"), payload, 0).Err()
}

func (s *RedisStore) SetRefreshToken(token string) error {
	return s.client.Set(context.Background(), s.key("refresh"), token, 0).Err()
}

func (s *RedisStore) Clear() error {
	return s.client.Del(context.Background(), s.key("token"), s.key("refresh"), s.key("user")).Err()
}

func (s *RedisStore) key(kind string) string {
	return fmt.Sprintf("session:%s:%s", s.terminal, kind)
}

var _ Store = (*RedisStore)(nil)
