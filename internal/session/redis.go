package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// redisStore implements Store using Redis
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// RedisConfig holds Redis session store configuration
type RedisConfig struct {
	URL string
	TTL time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(cfg RedisConfig, logger *slog.Logger) (Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	logger.Info("connected to Redis session store",
		slog.String("addr", opts.Addr),
	)

	return &redisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

func tokenKey(sessionID string) string {
	return "portal:session:" + sessionID + ":token"
}

func flashKey(sessionID string) string {
	return "portal:session:" + sessionID + ":flash"
}

func (s *redisStore) Token(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, tokenKey(sessionID)).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session token: %w", err)
	}
	return token, nil
}

func (s *redisStore) SetToken(ctx context.Context, sessionID, token string) error {
	if err := s.client.Set(ctx, tokenKey(sessionID), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, tokenKey(sessionID), flashKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *redisStore) SetFlash(ctx context.Context, sessionID string, flash Flash) error {
	data, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("failed to marshal flash: %w", err)
	}
	if err := s.client.Set(ctx, flashKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store flash: %w", err)
	}
	return nil
}

func (s *redisStore) PopFlash(ctx context.Context, sessionID string) (*Flash, error) {
	data, err := s.client.GetDel(ctx, flashKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pop flash: %w", err)
	}

	flash := &Flash{}
	if err := json.Unmarshal([]byte(data), flash); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flash: %w", err)
	}
	return flash, nil
}

func (s *redisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis health check failed: %w", err)
	}
	return nil
}

func (s *redisStore) Close() error {
	s.logger.Info("closing Redis connection")
	return s.client.Close()
}
