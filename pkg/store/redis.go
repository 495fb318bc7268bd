package store

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
)

// RedisStore keeps each key as a Redis string under a prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zerolog.Logger
}

// NewRedisStore connects to the Redis server at rawURL (redis:// or rediss://).
func NewRedisStore(ctx context.Context, rawURL string, opts ...Option) (*RedisStore, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	redisOpts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.NewConfigError("store", "invalid redis url", err)
	}
	client := redis.NewClient(redisOpts)

	pingCtx, cancel := context.WithTimeout(ctx, constants.StoreConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapResource("open", "store", "redis", err)
	}

	s := newRedisStore(client, cfg)
	s.logger.Info().Str("addr", redisOpts.Addr).Str("prefix", cfg.keyPrefix).Msg("Connected to redis store")
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client. The store owns the client and closes it.
func NewRedisStoreFromClient(client *redis.Client, opts ...Option) (*RedisStore, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return newRedisStore(client, cfg), nil
}

func newRedisStore(client *redis.Client, cfg *config) *RedisStore {
	return &RedisStore{client: client, prefix: cfg.keyPrefix, logger: cfg.logger}
}

// Key returns the Redis key holding key.
func (s *RedisStore) Key(key string) string {
	return s.prefix + key
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.NewNotFoundError("collection", key)
		}
		return nil, errors.WrapIO("read", s.Key(key), err)
	}
	return data, nil
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.Key(key), data, 0).Err(); err != nil {
		return errors.WrapIO("write", s.Key(key), err)
	}
	return nil
}

// Close implements Store.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
