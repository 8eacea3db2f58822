package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/swiftcart/storefront-state/pkg/config"
	"github.com/swiftcart/storefront-state/pkg/logger"
)

const (
	keyNamespace = "sc"
	statePrefix  = "state"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Redis persists entities as JSON strings under namespaced keys.
type Redis struct {
	store cmdable
	raw   *redis.Client
	logg  *logger.Logger
}

// NewRedis bootstraps a Redis-backed adapter and verifies connectivity.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Redis, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{store: raw, raw: raw, logg: logg}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (r *Redis) Save(ctx context.Context, key string, value any) error {
	if r.store == nil {
		return errors.New("redis adapter not initialized")
	}
	raw, err := encode(value)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.stateKey(key), raw, 0).Err()
}

func (r *Redis) Load(ctx context.Context, key string, dest any) (bool, error) {
	if r.store == nil {
		return false, errors.New("redis adapter not initialized")
	}
	raw, err := r.store.Get(ctx, r.stateKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if !decode(raw, dest) {
		if r.logg != nil {
			r.logg.Warn(r.logg.WithEntity(ctx, key), "storage.payload_unparseable")
		}
		return false, nil
	}
	return true, nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if r.store == nil {
		return errors.New("redis adapter not initialized")
	}
	return r.store.Del(ctx, r.stateKey(key)).Err()
}

// Ping verifies the connection.
func (r *Redis) Ping(ctx context.Context) error {
	if r.store == nil {
		return errors.New("redis adapter not initialized")
	}
	return r.store.Ping(ctx).Err()
}

// Close shuts down the underlying client if available.
func (r *Redis) Close() error {
	if r.raw == nil {
		return nil
	}
	return r.raw.Close()
}

func (r *Redis) stateKey(key string) string {
	return strings.Join([]string{keyNamespace, statePrefix, strings.TrimSpace(key)}, ":")
}
