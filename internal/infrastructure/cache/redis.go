package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
)

const (
	cafeKeyPrefix  = "cafe:"
	cafeIndexKey   = "cafes:index"
	cafeTTL        = 5 * time.Minute
	defaultTimeout = 5 * time.Second
)

// Config captures the settings for establishing a Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect initialises a Redis client and validates connectivity with a
// ping. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Redis is the Redis-backed café cache, for deployments where several
// kiosk instances share one backend. Entries expire after cafeTTL; a set
// of cached ids supports InvalidateAll. All operations are best-effort.
type Redis struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedis(client *redis.Client, logger zerolog.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

var _ ports.CafeCache = (*Redis)(nil)

func (r *Redis) Get(ctx context.Context, id string) (*domain.Cafe, bool) {
	data, err := r.client.Get(ctx, cafeKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn().Err(err).Str("cafe_id", id).Msg("cache get failed")
		}
		return nil, false
	}
	var cafe domain.Cafe
	if err := json.Unmarshal(data, &cafe); err != nil {
		r.logger.Warn().Err(err).Str("cafe_id", id).Msg("cache entry undecodable")
		return nil, false
	}
	return &cafe, true
}

func (r *Redis) Put(ctx context.Context, cafe domain.Cafe) {
	if cafe.ID == "" {
		return
	}
	data, err := json.Marshal(cafe)
	if err != nil {
		r.logger.Warn().Err(err).Str("cafe_id", cafe.ID).Msg("cache encode failed")
		return
	}
	pipe := r.client.Pipeline()
	pipe.Set(ctx, cafeKeyPrefix+cafe.ID, data, cafeTTL)
	pipe.SAdd(ctx, cafeIndexKey, cafe.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn().Err(err).Str("cafe_id", cafe.ID).Msg("cache put failed")
	}
}

func (r *Redis) PutAll(ctx context.Context, cafes []domain.Cafe) {
	for _, c := range cafes {
		r.Put(ctx, c)
	}
}

func (r *Redis) Invalidate(ctx context.Context, id string) {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, cafeKeyPrefix+id)
	pipe.SRem(ctx, cafeIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn().Err(err).Str("cafe_id", id).Msg("cache invalidate failed")
	}
}

func (r *Redis) InvalidateAll(ctx context.Context) {
	ids, err := r.client.SMembers(ctx, cafeIndexKey).Result()
	if err != nil {
		r.logger.Warn().Err(err).Msg("cache index read failed")
		return
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, cafeKeyPrefix+id)
	}
	keys = append(keys, cafeIndexKey)
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warn().Err(err).Msg("cache flush failed")
	}
}
