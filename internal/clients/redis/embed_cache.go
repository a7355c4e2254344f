package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/eduforge/lms-backend/internal/pkg/logger"
)

// EmbedCache memoizes query embeddings so repeated generation requests for
// the same topic skip the embedding service round trip. Entirely optional:
// a nil cache is a no-op.
type EmbedCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewEmbedCache(log *logger.Logger, addr string) (*EmbedCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &EmbedCache{
		log: log.With("service", "EmbedCache"),
		rdb: rdb,
		ttl: 24 * time.Hour,
	}, nil
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return "embed:" + hex.EncodeToString(sum[:])
}

func (c *EmbedCache) Get(ctx context.Context, model, text string) ([]float32, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(model, text)).Bytes()
	if err != nil {
		return nil, false
	}
	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil || len(vec) == 0 {
		return nil, false
	}
	return vec, true
}

func (c *EmbedCache) Put(ctx context.Context, model, text string, vec []float32) {
	if c == nil || c.rdb == nil || len(vec) == 0 {
		return
	}
	raw, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(model, text), raw, c.ttl).Err(); err != nil {
		c.log.Warn("embed cache write failed (ignored)", "error", err)
	}
}

func (c *EmbedCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
