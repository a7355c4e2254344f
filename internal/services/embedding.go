package services

import (
	"context"

	redisclient "github.com/eduforge/lms-backend/internal/clients/redis"
	"github.com/eduforge/lms-backend/internal/pkg/logger"
	"github.com/eduforge/lms-backend/internal/platform/openai"
)

// CachedEmbedder fronts the embedding service with the optional Redis
// cache. Cache misses and cache failures both fall through to the live
// call; the cache can be nil.
type CachedEmbedder struct {
	log    *logger.Logger
	client openai.Client
	cache  *redisclient.EmbedCache
	model  string
}

func NewCachedEmbedder(log *logger.Logger, client openai.Client, cache *redisclient.EmbedCache, model string) *CachedEmbedder {
	return &CachedEmbedder{
		log:    log.With("service", "CachedEmbedder"),
		client: client,
		cache:  cache,
		model:  model,
	}
}

func (c *CachedEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(ctx, c.model, text); ok {
		return vec, nil
	}
	vec, err := c.client.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Put(ctx, c.model, text, vec)
	return vec, nil
}
