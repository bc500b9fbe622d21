package cache

import (
	"context"
	"time"
)

// NoopCache é o fallback quando o Redis está indisponível: todo Get é um
// miss e Set/Delete não fazem nada. O Token Store segue funcionando só com
// o armazenamento durável.
type NoopCache struct{}

func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (NoopCache) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (NoopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, key string) error {
	return nil
}
