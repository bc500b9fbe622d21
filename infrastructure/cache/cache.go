package cache

import (
	"context"
	"time"
)

//go:generate mockgen -source=cache.go -destination=mocks/cache_mock.go -package=mocks

// Cache é o contrato do cache rápido usado para material de token OAuth.
// Get retorna "" sem erro em caso de cache miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
