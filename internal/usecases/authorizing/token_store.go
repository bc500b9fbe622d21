package authorizing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/cache"
	"github.com/vfg2006/all-ad-api/infrastructure/repository"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

//go:generate mockgen -source=token_store.go -destination=mocks/token_store_mock.go -package=mocks

// TokenStore guarda o material de token de cada escopo
// (plataforma, time, conta). A escrita durável precisa ter sucesso; o cache
// é melhor esforço.
type TokenStore interface {
	Get(ctx context.Context, key domain.TokenScopeKey) (*domain.TokenRecord, error)
	Save(ctx context.Context, key domain.TokenScopeKey, rec *domain.TokenRecord) error
	Delete(ctx context.Context, key domain.TokenScopeKey) error
}

// TTL do cache para tokens sem expiração conhecida
const permanentTokenTTL = 24 * time.Hour

type layeredTokenStore struct {
	cache          cache.Cache
	credentialRepo repository.CredentialRepository
}

func NewTokenStore(c cache.Cache, credentialRepo repository.CredentialRepository) TokenStore {
	return &layeredTokenStore{
		cache:          c,
		credentialRepo: credentialRepo,
	}
}

// Get tenta o cache primeiro e cai no banco quando necessário. Cache
// indisponível nunca derruba a leitura.
func (s *layeredTokenStore) Get(ctx context.Context, key domain.TokenScopeKey) (*domain.TokenRecord, error) {
	cached, err := s.cache.Get(ctx, key.CacheKey())
	if err != nil {
		logrus.WithError(err).WithField("platform", key.Platform).
			Warn("Cache indisponível na leitura de tokens, usando o banco")
	} else if cached != "" {
		rec := &domain.TokenRecord{}
		if err := json.Unmarshal([]byte(cached), rec); err == nil {
			return rec, nil
		}
		logrus.WithField("platform", key.Platform).
			Warn("Registro de token corrompido no cache, usando o banco")
	}

	rec, err := s.credentialRepo.GetTokenRecord(key.TeamID, key.Platform, key.AccountID)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler tokens do banco: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	s.backfillCache(ctx, key, rec)

	return rec, nil
}

// Save grava primeiro no banco. Só depois de confirmada a escrita durável o
// cache é atualizado; falha no cache vira apenas um warning.
func (s *layeredTokenStore) Save(ctx context.Context, key domain.TokenScopeKey, rec *domain.TokenRecord) error {
	if err := s.credentialRepo.SaveTokenRecord(key.TeamID, key.Platform, key.AccountID, rec); err != nil {
		return fmt.Errorf("erro ao persistir tokens: %w", err)
	}

	s.backfillCache(ctx, key, rec)

	return nil
}

func (s *layeredTokenStore) Delete(ctx context.Context, key domain.TokenScopeKey) error {
	if err := s.cache.Delete(ctx, key.CacheKey()); err != nil {
		logrus.WithError(err).WithField("platform", key.Platform).
			Warn("Falha ao remover tokens do cache")
	}
	return nil
}

func (s *layeredTokenStore) backfillCache(ctx context.Context, key domain.TokenScopeKey, rec *domain.TokenRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}

	ttl := permanentTokenTTL
	if !rec.ExpiresAt.IsZero() {
		ttl = time.Until(rec.ExpiresAt)
		if ttl <= 0 {
			return
		}
	}

	if err := s.cache.Set(ctx, key.CacheKey(), string(data), ttl); err != nil {
		logrus.WithError(err).WithField("platform", key.Platform).
			Warn("Falha ao gravar tokens no cache")
	}
}
