package authorizing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	cachemocks "github.com/vfg2006/all-ad-api/infrastructure/cache/mocks"
	repomocks "github.com/vfg2006/all-ad-api/infrastructure/repository/mocks"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var testKey = domain.TokenScopeKey{
	Platform:  domain.PlatformGoogle,
	TeamID:    "team-1",
	AccountID: "acc-1",
}

func TestLayeredTokenStore_Get(t *testing.T) {
	ctx := context.Background()

	rec := &domain.TokenRecord{
		AccessToken:  "cached-token",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	recJSON, _ := json.Marshal(rec)

	t.Run("Cache hit não toca o banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cachemocks.NewMockCache(ctrl)
		mockRepo := repomocks.NewMockCredentialRepository(ctrl)

		mockCache.EXPECT().Get(ctx, testKey.CacheKey()).Return(string(recJSON), nil)

		store := NewTokenStore(mockCache, mockRepo)

		result, err := store.Get(ctx, testKey)
		assert.NoError(t, err)
		assert.Equal(t, "cached-token", result.AccessToken)
	})

	t.Run("Cache miss cai no banco e repovoa o cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cachemocks.NewMockCache(ctrl)
		mockRepo := repomocks.NewMockCredentialRepository(ctrl)

		mockCache.EXPECT().Get(ctx, testKey.CacheKey()).Return("", nil)
		mockRepo.EXPECT().GetTokenRecord("team-1", domain.PlatformGoogle, "acc-1").Return(rec, nil)
		mockCache.EXPECT().Set(ctx, testKey.CacheKey(), gomock.Any(), gomock.Any()).Return(nil)

		store := NewTokenStore(mockCache, mockRepo)

		result, err := store.Get(ctx, testKey)
		assert.NoError(t, err)
		assert.Equal(t, "cached-token", result.AccessToken)
	})

	t.Run("Cache indisponível não derruba a leitura", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cachemocks.NewMockCache(ctrl)
		mockRepo := repomocks.NewMockCredentialRepository(ctrl)

		mockCache.EXPECT().Get(ctx, testKey.CacheKey()).Return("", errors.New("redis fora do ar"))
		mockRepo.EXPECT().GetTokenRecord("team-1", domain.PlatformGoogle, "acc-1").Return(rec, nil)
		mockCache.EXPECT().Set(ctx, testKey.CacheKey(), gomock.Any(), gomock.Any()).Return(errors.New("redis fora do ar"))

		store := NewTokenStore(mockCache, mockRepo)

		result, err := store.Get(ctx, testKey)
		assert.NoError(t, err)
		assert.Equal(t, "cached-token", result.AccessToken)
	})

	t.Run("Escopo sem tokens retorna nil sem erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cachemocks.NewMockCache(ctrl)
		mockRepo := repomocks.NewMockCredentialRepository(ctrl)

		mockCache.EXPECT().Get(ctx, testKey.CacheKey()).Return("", nil)
		mockRepo.EXPECT().GetTokenRecord("team-1", domain.PlatformGoogle, "acc-1").Return(nil, nil)

		store := NewTokenStore(mockCache, mockRepo)

		result, err := store.Get(ctx, testKey)
		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestLayeredTokenStore_Save(t *testing.T) {
	ctx := context.Background()

	rec := &domain.TokenRecord{
		AccessToken: "new-token",
		ExpiresAt:   time.Now().Add(time.Hour),
	}

	t.Run("Grava no banco antes do cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cachemocks.NewMockCache(ctrl)
		mockRepo := repomocks.NewMockCredentialRepository(ctrl)

		gomock.InOrder(
			mockRepo.EXPECT().SaveTokenRecord("team-1", domain.PlatformGoogle, "acc-1", rec).Return(nil),
			mockCache.EXPECT().Set(ctx, testKey.CacheKey(), gomock.Any(), gomock.Any()).Return(nil),
		)

		store := NewTokenStore(mockCache, mockRepo)

		assert.NoError(t, store.Save(ctx, testKey, rec))
	})

	t.Run("Falha no banco aborta sem tocar o cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cachemocks.NewMockCache(ctrl)
		mockRepo := repomocks.NewMockCredentialRepository(ctrl)

		mockRepo.EXPECT().SaveTokenRecord("team-1", domain.PlatformGoogle, "acc-1", rec).
			Return(errors.New("conexão recusada"))

		store := NewTokenStore(mockCache, mockRepo)

		assert.Error(t, store.Save(ctx, testKey, rec))
	})

	t.Run("Falha no cache não invalida a escrita durável", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockCache := cachemocks.NewMockCache(ctrl)
		mockRepo := repomocks.NewMockCredentialRepository(ctrl)

		mockRepo.EXPECT().SaveTokenRecord("team-1", domain.PlatformGoogle, "acc-1", rec).Return(nil)
		mockCache.EXPECT().Set(ctx, testKey.CacheKey(), gomock.Any(), gomock.Any()).
			Return(errors.New("redis fora do ar"))

		store := NewTokenStore(mockCache, mockRepo)

		assert.NoError(t, store.Save(ctx, testKey, rec))
	})
}
