package syncing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	integratormocks "github.com/vfg2006/all-ad-api/infrastructure/integrator/mocks"
	repomocks "github.com/vfg2006/all-ad-api/infrastructure/repository/mocks"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	authmocks "github.com/vfg2006/all-ad-api/internal/usecases/authorizing/mocks"
	"go.uber.org/mock/gomock"
)

type syncFixture struct {
	service        *Service
	registry       *integrator.Registry
	client         *integratormocks.MockPlatformClient
	authorizer     *authmocks.MockAuthorizer
	credentialRepo *repomocks.MockCredentialRepository
	campaignRepo   *repomocks.MockCampaignRepository
	metricRepo     *repomocks.MockCampaignMetricRepository
	syncLogRepo    *repomocks.MockSyncLogRepository
}

func newSyncFixture(ctrl *gomock.Controller, platform domain.AdPlatform) *syncFixture {
	f := &syncFixture{
		registry:       integrator.NewRegistry(),
		client:         integratormocks.NewMockPlatformClient(ctrl),
		authorizer:     authmocks.NewMockAuthorizer(ctrl),
		credentialRepo: repomocks.NewMockCredentialRepository(ctrl),
		campaignRepo:   repomocks.NewMockCampaignRepository(ctrl),
		metricRepo:     repomocks.NewMockCampaignMetricRepository(ctrl),
		syncLogRepo:    repomocks.NewMockSyncLogRepository(ctrl),
	}

	f.registry.Register(platform, func() integrator.PlatformClient {
		return f.client
	})

	f.service = NewService(
		f.registry,
		f.authorizer,
		f.credentialRepo,
		f.campaignRepo,
		f.metricRepo,
		f.syncLogRepo,
		config.CampaignSync{MetricsLookbackDays: 7},
	)

	return f
}

var testSession = Session{TeamID: "team-1", UserID: "user-1"}

func googleCredential() *domain.Credential {
	return &domain.Credential{
		ID:          "cred-1",
		TeamID:      "team-1",
		Platform:    domain.PlatformGoogle,
		AccountID:   "acc-1",
		AccountName: "Conta Google",
		Credentials: domain.CredentialBag{"login_customer_id": "111"},
		IsActive:    true,
	}
}

func syncedCampaign(externalID, name string) *domain.SyncedCampaign {
	return &domain.SyncedCampaign{
		Campaign: domain.Campaign{
			Platform:   domain.PlatformGoogle,
			ExternalID: externalID,
			Name:       name,
			Status:     domain.CampaignStatusActive,
			IsActive:   true,
		},
	}
}

func TestService_SyncPlatform(t *testing.T) {
	ctx := context.Background()
	key := domain.TokenScopeKey{Platform: domain.PlatformGoogle, TeamID: "team-1", AccountID: "acc-1"}

	t.Run("Sync completo grava campanhas, métricas e log de sucesso", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)
		cred := googleCredential()

		f.credentialRepo.EXPECT().GetActive("team-1", domain.PlatformGoogle).Return(cred, nil)
		f.authorizer.EXPECT().GetValidAccessToken(ctx, key).Return("valid-token", nil)

		f.client.EXPECT().SetCredentials(gomock.Any()).Do(func(bag domain.CredentialBag) {
			assert.Equal(t, "valid-token", bag["access_token"])
			assert.Equal(t, "111", bag["login_customer_id"])
		})

		f.client.EXPECT().FetchCampaigns(ctx, "acc-1").Return([]*domain.SyncedCampaign{
			syncedCampaign("901", "Brand"),
			syncedCampaign("902", "Retargeting"),
		}, nil)

		var upserted []*domain.Campaign
		f.campaignRepo.EXPECT().Upsert(gomock.Any()).Times(2).
			DoAndReturn(func(c *domain.Campaign) error {
				upserted = append(upserted, c)
				return nil
			})

		f.client.EXPECT().FetchCampaignMetrics(ctx, "acc-1", "901", gomock.Any(), gomock.Any()).
			Return([]*domain.CampaignMetric{
				{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Impressions: 100, Clicks: 5},
			}, nil)
		f.client.EXPECT().FetchCampaignMetrics(ctx, "acc-1", "902", gomock.Any(), gomock.Any()).
			Return(nil, nil)

		f.metricRepo.EXPECT().Upsert(gomock.Any()).
			DoAndReturn(func(m *domain.CampaignMetric) error {
				assert.Equal(t, "team-1", m.TeamID)
				assert.Equal(t, "901", m.CampaignID)
				assert.NotEmpty(t, m.ID)
				return nil
			})

		f.syncLogRepo.EXPECT().Insert(gomock.Any()).
			DoAndReturn(func(log *domain.SyncLog) error {
				assert.Equal(t, domain.SyncStatusSuccess, log.Status)
				assert.Equal(t, 2, log.RecordsSynced)
				// Sessão interativa sem tipo explícito cai no padrão
				assert.Equal(t, domain.SyncTypeCampaigns, log.SyncType)
				return nil
			})
		f.credentialRepo.EXPECT().RecordSyncResult("cred-1", gomock.Any(), nil).Return(nil)

		summary := f.service.SyncPlatform(ctx, testSession, domain.PlatformGoogle)

		assert.True(t, summary.Success)
		assert.Equal(t, 2, summary.Count)
		assert.Empty(t, summary.Error)

		// TeamID preenchido e IDs gerados no upsert
		for _, c := range upserted {
			assert.Equal(t, "team-1", c.TeamID)
			assert.NotEmpty(t, c.ID)
		}
	})

	t.Run("Credencial ausente retorna resumo de erro sem propagar exceção", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)

		f.credentialRepo.EXPECT().GetActive("team-1", domain.PlatformGoogle).Return(nil, nil)

		summary := f.service.SyncPlatform(ctx, testSession, domain.PlatformGoogle)

		assert.False(t, summary.Success)
		assert.Contains(t, summary.Error, "nenhuma credencial ativa")
	})

	t.Run("Erro de autenticação força refresh e repete o fetch uma vez", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)
		cred := googleCredential()

		f.credentialRepo.EXPECT().GetActive("team-1", domain.PlatformGoogle).Return(cred, nil)
		f.authorizer.EXPECT().GetValidAccessToken(ctx, key).Return("stale-token", nil)

		authErr := &integrator.APIError{Platform: domain.PlatformGoogle, StatusCode: 401, Body: "unauthorized"}

		gomock.InOrder(
			f.client.EXPECT().SetCredentials(gomock.Any()),
			f.client.EXPECT().FetchCampaigns(ctx, "acc-1").Return(nil, authErr),
			f.client.EXPECT().SetCredentials(gomock.Any()).Do(func(bag domain.CredentialBag) {
				assert.Equal(t, "fresh-token", bag["access_token"])
			}),
			f.client.EXPECT().FetchCampaigns(ctx, "acc-1").Return([]*domain.SyncedCampaign{
				syncedCampaign("901", "Brand"),
			}, nil),
		)

		f.authorizer.EXPECT().RefreshAccessToken(ctx, key).
			Return(&domain.TokenRecord{AccessToken: "fresh-token"}, nil)

		f.campaignRepo.EXPECT().Upsert(gomock.Any()).Return(nil)
		f.client.EXPECT().FetchCampaignMetrics(ctx, "acc-1", "901", gomock.Any(), gomock.Any()).Return(nil, nil)
		f.syncLogRepo.EXPECT().Insert(gomock.Any()).Return(nil)
		f.credentialRepo.EXPECT().RecordSyncResult("cred-1", gomock.Any(), nil).Return(nil)

		summary := f.service.SyncPlatform(ctx, testSession, domain.PlatformGoogle)

		assert.True(t, summary.Success)
		assert.Equal(t, 1, summary.Count)
	})

	t.Run("Falha definitiva registra log de falha e last_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)
		cred := googleCredential()

		f.credentialRepo.EXPECT().GetActive("team-1", domain.PlatformGoogle).Return(cred, nil)
		f.authorizer.EXPECT().GetValidAccessToken(ctx, key).Return("token", nil)
		f.client.EXPECT().SetCredentials(gomock.Any())
		f.client.EXPECT().FetchCampaigns(ctx, "acc-1").Return(nil, errors.New("timeout na plataforma"))

		f.syncLogRepo.EXPECT().Insert(gomock.Any()).
			DoAndReturn(func(log *domain.SyncLog) error {
				assert.Equal(t, domain.SyncStatusFailed, log.Status)
				if assert.NotNil(t, log.ErrorMessage) {
					assert.Contains(t, *log.ErrorMessage, "timeout")
				}
				return nil
			})
		f.credentialRepo.EXPECT().RecordSyncResult("cred-1", gomock.Any(), gomock.Not(gomock.Nil())).Return(nil)

		summary := f.service.SyncPlatform(ctx, testSession, domain.PlatformGoogle)

		assert.False(t, summary.Success)
		assert.Contains(t, summary.Error, "timeout")
	})

	t.Run("Sessão agendada registra o tipo de sync no log", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)
		cred := googleCredential()
		scheduledSession := Session{TeamID: "team-1", UserID: "scheduler", SyncType: domain.SyncTypeFull}

		f.authorizer.EXPECT().GetValidAccessToken(ctx, key).Return("token", nil)
		f.client.EXPECT().SetCredentials(gomock.Any())
		f.client.EXPECT().FetchCampaigns(ctx, "acc-1").Return([]*domain.SyncedCampaign{
			syncedCampaign("901", "Brand"),
		}, nil)
		f.campaignRepo.EXPECT().Upsert(gomock.Any()).Return(nil)
		f.client.EXPECT().FetchCampaignMetrics(ctx, "acc-1", "901", gomock.Any(), gomock.Any()).Return(nil, nil)

		f.syncLogRepo.EXPECT().Insert(gomock.Any()).
			DoAndReturn(func(log *domain.SyncLog) error {
				assert.Equal(t, domain.SyncTypeFull, log.SyncType)
				return nil
			})
		f.credentialRepo.EXPECT().RecordSyncResult("cred-1", gomock.Any(), nil).Return(nil)

		summary := f.service.SyncCredential(ctx, scheduledSession, cred)
		assert.True(t, summary.Success)
	})

	t.Run("Métricas com falha não derrubam o sync de campanhas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)
		cred := googleCredential()

		f.credentialRepo.EXPECT().GetActive("team-1", domain.PlatformGoogle).Return(cred, nil)
		f.authorizer.EXPECT().GetValidAccessToken(ctx, key).Return("token", nil)
		f.client.EXPECT().SetCredentials(gomock.Any())
		f.client.EXPECT().FetchCampaigns(ctx, "acc-1").Return([]*domain.SyncedCampaign{
			syncedCampaign("901", "Brand"),
		}, nil)

		f.campaignRepo.EXPECT().Upsert(gomock.Any()).Return(nil)
		f.client.EXPECT().FetchCampaignMetrics(ctx, "acc-1", "901", gomock.Any(), gomock.Any()).
			Return(nil, errors.New("relatório indisponível"))

		f.syncLogRepo.EXPECT().Insert(gomock.Any()).Return(nil)
		f.credentialRepo.EXPECT().RecordSyncResult("cred-1", gomock.Any(), nil).Return(nil)

		summary := f.service.SyncPlatform(ctx, testSession, domain.PlatformGoogle)

		assert.True(t, summary.Success)
		assert.Equal(t, 1, summary.Count)
	})
}

func TestService_SyncAll(t *testing.T) {
	ctx := context.Background()

	t.Run("Falha de uma plataforma não interrompe as demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)

		metaClient := integratormocks.NewMockPlatformClient(ctrl)
		f.registry.Register(domain.PlatformMeta, func() integrator.PlatformClient {
			return metaClient
		})

		googleCred := googleCredential()
		metaCred := &domain.Credential{
			ID:          "cred-2",
			TeamID:      "team-1",
			Platform:    domain.PlatformMeta,
			AccountID:   "acc-2",
			Credentials: domain.CredentialBag{},
			IsActive:    true,
		}

		f.credentialRepo.EXPECT().ListActiveByTeam("team-1").
			Return([]*domain.Credential{googleCred, metaCred}, nil)

		f.authorizer.EXPECT().GetValidAccessToken(ctx, gomock.Any()).Return("token", nil).Times(2)

		// Google sincroniza normalmente
		f.client.EXPECT().SetCredentials(gomock.Any())
		f.client.EXPECT().FetchCampaigns(ctx, "acc-1").Return([]*domain.SyncedCampaign{
			syncedCampaign("901", "Brand"),
		}, nil)
		f.campaignRepo.EXPECT().Upsert(gomock.Any()).Return(nil)
		f.client.EXPECT().FetchCampaignMetrics(ctx, "acc-1", "901", gomock.Any(), gomock.Any()).Return(nil, nil)

		// Meta falha de vez
		metaClient.EXPECT().SetCredentials(gomock.Any())
		metaClient.EXPECT().FetchCampaigns(ctx, "acc-2").Return(nil, errors.New("api fora do ar"))

		f.syncLogRepo.EXPECT().Insert(gomock.Any()).Return(nil).Times(2)
		f.credentialRepo.EXPECT().RecordSyncResult(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		results := f.service.SyncAll(ctx, testSession)

		assert.Len(t, results, 2)

		byPlatform := map[domain.AdPlatform]*domain.PlatformSyncResult{}
		for _, r := range results {
			byPlatform[r.Platform] = r
		}

		assert.True(t, byPlatform[domain.PlatformGoogle].Success)
		assert.Equal(t, 1, byPlatform[domain.PlatformGoogle].Count)
		assert.False(t, byPlatform[domain.PlatformMeta].Success)
		assert.Contains(t, byPlatform[domain.PlatformMeta].Error, "api fora do ar")
	})
}

func TestService_UpdateCampaignStatus(t *testing.T) {
	ctx := context.Background()
	key := domain.TokenScopeKey{Platform: domain.PlatformGoogle, TeamID: "team-1", AccountID: "acc-1"}

	t.Run("Confirmação da plataforma antes de refletir no banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)
		cred := googleCredential()

		f.credentialRepo.EXPECT().GetActive("team-1", domain.PlatformGoogle).Return(cred, nil)
		f.authorizer.EXPECT().GetValidAccessToken(ctx, key).Return("token", nil)
		f.client.EXPECT().SetCredentials(gomock.Any())
		f.client.EXPECT().UpdateCampaignStatus(ctx, "acc-1", "901", false).Return(true, nil)

		f.campaignRepo.EXPECT().
			UpdateStatus("team-1", domain.PlatformGoogle, "901", domain.CampaignStatusPaused, false).
			Return(nil)

		result := f.service.UpdateCampaignStatus(ctx, testSession, domain.PlatformGoogle, "901", false)

		assert.True(t, result.Success)
		assert.Empty(t, result.Error)
	})

	t.Run("Sem confirmação da plataforma o banco não é tocado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)
		cred := googleCredential()

		f.credentialRepo.EXPECT().GetActive("team-1", domain.PlatformGoogle).Return(cred, nil)
		f.authorizer.EXPECT().GetValidAccessToken(ctx, key).Return("token", nil)
		f.client.EXPECT().SetCredentials(gomock.Any())
		f.client.EXPECT().UpdateCampaignStatus(ctx, "acc-1", "901", true).Return(false, nil)

		result := f.service.UpdateCampaignStatus(ctx, testSession, domain.PlatformGoogle, "901", true)

		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "não confirmou")
	})
}

func TestService_FetchAccounts(t *testing.T) {
	ctx := context.Background()
	key := domain.TokenScopeKey{Platform: domain.PlatformGoogle, TeamID: "team-1", AccountID: "acc-1"}

	t.Run("Lista contas com o integrador preparado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)
		cred := googleCredential()

		f.credentialRepo.EXPECT().GetActive("team-1", domain.PlatformGoogle).Return(cred, nil)
		f.authorizer.EXPECT().GetValidAccessToken(ctx, key).Return("token", nil)
		f.client.EXPECT().SetCredentials(gomock.Any())
		f.client.EXPECT().FetchAccounts(ctx).Return([]*domain.AccountInfo{
			{ID: "111", Name: "MCC", IsManager: true},
		}, nil)

		accounts, err := f.service.FetchAccounts(ctx, testSession, domain.PlatformGoogle)
		assert.NoError(t, err)
		assert.Len(t, accounts, 1)
	})

	t.Run("Credencial ausente retorna CredentialNotFoundError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newSyncFixture(ctrl, domain.PlatformGoogle)

		f.credentialRepo.EXPECT().GetActive("team-1", domain.PlatformGoogle).Return(nil, nil)

		_, err := f.service.FetchAccounts(ctx, testSession, domain.PlatformGoogle)

		var notFound *CredentialNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
