package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/all-ad-api/infrastructure/repository/mocks"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/internal/usecases/syncing"
	syncmocks "github.com/vfg2006/all-ad-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func newTestService(credentialRepo *repomocks.MockCredentialRepository, syncer *syncmocks.MockSyncer) *CampaignSyncService {
	cfg := &config.Config{
		CampaignSync: config.CampaignSync{
			IncrementalCron:   "*/30 * * * *",
			FullCron:          "0 3 * * *",
			MaxConcurrentJobs: 2,
			Enabled:           true,
		},
	}
	return NewCampaignSyncService(credentialRepo, syncer, cfg)
}

func scheduledCredential(id, teamID string, platform domain.AdPlatform) *domain.Credential {
	return &domain.Credential{
		ID:          id,
		TeamID:      teamID,
		Platform:    platform,
		AccountID:   "acc-" + id,
		AccountName: "Conta " + id,
		IsActive:    true,
	}
}

func TestRunScheduledSync(t *testing.T) {
	t.Run("Sincroniza todas as credenciais ativas sob a sessão do time dono", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		credentialRepo := repomocks.NewMockCredentialRepository(ctrl)
		syncer := syncmocks.NewMockSyncer(ctrl)
		svc := newTestService(credentialRepo, syncer)

		credA := scheduledCredential("c1", "team-1", domain.PlatformGoogle)
		credB := scheduledCredential("c2", "team-2", domain.PlatformMeta)
		credentialRepo.EXPECT().ListActive().Return([]*domain.Credential{credA, credB}, nil)

		syncer.EXPECT().
			SyncCredential(gomock.Any(), syncing.Session{TeamID: "team-1", UserID: schedulerUserID, SyncType: domain.SyncTypeIncremental}, credA).
			Return(&domain.SyncSummary{Success: true, Count: 3})
		syncer.EXPECT().
			SyncCredential(gomock.Any(), syncing.Session{TeamID: "team-2", UserID: schedulerUserID, SyncType: domain.SyncTypeIncremental}, credB).
			Return(&domain.SyncSummary{Success: true, Count: 5})

		output := svc.runScheduledSync(domain.SyncTypeIncremental)

		assert.NotNil(t, output)
		assert.True(t, output.Success)
		assert.Equal(t, domain.SyncTypeIncremental, output.SyncType)
		assert.Equal(t, 2, output.Processed)
		assert.Len(t, output.Results, 2)

		byAccount := map[string]*domain.ScheduledAccountResult{}
		for _, result := range output.Results {
			byAccount[result.AccountID] = result
		}
		assert.Equal(t, domain.SyncStatusSuccess, byAccount["acc-c1"].Status)
		assert.Equal(t, 3, byAccount["acc-c1"].CampaignsSynced)
		assert.Equal(t, 5, byAccount["acc-c2"].CampaignsSynced)
	})

	t.Run("Identificador composto usa o id embutido da conta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		credentialRepo := repomocks.NewMockCredentialRepository(ctrl)
		syncer := syncmocks.NewMockSyncer(ctrl)
		svc := newTestService(credentialRepo, syncer)

		composite := scheduledCredential("c1", "team-1", domain.PlatformGoogle)
		composite.AccountID = "google_1719400000_123_456_789"
		plain := scheduledCredential("c2", "team-1", domain.PlatformNaver)
		plain.AccountID = "naver_acc_1"
		credentialRepo.EXPECT().ListActive().Return([]*domain.Credential{composite, plain}, nil)

		var syncedIDs []string
		syncer.EXPECT().SyncCredential(gomock.Any(), gomock.Any(), gomock.Any()).Times(2).
			DoAndReturn(func(_ context.Context, _ syncing.Session, cred *domain.Credential) *domain.SyncSummary {
				syncedIDs = append(syncedIDs, cred.AccountID)
				return &domain.SyncSummary{Success: true, Count: 1}
			})

		output := svc.runScheduledSync(domain.SyncTypeIncremental)
		assert.NotNil(t, output)
		assert.True(t, output.Success)

		// Só o formato plataforma_timestamp_id é reescrito; underscores em
		// ids legítimos ficam intactos
		assert.ElementsMatch(t, []string{"123_456_789", "naver_acc_1"}, syncedIDs)
		// A credencial original não é mutada pelo worker
		assert.Equal(t, "google_1719400000_123_456_789", composite.AccountID)
	})

	t.Run("Falha de uma credencial não interrompe as demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		credentialRepo := repomocks.NewMockCredentialRepository(ctrl)
		syncer := syncmocks.NewMockSyncer(ctrl)
		svc := newTestService(credentialRepo, syncer)

		credA := scheduledCredential("c1", "team-1", domain.PlatformGoogle)
		credB := scheduledCredential("c2", "team-1", domain.PlatformNaver)
		credentialRepo.EXPECT().ListActive().Return([]*domain.Credential{credA, credB}, nil)

		syncer.EXPECT().
			SyncCredential(gomock.Any(), gomock.Any(), credA).
			Return(&domain.SyncSummary{Success: false, Error: "token expirado"})
		syncer.EXPECT().
			SyncCredential(gomock.Any(), gomock.Any(), credB).
			Return(&domain.SyncSummary{Success: true, Count: 1})

		output := svc.runScheduledSync(domain.SyncTypeFull)

		assert.NotNil(t, output)
		assert.False(t, output.Success)
		assert.Equal(t, 2, output.Processed)

		byAccount := map[string]*domain.ScheduledAccountResult{}
		for _, result := range output.Results {
			byAccount[result.AccountID] = result
		}
		assert.Equal(t, domain.SyncStatusFailed, byAccount["acc-c1"].Status)
		assert.Equal(t, "token expirado", byAccount["acc-c1"].Error)
		assert.Equal(t, domain.SyncStatusSuccess, byAccount["acc-c2"].Status)
	})

	t.Run("Execução sobreposta é ignorada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		credentialRepo := repomocks.NewMockCredentialRepository(ctrl)
		syncer := syncmocks.NewMockSyncer(ctrl)
		svc := newTestService(credentialRepo, syncer)

		svc.syncMutex.Lock()
		svc.syncRunning = true
		svc.syncMutex.Unlock()

		output := svc.runScheduledSync(domain.SyncTypeIncremental)
		assert.Nil(t, output)
	})

	t.Run("Erro ao listar credenciais produz saída com falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		credentialRepo := repomocks.NewMockCredentialRepository(ctrl)
		syncer := syncmocks.NewMockSyncer(ctrl)
		svc := newTestService(credentialRepo, syncer)

		credentialRepo.EXPECT().ListActive().Return(nil, assert.AnError)

		output := svc.runScheduledSync(domain.SyncTypeIncremental)
		assert.NotNil(t, output)
		assert.False(t, output.Success)
		assert.Zero(t, output.Processed)
	})
}

func TestTriggerManualSync(t *testing.T) {
	t.Run("Job desconhecido retorna ErrUnknownJob", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := newTestService(repomocks.NewMockCredentialRepository(ctrl), syncmocks.NewMockSyncer(ctrl))

		_, err := svc.TriggerManualSync("job_inexistente")
		assert.ErrorIs(t, err, ErrUnknownJob)
	})

	t.Run("Disparo manual executa o job incremental", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		credentialRepo := repomocks.NewMockCredentialRepository(ctrl)
		syncer := syncmocks.NewMockSyncer(ctrl)
		svc := newTestService(credentialRepo, syncer)

		credentialRepo.EXPECT().ListActive().Return([]*domain.Credential{}, nil)

		output, err := svc.TriggerManualSync(JobIncrementalSync)
		assert.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, domain.SyncTypeIncremental, output.SyncType)
	})
}

func TestParseCompositeAccountID(t *testing.T) {
	t.Run("Identificador com underscores no id da conta", func(t *testing.T) {
		platform, timestamp, accountID, err := ParseCompositeAccountID("google_1719400000_123_456_789")
		assert.NoError(t, err)
		assert.Equal(t, "google", platform)
		assert.Equal(t, "1719400000", timestamp)
		assert.Equal(t, "123_456_789", accountID)
	})

	t.Run("Identificador sem as três partes é inválido", func(t *testing.T) {
		_, _, _, err := ParseCompositeAccountID("google_1719400000")
		assert.Error(t, err)
	})

	t.Run("Parte vazia é inválida", func(t *testing.T) {
		_, _, _, err := ParseCompositeAccountID("google__123")
		assert.Error(t, err)
	})
}

func TestGetStatus(t *testing.T) {
	t.Run("Status reflete a última execução", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		credentialRepo := repomocks.NewMockCredentialRepository(ctrl)
		syncer := syncmocks.NewMockSyncer(ctrl)
		svc := newTestService(credentialRepo, syncer)

		credentialRepo.EXPECT().ListActive().Return([]*domain.Credential{}, nil)
		svc.runScheduledSync(domain.SyncTypeFull)

		status := svc.GetStatus()
		assert.Equal(t, true, status["enabled"])
		assert.Equal(t, false, status["sync_running"])
		assert.Contains(t, status, "last_sync_started_at")
		assert.Contains(t, status, "last_output")
	})
}
