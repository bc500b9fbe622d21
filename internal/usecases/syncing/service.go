package syncing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/infrastructure/repository"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/internal/usecases/authorizing"
	"github.com/vfg2006/all-ad-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/syncer_mock.go -package=mocks

// Syncer orquestra a sincronização de campanhas entre as plataformas e o
// banco. Nenhum método de sync propaga erro: o resultado estruturado carrega
// a falha.
type Syncer interface {
	SyncPlatform(ctx context.Context, session Session, platform domain.AdPlatform) *domain.SyncSummary
	SyncCredential(ctx context.Context, session Session, cred *domain.Credential) *domain.SyncSummary
	SyncAll(ctx context.Context, session Session) []*domain.PlatformSyncResult
	UpdateCampaignStatus(ctx context.Context, session Session, platform domain.AdPlatform, campaignID string, isActive bool) *domain.StatusUpdateResult
	FetchAccounts(ctx context.Context, session Session, platform domain.AdPlatform) ([]*domain.AccountInfo, error)
}

type Service struct {
	registry       *integrator.Registry
	authorizer     authorizing.Authorizer
	credentialRepo repository.CredentialRepository
	campaignRepo   repository.CampaignRepository
	metricRepo     repository.CampaignMetricRepository
	syncLogRepo    repository.SyncLogRepository
	lookbackDays   int
}

func NewService(
	registry *integrator.Registry,
	authorizer authorizing.Authorizer,
	credentialRepo repository.CredentialRepository,
	campaignRepo repository.CampaignRepository,
	metricRepo repository.CampaignMetricRepository,
	syncLogRepo repository.SyncLogRepository,
	cfg config.CampaignSync,
) *Service {
	return &Service{
		registry:       registry,
		authorizer:     authorizer,
		credentialRepo: credentialRepo,
		campaignRepo:   campaignRepo,
		metricRepo:     metricRepo,
		syncLogRepo:    syncLogRepo,
		lookbackDays:   cfg.MetricsLookbackDays,
	}
}

// preparedClient monta um integrador pronto para uso: instância nova, bag
// mesclada e access token válido injetado
func (s *Service) preparedClient(ctx context.Context, session Session, cred *domain.Credential) (integrator.PlatformClient, domain.CredentialBag, domain.TokenScopeKey, error) {
	key := domain.TokenScopeKey{
		Platform:  cred.Platform,
		TeamID:    session.TeamID,
		AccountID: cred.AccountID,
	}

	client, err := s.registry.CreateService(cred.Platform)
	if err != nil {
		return nil, nil, key, err
	}

	bag, err := MergeCredentialBag(cred)
	if err != nil {
		return nil, nil, key, err
	}

	// Plataformas sem OAuth (Coupang) seguem com a bag original
	if token, _ := s.authorizer.GetValidAccessToken(ctx, key); token != "" {
		bag["access_token"] = token
	}

	client.SetCredentials(bag)

	return client, bag, key, nil
}

// retryOnAuthError executa a chamada e, se a plataforma devolver erro de
// autenticação, força um refresh e tenta exatamente mais uma vez
func (s *Service) retryOnAuthError(ctx context.Context, key domain.TokenScopeKey, client integrator.PlatformClient, bag domain.CredentialBag, call func() error) error {
	err := call()

	var apiErr *integrator.APIError
	if err == nil || !errors.As(err, &apiErr) || !apiErr.IsAuthError() {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"platform":   key.Platform,
		"account_id": key.AccountID,
	}).Info("Plataforma recusou o token, forçando refresh e repetindo uma vez")

	refreshed, refreshErr := s.authorizer.RefreshAccessToken(ctx, key)
	if refreshErr != nil {
		logrus.WithError(refreshErr).WithField("platform", key.Platform).
			Error("Refresh forçado falhou")
		return err
	}

	bag["access_token"] = refreshed.AccessToken
	client.SetCredentials(bag)

	return call()
}

func (s *Service) SyncPlatform(ctx context.Context, session Session, platform domain.AdPlatform) *domain.SyncSummary {
	cred, err := s.credentialRepo.GetActive(session.TeamID, platform)
	if err != nil {
		logrus.WithError(err).WithField("platform", platform).
			Error("Erro ao carregar credencial para sync")
		return &domain.SyncSummary{Error: "erro ao carregar credencial"}
	}
	if cred == nil {
		notFound := &CredentialNotFoundError{Platform: platform, TeamID: session.TeamID}
		logrus.WithField("platform", platform).Warn(notFound.Error())
		return &domain.SyncSummary{Error: notFound.Error()}
	}

	return s.SyncCredential(ctx, session, cred)
}

// SyncCredential sincroniza campanhas e métricas de uma credencial. Rodar
// duas vezes seguidas não duplica nada: campanhas e métricas são upserts por
// chave natural.
func (s *Service) SyncCredential(ctx context.Context, session Session, cred *domain.Credential) *domain.SyncSummary {
	startedAt := time.Now()

	client, bag, key, err := s.preparedClient(ctx, session, cred)
	if err != nil {
		s.recordFailure(session, cred, startedAt, err)
		return &domain.SyncSummary{Error: err.Error()}
	}

	var campaigns []*domain.SyncedCampaign
	err = s.retryOnAuthError(ctx, key, client, bag, func() error {
		var fetchErr error
		campaigns, fetchErr = client.FetchCampaigns(ctx, cred.AccountID)
		return fetchErr
	})
	if err != nil {
		s.recordFailure(session, cred, startedAt, err)
		return &domain.SyncSummary{Error: err.Error()}
	}

	count := 0
	for _, synced := range campaigns {
		campaign := synced.Campaign
		campaign.ID = newID()
		campaign.TeamID = session.TeamID

		if err := s.campaignRepo.Upsert(&campaign); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"platform":    cred.Platform,
				"campaign_id": campaign.ExternalID,
			}).Error("Erro ao gravar campanha, seguindo para a próxima")
			continue
		}
		count++

		s.syncMetrics(ctx, session, client, cred, &campaign, synced.Metrics)
	}

	s.recordSuccess(session, cred, startedAt, count)

	return &domain.SyncSummary{Success: true, Count: count}
}

// syncMetrics grava as métricas da campanha: as que vieram junto do fetch
// ou, na ausência delas, as da janela de lookback
func (s *Service) syncMetrics(ctx context.Context, session Session, client integrator.PlatformClient, cred *domain.Credential, campaign *domain.Campaign, prefetched []*domain.CampaignMetric) {
	metrics := prefetched

	if len(metrics) == 0 {
		end := utils.DayOf(time.Now())
		start := end.AddDate(0, 0, -s.lookbackDays)

		fetched, err := client.FetchCampaignMetrics(ctx, cred.AccountID, campaign.ExternalID, start, end)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"platform":    cred.Platform,
				"campaign_id": campaign.ExternalID,
			}).Warn("Erro ao buscar métricas, campanha segue sem métricas neste sync")
			return
		}
		metrics = fetched
	}

	for _, metric := range metrics {
		metric.ID = newID()
		metric.TeamID = session.TeamID
		metric.Platform = cred.Platform
		metric.CampaignID = campaign.ExternalID
		metric.Date = utils.DayOf(metric.Date)

		if err := s.metricRepo.Upsert(metric); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"platform":    cred.Platform,
				"campaign_id": campaign.ExternalID,
			}).Error("Erro ao gravar métrica diária")
		}
	}
}

// SyncAll dispara o sync de todas as credenciais ativas do time em paralelo.
// Cada plataforma é isolada: a falha de uma não interrompe as demais.
func (s *Service) SyncAll(ctx context.Context, session Session) []*domain.PlatformSyncResult {
	creds, err := s.credentialRepo.ListActiveByTeam(session.TeamID)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar credenciais para sync geral")
		return []*domain.PlatformSyncResult{}
	}

	results := make([]*domain.PlatformSyncResult, len(creds))

	var wg sync.WaitGroup
	for i, cred := range creds {
		wg.Add(1)
		go func(i int, cred *domain.Credential) {
			defer wg.Done()

			summary := s.SyncCredential(ctx, session, cred)
			results[i] = &domain.PlatformSyncResult{
				Platform: cred.Platform,
				Success:  summary.Success,
				Count:    summary.Count,
				Error:    summary.Error,
			}
		}(i, cred)
	}
	wg.Wait()

	return results
}

// UpdateCampaignStatus propaga a mudança de status para a plataforma e só
// reflete no banco depois da confirmação
func (s *Service) UpdateCampaignStatus(ctx context.Context, session Session, platform domain.AdPlatform, campaignID string, isActive bool) *domain.StatusUpdateResult {
	cred, err := s.credentialRepo.GetActive(session.TeamID, platform)
	if err != nil {
		return &domain.StatusUpdateResult{Error: "erro ao carregar credencial"}
	}
	if cred == nil {
		notFound := &CredentialNotFoundError{Platform: platform, TeamID: session.TeamID}
		return &domain.StatusUpdateResult{Error: notFound.Error()}
	}

	client, bag, key, err := s.preparedClient(ctx, session, cred)
	if err != nil {
		return &domain.StatusUpdateResult{Error: err.Error()}
	}

	var confirmed bool
	err = s.retryOnAuthError(ctx, key, client, bag, func() error {
		var callErr error
		confirmed, callErr = client.UpdateCampaignStatus(ctx, cred.AccountID, campaignID, isActive)
		return callErr
	})
	if err != nil {
		return &domain.StatusUpdateResult{Error: err.Error()}
	}
	if !confirmed {
		return &domain.StatusUpdateResult{Error: "plataforma não confirmou a mudança de status"}
	}

	status := domain.CampaignStatusPaused
	if isActive {
		status = domain.CampaignStatusActive
	}

	if err := s.campaignRepo.UpdateStatus(session.TeamID, platform, campaignID, status, isActive); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"platform":    platform,
			"campaign_id": campaignID,
		}).Error("Status confirmado na plataforma mas não refletido no banco")
		return &domain.StatusUpdateResult{Error: "status alterado na plataforma, mas não refletido localmente"}
	}

	return &domain.StatusUpdateResult{Success: true}
}

// FetchAccounts lista as contas alcançáveis com a credencial ativa do time
func (s *Service) FetchAccounts(ctx context.Context, session Session, platform domain.AdPlatform) ([]*domain.AccountInfo, error) {
	cred, err := s.credentialRepo.GetActive(session.TeamID, platform)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, &CredentialNotFoundError{Platform: platform, TeamID: session.TeamID}
	}

	client, bag, key, err := s.preparedClient(ctx, session, cred)
	if err != nil {
		return nil, err
	}

	var accounts []*domain.AccountInfo
	err = s.retryOnAuthError(ctx, key, client, bag, func() error {
		var fetchErr error
		accounts, fetchErr = client.FetchAccounts(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// newID gera o identificador curto usado nas entidades sincronizadas. Em
// caso de falha do gerador cai para um UUID.
func newID() string {
	id, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Warn("Erro ao gerar identificador curto, usando UUID")
		return uuid.New().String()
	}
	return id
}

// syncTypeFor resolve o tipo registrado no log: sessões agendadas trazem
// incremental ou full, as interativas caem no padrão
func syncTypeFor(session Session) string {
	if session.SyncType != "" {
		return session.SyncType
	}
	return domain.SyncTypeCampaigns
}

func (s *Service) recordSuccess(session Session, cred *domain.Credential, startedAt time.Time, count int) {
	now := time.Now()

	if err := s.syncLogRepo.Insert(&domain.SyncLog{
		ID:            newID(),
		TeamID:        session.TeamID,
		Platform:      cred.Platform,
		SyncType:      syncTypeFor(session),
		Status:        domain.SyncStatusSuccess,
		RecordsSynced: count,
		StartedAt:     startedAt,
		CompletedAt:   now,
	}); err != nil {
		logrus.WithError(err).Warn("Erro ao registrar log de sync")
	}

	if err := s.credentialRepo.RecordSyncResult(cred.ID, now, nil); err != nil {
		logrus.WithError(err).Warn("Erro ao atualizar last_synced_at da credencial")
	}
}

func (s *Service) recordFailure(session Session, cred *domain.Credential, startedAt time.Time, syncErr error) {
	now := time.Now()
	message := syncErr.Error()

	logrus.WithError(syncErr).WithFields(logrus.Fields{
		"platform":   cred.Platform,
		"team_id":    session.TeamID,
		"account_id": cred.AccountID,
	}).Error("Sincronização falhou")

	if err := s.syncLogRepo.Insert(&domain.SyncLog{
		ID:           newID(),
		TeamID:       session.TeamID,
		Platform:     cred.Platform,
		SyncType:     syncTypeFor(session),
		Status:       domain.SyncStatusFailed,
		ErrorMessage: &message,
		StartedAt:    startedAt,
		CompletedAt:  now,
	}); err != nil {
		logrus.WithError(err).Warn("Erro ao registrar log de sync")
	}

	if err := s.credentialRepo.RecordSyncResult(cred.ID, now, &message); err != nil {
		logrus.WithError(err).Warn("Erro ao atualizar last_error da credencial")
	}
}
