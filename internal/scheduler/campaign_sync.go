package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/repository"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/internal/usecases/syncing"
)

// Nomes dos jobs agendados, usados no disparo manual via API
const (
	JobIncrementalSync = "campaign_sync_incremental"
	JobFullSync        = "campaign_sync_full"
)

// schedulerUserID identifica as sessões criadas pelos jobs agendados nos
// logs de sincronização
const schedulerUserID = "scheduler"

// ErrUnknownJob é retornado quando o nome do job manual não existe
var ErrUnknownJob = errors.New("job agendado desconhecido")

// CampaignSyncConfig representa a configuração do agendador de sincronização
// de campanhas
type CampaignSyncConfig struct {
	IncrementalCron   string
	FullCron          string
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// CampaignSyncService gerencia o agendamento e execução da sincronização de
// campanhas de todas as credenciais ativas, em todas as plataformas
type CampaignSyncService struct {
	scheduler           *gocron.Scheduler
	config              CampaignSyncConfig
	credentialRepo      repository.CredentialRepository
	syncer              syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastOutput          *domain.ScheduledJobOutput
}

// NewCampaignSyncService cria uma nova instância do serviço de sincronização
// agendada de campanhas
func NewCampaignSyncService(
	credentialRepo repository.CredentialRepository,
	syncer syncing.Syncer,
	appConfig *config.Config,
) *CampaignSyncService {
	syncConfig := CampaignSyncConfig{
		IncrementalCron:   appConfig.CampaignSync.IncrementalCron,
		FullCron:          appConfig.CampaignSync.FullCron,
		MaxConcurrentJobs: appConfig.CampaignSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.CampaignSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"incremental_cron":    syncConfig.IncrementalCron,
		"full_cron":           syncConfig.FullCron,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de campanhas carregada")

	return &CampaignSyncService{
		scheduler:      scheduler,
		config:         syncConfig,
		credentialRepo: credentialRepo,
		syncer:         syncer,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *CampaignSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização agendada de campanhas desabilitada por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"incremental_cron": s.config.IncrementalCron,
		"full_cron":        s.config.FullCron,
	}).Info("Iniciando agendador de sincronização de campanhas")

	_, err := s.scheduler.Cron(s.config.IncrementalCron).Do(func() {
		s.runScheduledSync(domain.SyncTypeIncremental)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização incremental de campanhas: %w", err)
	}

	_, err = s.scheduler.Cron(s.config.FullCron).Do(func() {
		s.runScheduledSync(domain.SyncTypeFull)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização completa de campanhas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara manualmente um dos jobs agendados pelo nome
func (s *CampaignSyncService) TriggerManualSync(jobName string) (*domain.ScheduledJobOutput, error) {
	var syncType string
	switch jobName {
	case JobIncrementalSync:
		syncType = domain.SyncTypeIncremental
	case JobFullSync:
		syncType = domain.SyncTypeFull
	default:
		return nil, errors.Wrapf(ErrUnknownJob, "job %q", jobName)
	}

	output := s.runScheduledSync(syncType)
	if output == nil {
		return nil, errors.New("sincronização já em andamento")
	}

	return output, nil
}

// GetStatus retorna o estado atual do agendador
func (s *CampaignSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"enabled":      s.config.SyncEnabled,
		"sync_running": s.syncRunning,
	}

	if !s.lastSyncStartedAt.IsZero() {
		status["last_sync_started_at"] = s.lastSyncStartedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		status["last_sync_completed_at"] = s.lastSyncCompletedAt
	}
	if s.lastOutput != nil {
		status["last_output"] = s.lastOutput
	}

	return status
}

// runScheduledSync percorre todas as credenciais ativas de todos os times e
// sincroniza cada uma. Apenas uma execução por vez: execuções sobrepostas
// são ignoradas.
func (s *CampaignSyncService) runScheduledSync(syncType string) *domain.ScheduledJobOutput {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de campanhas já em andamento, ignorando")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()
	logrus.WithField("sync_type", syncType).Info("Iniciando sincronização agendada de campanhas")

	credentials, err := s.credentialRepo.ListActive()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar credenciais ativas para sincronização agendada")
		output := &domain.ScheduledJobOutput{
			Success:   false,
			SyncType:  syncType,
			Timestamp: startTime,
		}
		s.setLastOutput(output)
		return output
	}

	if len(credentials) == 0 {
		logrus.Info("Nenhuma credencial ativa encontrada para sincronização agendada")
		output := &domain.ScheduledJobOutput{
			Success:   true,
			SyncType:  syncType,
			Timestamp: startTime,
		}
		s.setLastOutput(output)
		return output
	}

	logrus.WithField("credentials", len(credentials)).Info("Credenciais encontradas para sincronização agendada")

	results := s.processCredentials(credentials, syncType)

	output := &domain.ScheduledJobOutput{
		Success:   true,
		SyncType:  syncType,
		Timestamp: startTime,
		Processed: len(results),
		Results:   results,
	}

	for _, result := range results {
		if result.Status == domain.SyncStatusFailed {
			output.Success = false
			break
		}
	}

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"processed": output.Processed,
		"success":   output.Success,
		"sync_type": syncType,
	}).Info("Sincronização agendada de campanhas concluída")

	s.setLastOutput(output)
	return output
}

func (s *CampaignSyncService) setLastOutput(output *domain.ScheduledJobOutput) {
	s.syncMutex.Lock()
	s.lastOutput = output
	s.syncMutex.Unlock()
}

// processCredentials sincroniza as credenciais com um número limitado de
// workers concorrentes
func (s *CampaignSyncService) processCredentials(credentials []*domain.Credential, syncType string) []*domain.ScheduledAccountResult {
	maxWorkers := s.config.MaxConcurrentJobs
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	semaphore := make(chan struct{}, maxWorkers)
	results := make([]*domain.ScheduledAccountResult, len(credentials))
	var wg sync.WaitGroup

	for i, cred := range credentials {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(idx int, cred *domain.Credential) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			results[idx] = s.processCredential(cred, syncType)
		}(i, cred)
	}

	wg.Wait()
	return results
}

// processCredential sincroniza uma credencial sob a sessão do time dono dela
func (s *CampaignSyncService) processCredential(cred *domain.Credential, syncType string) *domain.ScheduledAccountResult {
	logrus.WithFields(logrus.Fields{
		"credential_id": cred.ID,
		"team_id":       cred.TeamID,
		"platform":      cred.Platform,
		"account_id":    cred.AccountID,
	}).Info("Processando credencial na sincronização agendada")

	// Credenciais antigas guardam o id da conta embutido em um identificador
	// composto; o sync usa o id extraído
	if embedded, ok := embeddedAccountID(cred); ok {
		logrus.WithFields(logrus.Fields{
			"credential_id": cred.ID,
			"account_id":    embedded,
		}).Info("Identificador composto detectado, usando o id embutido da conta")

		clone := *cred
		clone.AccountID = embedded
		cred = &clone
	}

	session := syncing.Session{
		TeamID:   cred.TeamID,
		UserID:   schedulerUserID,
		SyncType: syncType,
	}

	summary := s.syncer.SyncCredential(context.Background(), session, cred)

	result := &domain.ScheduledAccountResult{
		AccountID:   cred.AccountID,
		AccountName: cred.AccountName,
	}

	if summary == nil || !summary.Success {
		result.Status = domain.SyncStatusFailed
		if summary != nil {
			result.Error = summary.Error
		}
		logrus.WithFields(logrus.Fields{
			"credential_id": cred.ID,
			"platform":      cred.Platform,
			"error":         result.Error,
		}).Error("Falha na sincronização agendada da credencial")
		return result
	}

	result.Status = domain.SyncStatusSuccess
	result.CampaignsSynced = summary.Count
	return result
}

// ParseCompositeAccountID separa um identificador composto no formato
// "{plataforma}_{timestamp}_{id da conta}". O id da conta pode conter
// underscores, então apenas os dois primeiros separadores são considerados.
func ParseCompositeAccountID(compositeID string) (platform, timestamp, accountID string, err error) {
	parts := strings.SplitN(compositeID, "_", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("identificador composto inválido: %q", compositeID)
	}
	return parts[0], parts[1], parts[2], nil
}

// embeddedAccountID detecta o formato composto no account_id da credencial.
// O prefixo precisa bater com a plataforma e o timestamp ser numérico, para
// não confundir ids legítimos que contêm underscores.
func embeddedAccountID(cred *domain.Credential) (string, bool) {
	platform, timestamp, accountID, err := ParseCompositeAccountID(cred.AccountID)
	if err != nil || platform != string(cred.Platform) {
		return "", false
	}
	if _, err := strconv.ParseInt(timestamp, 10, 64); err != nil {
		return "", false
	}
	return accountID, true
}
