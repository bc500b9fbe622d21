package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/internal/scheduler"
	"github.com/vfg2006/all-ad-api/pkg/apiErrors"
)

// CronJobServices contém os serviços de cron necessários para executar
// manualmente
type CronJobServices struct {
	CampaignSyncService *scheduler.CampaignSyncService
}

// RunCronJob executa manualmente um dos jobs agendados pelo nome
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobName := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if jobName == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome do job não especificado", nil)
			return
		}

		if services.CampaignSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização agendada não disponível", nil)
			return
		}

		logrus.WithField("job", jobName).Info("Execução manual de job agendado solicitada")

		output, err := services.CampaignSyncService.TriggerManualSync(jobName)
		if err != nil {
			if errors.Is(err, scheduler.ErrUnknownJob) {
				apiErrors.WriteError(w, apiErrors.ErrUnknownJob, "Job desconhecido", map[string]any{"job": jobName})
				return
			}
			logrus.WithError(err).Error("Erro ao executar job agendado manualmente")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(output)
	}
}

// GetCronStatus retorna o status do agendador
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if services.CampaignSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização agendada não disponível", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(services.CampaignSyncService.GetStatus())
	}
}
