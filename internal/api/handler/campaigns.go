package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/repository"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/pkg/apiErrors"
	"github.com/vfg2006/all-ad-api/pkg/middleware"
	"github.com/vfg2006/all-ad-api/pkg/utils"
)

// defaultMetricsWindowDays é a janela padrão de métricas quando a requisição
// não informa o período
const defaultMetricsWindowDays = 30

// ListCampaigns lista as campanhas do time, opcionalmente filtradas por
// plataforma via query string
func ListCampaigns(campaignRepo repository.CampaignRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var campaigns []*domain.Campaign
		var err error

		if filter := r.URL.Query().Get("platform"); filter != "" {
			platform, parseErr := domain.ParseAdPlatform(filter)
			if parseErr != nil {
				apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Plataforma não suportada", nil)
				return
			}
			campaigns, err = campaignRepo.ListByTeamAndPlatform(userClaims.UserTeamID, platform)
		} else {
			campaigns, err = campaignRepo.ListByTeam(userClaims.UserTeamID)
		}

		if err != nil {
			logrus.WithError(err).Error("Erro ao listar campanhas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar campanhas no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(campaigns)
	}
}

// GetCampaignMetrics retorna o histórico diário de métricas de uma campanha
// na janela pedida (start_date/end_date, formato 2006-01-02)
func GetCampaignMetrics(metricRepo repository.CampaignMetricRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		params := httprouter.ParamsFromContext(r.Context())
		platform, err := domain.ParseAdPlatform(params.ByName("platform"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Plataforma não suportada", nil)
			return
		}

		campaignID := params.ByName("id")
		if campaignID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da campanha não fornecido", nil)
			return
		}

		endDate := utils.DayOf(time.Now())
		startDate := endDate.AddDate(0, 0, -defaultMetricsWindowDays)

		query := r.URL.Query()
		if raw := query.Get("start_date"); raw != "" {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, use o formato 2006-01-02", nil)
				return
			}
			startDate = *parsed
		}
		if raw := query.Get("end_date"); raw != "" {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, use o formato 2006-01-02", nil)
				return
			}
			endDate = *parsed
		}

		if endDate.Before(startDate) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "end_date anterior a start_date", nil)
			return
		}

		metrics, err := metricRepo.ListByCampaign(userClaims.UserTeamID, platform, campaignID, startDate, endDate)
		if err != nil {
			logrus.WithError(err).Error("Erro ao consultar métricas")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar métricas no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics)
	}
}
