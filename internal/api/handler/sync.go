package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/internal/usecases/syncing"
	"github.com/vfg2006/all-ad-api/pkg/apiErrors"
	"github.com/vfg2006/all-ad-api/pkg/middleware"
)

type UpdateCampaignStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// sessionFromClaims monta a sessão de orquestração a partir do token.
// Todas as operações de sync rodam sob o time do usuário logado.
func sessionFromClaims(r *http.Request) (syncing.Session, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		return syncing.Session{}, false
	}
	return syncing.Session{
		TeamID: userClaims.UserTeamID,
		UserID: userClaims.UserEmail,
	}, true
}

// SyncPlatform dispara a sincronização de uma plataforma do time
func SyncPlatform(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromClaims(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		platform, err := domain.ParseAdPlatform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Plataforma não suportada", nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"team_id":  session.TeamID,
		}).Info("Sincronização manual de plataforma solicitada")

		summary := service.SyncPlatform(r.Context(), session, platform)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summary)
	}
}

// SyncAll dispara a sincronização de todas as plataformas conectadas do time
func SyncAll(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromClaims(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		logrus.WithField("team_id", session.TeamID).Info("Sincronização manual geral solicitada")

		results := service.SyncAll(r.Context(), session)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"results": results,
		})
	}
}

// UpdateCampaignStatus ativa ou pausa uma campanha na plataforma de origem.
// O banco só reflete a mudança depois da confirmação da plataforma.
func UpdateCampaignStatus(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromClaims(r)
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

		var req UpdateCampaignStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result := service.UpdateCampaignStatus(r.Context(), session, platform, campaignID, req.IsActive)

		w.Header().Set("Content-Type", "application/json")
		if !result.Success {
			w.WriteHeader(http.StatusBadGateway)
		}
		json.NewEncoder(w).Encode(result)
	}
}

// FetchPlatformAccounts lista as contas de anúncio visíveis pela credencial
// conectada da plataforma
func FetchPlatformAccounts(service syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromClaims(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		platform, err := domain.ParseAdPlatform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Plataforma não suportada", nil)
			return
		}

		accounts, err := service.FetchAccounts(r.Context(), session, platform)
		if err != nil {
			logrus.WithError(err).WithField("platform", platform).Error("Erro ao listar contas da plataforma")
			handleSyncError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}

func handleSyncError(w http.ResponseWriter, err error) {
	var notFoundErr *syncing.CredentialNotFoundError
	if errors.As(err, &notFoundErr) {
		apiErrors.WriteError(w, apiErrors.ErrCredentialNotFound, notFoundErr.Error(), nil)
		return
	}

	var missingKeyErr *syncing.MissingCredentialKeyError
	if errors.As(err, &missingKeyErr) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, missingKeyErr.Error(), nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrPlatformAPI, "Erro na API da plataforma", nil)
}
