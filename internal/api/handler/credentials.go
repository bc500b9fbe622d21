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

type UpsertCredentialRequest struct {
	Platform    string               `json:"platform"`
	AccountID   string               `json:"account_id"`
	AccountName string               `json:"account_name"`
	Credentials domain.CredentialBag `json:"credentials"`
	Settings    domain.CredentialBag `json:"settings"`
}

// ListCredentials lista as conexões do time. O material de credencial nunca
// sai na resposta.
func ListCredentials(credentialRepo repository.CredentialRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		credentials, err := credentialRepo.ListByTeam(userClaims.UserTeamID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar credenciais")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar credenciais no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(credentials)
	}
}

// UpsertCredential registra ou atualiza uma conexão manual (material de
// credencial fornecido pelo próprio time, como chaves HMAC do Coupang)
func UpsertCredential(credentialRepo repository.CredentialRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req UpsertCredentialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		platform, err := domain.ParseAdPlatform(req.Platform)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Plataforma não suportada", nil)
			return
		}

		if req.AccountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id é obrigatório", nil)
			return
		}

		credID, err := utils.GenerateID()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador", nil)
			return
		}

		now := time.Now()
		cred := &domain.Credential{
			ID:          credID,
			TeamID:      userClaims.UserTeamID,
			Platform:    platform,
			AccountID:   req.AccountID,
			AccountName: req.AccountName,
			Credentials: req.Credentials,
			Settings:    req.Settings,
			IsActive:    true,
			ConnectedAt: &now,
		}

		if err := credentialRepo.Upsert(cred); err != nil {
			logrus.WithError(err).Error("Erro ao gravar credencial")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar credencial", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(cred)
	}
}

// DeactivateCredential desconecta uma conta sem apagar o histórico
// sincronizado por ela
func DeactivateCredential(credentialRepo repository.CredentialRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, ok := teamCredential(w, r, credentialRepo)
		if !ok {
			return
		}

		if err := credentialRepo.Deactivate(cred.ID); err != nil {
			logrus.WithError(err).Error("Erro ao desativar credencial")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao desativar credencial", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// DeleteCredential remove definitivamente uma conexão
func DeleteCredential(credentialRepo repository.CredentialRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, ok := teamCredential(w, r, credentialRepo)
		if !ok {
			return
		}

		if err := credentialRepo.Delete(cred.ID); err != nil {
			logrus.WithError(err).Error("Erro ao remover credencial")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao remover credencial", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ListSyncLogs retorna o histórico recente de sincronizações do time
func ListSyncLogs(syncLogRepo repository.SyncLogRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		logs, err := syncLogRepo.ListByTeam(userClaims.UserTeamID, 100)
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar logs de sincronização")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar logs no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(logs)
	}
}

// teamCredential carrega a credencial da URL e garante que ela pertence ao
// time do usuário logado
func teamCredential(w http.ResponseWriter, r *http.Request, credentialRepo repository.CredentialRepository) (*domain.Credential, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}

	credID := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if credID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da credencial não fornecido", nil)
		return nil, false
	}

	cred, err := credentialRepo.GetByID(credID)
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar credencial")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar credencial no banco de dados", nil)
		return nil, false
	}

	if cred == nil || cred.TeamID != userClaims.UserTeamID {
		apiErrors.WriteError(w, apiErrors.ErrCredentialNotFound, "Credencial não encontrada", nil)
		return nil, false
	}

	return cred, true
}
