package handler

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/repository"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/internal/usecases/authorizing"
	"github.com/vfg2006/all-ad-api/pkg/apiErrors"
	"github.com/vfg2006/all-ad-api/pkg/middleware"
	"github.com/vfg2006/all-ad-api/pkg/utils"
)

// oauthState é o contexto serializado no parâmetro state do fluxo OAuth.
// O callback é chamado pelo provedor sem sessão, então o time dono da
// conexão viaja dentro do próprio state.
type oauthState struct {
	TeamID    string `json:"team_id"`
	UserID    int    `json:"user_id"`
	AccountID string `json:"account_id,omitempty"`
	Nonce     string `json:"nonce"`
}

func encodeOAuthState(state oauthState) (string, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeOAuthState(encoded string) (*oauthState, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "state inválido")
	}

	var state oauthState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, errors.Wrap(err, "state inválido")
	}

	if state.TeamID == "" || state.Nonce == "" {
		return nil, errors.New("state sem contexto de time")
	}

	return &state, nil
}

// GetAuthorizationURL monta a URL de consentimento do provedor para o time
// do usuário logado
func GetAuthorizationURL(service authorizing.Authorizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		platform, err := domain.ParseAdPlatform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Plataforma não suportada", nil)
			return
		}

		nonce, err := utils.GenerateID()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar state", nil)
			return
		}

		state, err := encodeOAuthState(oauthState{
			TeamID:    userClaims.UserTeamID,
			UserID:    userClaims.UserID,
			AccountID: r.URL.Query().Get("account_id"),
			Nonce:     nonce,
		})
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar state", nil)
			return
		}

		authURL, err := service.BuildAuthorizationURL(platform, state)
		if err != nil {
			logrus.WithError(err).WithField("platform", platform).Error("Erro ao montar URL de autorização")
			if errors.Is(err, authorizing.ErrAuthConfig) {
				apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Plataforma sem fluxo OAuth configurado", map[string]any{"platform": platform})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar URL de autorização", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"authorization_url": authURL,
			"state":             state,
		})
	}
}

// OAuthCallback troca o code de autorização por tokens e registra a
// credencial do time. Rota pública: o contexto vem do state.
func OAuthCallback(service authorizing.Authorizer, credentialRepo repository.CredentialRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platform, err := domain.ParseAdPlatform(httprouter.ParamsFromContext(r.Context()).ByName("platform"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrUnknownPlatform, "Plataforma não suportada", nil)
			return
		}

		query := r.URL.Query()
		if errParam := query.Get("error"); errParam != "" {
			logrus.WithFields(logrus.Fields{
				"platform": platform,
				"error":    errParam,
			}).Warn("Provedor negou a autorização OAuth")
			apiErrors.WriteError(w, apiErrors.ErrNeedsReauth, "Autorização negada pelo provedor", map[string]any{"error": errParam})
			return
		}

		code := query.Get("code")
		if code == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro code ausente", nil)
			return
		}

		state, err := decodeOAuthState(query.Get("state"))
		if err != nil {
			logrus.WithError(err).Warn("State inválido no callback OAuth")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "State inválido", nil)
			return
		}

		record, err := service.ExchangeCode(r.Context(), platform, code, query.Get("code_verifier"))
		if err != nil {
			logrus.WithError(err).WithField("platform", platform).Error("Erro ao trocar code por tokens")

			var exchangeErr *authorizing.TokenExchangeError
			if errors.As(err, &exchangeErr) {
				apiErrors.WriteError(w, apiErrors.ErrPlatformAPI, "Provedor recusou a troca do code", map[string]any{
					"status": exchangeErr.StatusCode,
				})
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao trocar code por tokens", nil)
			return
		}

		accountID := state.AccountID
		if accountID == "" {
			accountID = "primary"
		}

		// Reconexão reaproveita a linha existente e preserva a configuração
		// manual da conta (settings, chaves extras, nome)
		existing, err := credentialRepo.GetByNaturalKey(state.TeamID, platform, accountID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao carregar credencial existente no callback OAuth")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar credencial", nil)
			return
		}

		now := time.Now()
		cred := &domain.Credential{
			TeamID:       state.TeamID,
			Platform:     platform,
			AccountID:    accountID,
			IsActive:     true,
			GrantedScope: record.Scope,
			ConnectedAt:  &now,
		}

		if existing != nil {
			cred.ID = existing.ID
			cred.AccountName = existing.AccountName
			cred.Credentials = existing.Credentials
			cred.Settings = existing.Settings
		} else {
			credID, err := utils.GenerateID()
			if err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificador", nil)
				return
			}
			cred.ID = credID
		}

		if err := credentialRepo.Upsert(cred); err != nil {
			logrus.WithError(err).Error("Erro ao registrar credencial após o callback OAuth")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar credencial", nil)
			return
		}

		key := domain.TokenScopeKey{Platform: platform, TeamID: state.TeamID, AccountID: accountID}
		if err := service.StoreTokens(r.Context(), key, record); err != nil {
			logrus.WithError(err).Error("Erro ao armazenar tokens após o callback OAuth")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao armazenar tokens", nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"platform":   platform,
			"team_id":    state.TeamID,
			"account_id": accountID,
		}).Info("Conta conectada via OAuth")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"connected":  true,
			"platform":   platform,
			"account_id": accountID,
			"expires_at": record.ExpiresAt,
		})
	}
}
