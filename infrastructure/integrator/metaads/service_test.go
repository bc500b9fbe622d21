package metaads

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

func newTestService(serverURL string) *Service {
	service := NewService(config.MetaAds{
		BaseURL: serverURL,
		Version: "v19.0",
		URL:     serverURL,
	})
	service.SetCredentials(domain.CredentialBag{"access_token": "meta-token"})
	return service
}

func TestService_FetchAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/adaccounts", r.URL.Path)
		assert.Equal(t, "meta-token", r.URL.Query().Get("access_token"))

		fmt.Fprint(w, `{
			"data": [
				{"id": "act_555", "name": "Loja Principal", "account_status": 1, "currency": "BRL"},
				{"id": "act_556", "name": "Loja Inativa", "account_status": 2, "currency": "BRL"}
			],
			"paging": {}
		}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	accounts, err := service.FetchAccounts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, accounts, 2)

	// Prefixo act_ removido do ID
	assert.Equal(t, "555", accounts[0].ID)
	assert.Equal(t, "ACTIVE", accounts[0].Status)
	assert.Equal(t, "DISABLED", accounts[1].Status)
}

func TestService_FetchCampaigns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/act_555/campaigns", r.URL.Path)

		fmt.Fprint(w, `{
			"data": [
				{"id": "c1", "name": "Promo", "effective_status": "ACTIVE", "daily_budget": "5000"},
				{"id": "c2", "name": "Institucional", "effective_status": "PAUSED", "lifetime_budget": "100000"}
			],
			"paging": {}
		}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	campaigns, err := service.FetchCampaigns(context.Background(), "555")
	assert.NoError(t, err)
	assert.Len(t, campaigns, 2)

	assert.Equal(t, domain.CampaignStatusActive, campaigns[0].Status)
	assert.True(t, campaigns[0].IsActive)
	// Orçamento em centavos convertido para unidades de moeda
	assert.Equal(t, 50.0, campaigns[0].Budget)
	assert.Equal(t, "daily", campaigns[0].BudgetType)

	assert.Equal(t, domain.CampaignStatusPaused, campaigns[1].Status)
	assert.Equal(t, 1000.0, campaigns[1].Budget)
	assert.Equal(t, "lifetime", campaigns[1].BudgetType)
}

func TestService_FetchCampaignMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/c1/insights", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("time_increment"))
		assert.Contains(t, r.URL.Query().Get("time_range"), `"since":"2024-01-01"`)

		fmt.Fprint(w, `{
			"data": [
				{
					"date_start": "2024-01-10",
					"impressions": "2000",
					"clicks": "85",
					"spend": "42.37",
					"actions": [{"action_type": "purchase", "value": "3"}],
					"action_values": [{"action_type": "purchase", "value": "310.50"}]
				}
			],
			"paging": {}
		}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	result, err := service.FetchCampaignMetrics(context.Background(), "555", "c1", start, end)
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	assert.Equal(t, int64(2000), result[0].Impressions)
	assert.Equal(t, int64(85), result[0].Clicks)
	assert.Equal(t, 42.37, result[0].Cost)
	assert.Equal(t, 3.0, result[0].Conversions)
	assert.Equal(t, 310.5, result[0].Revenue)
}

func TestService_UpdateCampaignStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/c1", r.URL.Path)
		assert.Equal(t, "PAUSED", r.URL.Query().Get("status"))

		fmt.Fprint(w, `{"success": true}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	confirmed, err := service.UpdateCampaignStatus(context.Background(), "555", "c1", false)
	assert.NoError(t, err)
	assert.True(t, confirmed)
}

func TestService_BatchUpdateCampaignStatus(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		// A campanha c3 falha, as demais passam
		if strings.HasPrefix(r.URL.Path, "/c3") {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": {"message": "invalid campaign"}}`)
			return
		}

		fmt.Fprint(w, `{"success": true}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	result, err := service.BatchUpdateCampaignStatus(
		context.Background(), "555", []string{"c1", "c2", "c3", "c4"}, true)
	assert.NoError(t, err)

	// Falha individual não derruba o lote inteiro
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "c3")
	assert.Equal(t, int32(4), calls.Load())
}

func TestService_AuthErrorClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"type": "OAuthException", "message": "Error validating access token"}}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	_, err := service.FetchCampaigns(context.Background(), "555")
	assert.Error(t, err)

	var apiErr *integrator.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsAuthError())
}

func TestGetLongLivedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v19.0/oauth/access_token", r.URL.Path)
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "short-token", r.URL.Query().Get("fb_exchange_token"))

		_ = json.NewEncoder(w).Encode(TokenResponse{
			AccessToken: "long-token",
			TokenType:   "bearer",
			ExpiresIn:   5183944,
		})
	}))
	defer server.Close()

	cfg := config.MetaAds{
		AppID:     "app-id",
		AppSecret: "app-secret",
		BaseURL:   server.URL,
		Version:   "v19.0",
	}

	token, err := GetLongLivedToken(cfg, "short-token")
	assert.NoError(t, err)
	assert.Equal(t, "long-token", token.AccessToken)
}
