package tiktokads

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

func newTestService(serverURL string) *Service {
	service := NewService(config.TikTokAds{
		AppID:      "app-id",
		AppSecret:  "app-secret",
		APIBaseURL: serverURL,
	})
	service.SetCredentials(domain.CredentialBag{"access_token": "tiktok-token"})
	return service
}

func TestService_FetchAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth2/advertiser/get/", r.URL.Path)
		assert.Equal(t, "tiktok-token", r.Header.Get("Access-Token"))
		assert.Equal(t, "app-id", r.URL.Query().Get("app_id"))

		fmt.Fprint(w, `{
			"code": 0,
			"message": "OK",
			"data": {
				"list": [
					{"advertiser_id": "7000001", "advertiser_name": "Loja TikTok"}
				]
			}
		}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	accounts, err := service.FetchAccounts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, "7000001", accounts[0].ID)
	assert.Equal(t, "Loja TikTok", accounts[0].Name)
}

func TestService_FetchCampaigns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campaign/get/", r.URL.Path)
		assert.Equal(t, "7000001", r.URL.Query().Get("advertiser_id"))

		fmt.Fprint(w, `{
			"code": 0,
			"message": "OK",
			"data": {
				"list": [
					{"campaign_id": "tk1", "campaign_name": "Lançamento", "operation_status": "ENABLE", "budget": 300.5, "budget_mode": "BUDGET_MODE_DAY"},
					{"campaign_id": "tk2", "campaign_name": "Remarketing", "operation_status": "DISABLE", "budget": 5000, "budget_mode": "BUDGET_MODE_TOTAL"}
				]
			}
		}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	campaigns, err := service.FetchCampaigns(context.Background(), "7000001")
	assert.NoError(t, err)
	assert.Len(t, campaigns, 2)

	assert.Equal(t, domain.CampaignStatusActive, campaigns[0].Status)
	assert.True(t, campaigns[0].IsActive)
	assert.Equal(t, "daily", campaigns[0].BudgetType)

	assert.Equal(t, domain.CampaignStatusPaused, campaigns[1].Status)
	assert.Equal(t, "lifetime", campaigns[1].BudgetType)
}

func TestService_FetchCampaignMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/report/integrated/get/", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		assert.Contains(t, r.URL.Query().Get("filters"), "tk1")

		fmt.Fprint(w, `{
			"code": 0,
			"message": "OK",
			"data": {
				"list": [
					{
						"dimensions": {"stat_time_day": "2024-01-15 00:00:00"},
						"metrics": {
							"impressions": "3200",
							"clicks": "140",
							"spend": "88.456",
							"conversion": "12",
							"total_purchase_value": "950.129"
						}
					}
				]
			}
		}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	result, err := service.FetchCampaignMetrics(context.Background(), "7000001", "tk1", start, end)
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	// Métricas chegam como string e stat_time_day com hora
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), result[0].Date)
	assert.Equal(t, int64(3200), result[0].Impressions)
	assert.Equal(t, int64(140), result[0].Clicks)
	assert.Equal(t, 88.46, result[0].Cost)
	assert.Equal(t, 12.0, result[0].Conversions)
	assert.Equal(t, 950.13, result[0].Revenue)
}

func TestService_UpdateCampaignStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/campaign/status/update/", r.URL.Path)

		fmt.Fprint(w, `{"code": 0, "message": "OK", "data": {"campaign_ids": ["tk1"]}}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	confirmed, err := service.UpdateCampaignStatus(context.Background(), "7000001", "tk1", true)
	assert.NoError(t, err)
	assert.True(t, confirmed)
}

func TestService_UpdateCampaignStatusNotConfirmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code": 0, "message": "OK", "data": {"campaign_ids": []}}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	confirmed, err := service.UpdateCampaignStatus(context.Background(), "7000001", "tk1", true)
	assert.NoError(t, err)
	assert.False(t, confirmed)
}

func TestService_EnvelopeErrorClassification(t *testing.T) {
	// A Business API responde HTTP 200 com code de erro no envelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code": 40105, "message": "Access token is invalid", "data": {}}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	_, err := service.FetchCampaigns(context.Background(), "7000001")
	assert.Error(t, err)

	var apiErr *integrator.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, apiErr.IsAuthError())
}
