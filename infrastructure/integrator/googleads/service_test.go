package googleads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

func newTestService(serverURL string) *Service {
	service := NewService(config.GoogleAds{
		APIBaseURL:      serverURL,
		APIVersion:      "v17",
		DeveloperToken:  "dev-token",
		LoginCustomerID: "111-222-3333",
	})
	service.SetCredentials(domain.CredentialBag{"access_token": "token-abc"})
	return service
}

func TestService_FetchCampaigns(t *testing.T) {
	var capturedHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		assert.Equal(t, "/v17/customers/1234567890/googleAds:search", r.URL.Path)

		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)

		// Segunda consulta do fetch: métricas diárias da janela de lookback
		if strings.Contains(payload["query"], "segments.date") {
			_ = json.NewEncoder(w).Encode(searchResponse{
				Results: []searchResult{
					{
						Campaign: &campaign{ID: "901"},
						Metrics:  &metrics{Impressions: "1000", Clicks: "80", CostMicros: "25000000", Conversions: 2, ConversionsValue: 99.9},
						Segments: &segments{Date: "2024-01-10"},
					},
					{
						Campaign: &campaign{ID: "901"},
						Metrics:  &metrics{Impressions: "500", Clicks: "40", CostMicros: "12500000"},
						Segments: &segments{Date: "2024-01-11"},
					},
				},
			})
			return
		}

		_ = json.NewEncoder(w).Encode(searchResponse{
			Results: []searchResult{
				{
					Campaign:       &campaign{ID: "901", Name: "Brand", Status: "ENABLED"},
					CampaignBudget: &campaignBudget{AmountMicros: "15000000", Type: "STANDARD"},
				},
				{
					Campaign: &campaign{ID: "902", Name: "Retargeting", Status: "PAUSED"},
				},
			},
		})
	}))
	defer server.Close()

	service := newTestService(server.URL)

	// O customer ID chega com traços e deve ser normalizado na URL
	campaigns, err := service.FetchCampaigns(context.Background(), "123-456-7890")
	assert.NoError(t, err)
	assert.Len(t, campaigns, 2)

	assert.Equal(t, "Bearer token-abc", capturedHeaders.Get("Authorization"))
	assert.Equal(t, "dev-token", capturedHeaders.Get("developer-token"))
	assert.Equal(t, "1112223333", capturedHeaders.Get("login-customer-id"))

	assert.Equal(t, "901", campaigns[0].ExternalID)
	assert.Equal(t, domain.CampaignStatusActive, campaigns[0].Status)
	assert.True(t, campaigns[0].IsActive)
	assert.Equal(t, 15.0, campaigns[0].Budget)

	// Métricas da janela vêm anexadas na mesma chamada, agrupadas por campanha
	assert.Len(t, campaigns[0].Metrics, 2)
	assert.Equal(t, "901", campaigns[0].Metrics[0].CampaignID)
	assert.Equal(t, int64(1000), campaigns[0].Metrics[0].Impressions)
	assert.Equal(t, 25.0, campaigns[0].Metrics[0].Cost)
	assert.Equal(t, 99.9, campaigns[0].Metrics[0].Revenue)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), campaigns[0].Metrics[0].Date)

	assert.Equal(t, domain.CampaignStatusPaused, campaigns[1].Status)
	assert.False(t, campaigns[1].IsActive)
	// Campanha sem linha de métricas na janela segue sem métricas anexadas
	assert.Empty(t, campaigns[1].Metrics)
}

func TestService_FetchCampaignsSemMetricas(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)

		if strings.Contains(payload["query"], "segments.date") {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "metrics not available"}`))
			return
		}

		_ = json.NewEncoder(w).Encode(searchResponse{
			Results: []searchResult{
				{Campaign: &campaign{ID: "901", Name: "Brand", Status: "ENABLED"}},
			},
		})
	}))
	defer server.Close()

	service := newTestService(server.URL)

	// Falha na consulta de métricas não derruba o fetch de campanhas
	campaigns, err := service.FetchCampaigns(context.Background(), "1234567890")
	assert.NoError(t, err)
	assert.Len(t, campaigns, 1)
	assert.Empty(t, campaigns[0].Metrics)
}

func TestService_FetchAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "customers:listAccessibleCustomers") {
			_ = json.NewEncoder(w).Encode(listAccessibleCustomersResponse{
				ResourceNames: []string{"customers/100", "customers/200"},
			})
			return
		}

		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)

		// A conta 200 não tem subárvore: rejeita customer_client e se
		// descreve pela consulta de customer
		if strings.Contains(r.URL.Path, "customers/200") {
			if strings.Contains(payload["query"], "customer_client") {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error": "query not allowed"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(searchResponse{
				Results: []searchResult{
					{Customer: &customer{ID: "200"}},
				},
			})
			return
		}

		_ = json.NewEncoder(w).Encode(searchResponse{
			Results: []searchResult{
				{CustomerClient: &customerClient{ID: "101", DescriptiveName: "Loja B", CurrencyCode: "BRL", Status: "ENABLED", Manager: false}},
				{CustomerClient: &customerClient{ID: "102", DescriptiveName: "MCC Principal", CurrencyCode: "BRL", Status: "ENABLED", Manager: true}},
				// Duplicada na própria árvore, deve ser ignorada
				{CustomerClient: &customerClient{ID: "101", DescriptiveName: "Loja B", Manager: false}},
			},
		})
	}))
	defer server.Close()

	service := newTestService(server.URL)

	accounts, err := service.FetchAccounts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, accounts, 3)

	// Gerenciadora primeiro, depois as demais em ordem alfabética
	assert.Equal(t, "102", accounts[0].ID)
	assert.True(t, accounts[0].IsManager)
	// Conta sem nome descritivo usa o próprio ID como nome
	assert.Equal(t, "200", accounts[1].ID)
	assert.Equal(t, "200", accounts[1].Name)
	assert.Equal(t, "101", accounts[2].ID)
	assert.Equal(t, "Loja B", accounts[2].Name)
}

func TestService_FetchCampaignMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		assert.Contains(t, payload["query"], "BETWEEN '2024-01-01' AND '2024-01-31'")

		_ = json.NewEncoder(w).Encode(searchResponse{
			Results: []searchResult{
				{
					Metrics: &metrics{
						Impressions:      "1500",
						Clicks:           "120",
						CostMicros:       "37500000",
						Conversions:      4,
						ConversionsValue: 199.9,
					},
					Segments: &segments{Date: "2024-01-15"},
				},
			},
		})
	}))
	defer server.Close()

	service := newTestService(server.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	result, err := service.FetchCampaignMetrics(context.Background(), "1234567890", "901", start, end)
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	assert.Equal(t, int64(1500), result[0].Impressions)
	assert.Equal(t, int64(120), result[0].Clicks)
	assert.Equal(t, 37.5, result[0].Cost)
	assert.Equal(t, 199.9, result[0].Revenue)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), result[0].Date)
}

func TestService_UpdateCampaignStatus(t *testing.T) {
	var capturedRequest mutateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v17/customers/1234567890/campaigns:mutate", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&capturedRequest)

		_ = json.NewEncoder(w).Encode(mutateResponse{
			Results: []struct {
				ResourceName string `json:"resourceName"`
			}{{ResourceName: "customers/1234567890/campaigns/901"}},
		})
	}))
	defer server.Close()

	service := newTestService(server.URL)

	confirmed, err := service.UpdateCampaignStatus(context.Background(), "1234567890", "901", false)
	assert.NoError(t, err)
	assert.True(t, confirmed)

	assert.Len(t, capturedRequest.Operations, 1)
	assert.Equal(t, "PAUSED", capturedRequest.Operations[0].Update.Status)
	assert.Equal(t, "status", capturedRequest.Operations[0].UpdateMask)
	assert.Equal(t, "customers/1234567890/campaigns/901", capturedRequest.Operations[0].Update.ResourceName)
}

func TestService_AuthErrorClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"status": "UNAUTHENTICATED"}}`))
	}))
	defer server.Close()

	service := newTestService(server.URL)

	_, err := service.FetchCampaigns(context.Background(), "1234567890")
	assert.Error(t, err)

	var apiErr *integrator.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, domain.PlatformGoogle, apiErr.Platform)
	assert.True(t, apiErr.IsAuthError())
}
