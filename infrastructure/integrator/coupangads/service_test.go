package coupangads

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
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

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestService(serverURL string) *Service {
	service := NewService(config.CoupangAds{
		APIBaseURL: serverURL,
	})
	service.SetCredentials(domain.CredentialBag{
		"access_key": "chave-acesso",
		"secret_key": "chave-secreta",
		"vendor_id":  "A00123456",
	})
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestService_Sign(t *testing.T) {
	service := newTestService("http://coupang.local")

	// O formato CEA exige a data em 060102T150405Z e o HMAC-SHA256 sobre
	// data + método + caminho + query string
	signedDate := "240615T103000Z"
	mac := hmac.New(sha256.New, []byte("chave-secreta"))
	mac.Write([]byte(signedDate + "GET" + "/v1/campaigns" + "vendorId=A00123456"))
	expected := fmt.Sprintf(
		"CEA algorithm=HmacSHA256, access-key=chave-acesso, signed-date=%s, signature=%s",
		signedDate, hex.EncodeToString(mac.Sum(nil)),
	)

	assert.Equal(t, expected, service.sign(http.MethodGet, "/v1/campaigns", "vendorId=A00123456"))
}

func TestService_SignFallsBackToConfigKeys(t *testing.T) {
	service := NewService(config.CoupangAds{
		AccessKey: "global-access",
		SecretKey: "global-secret",
	})
	service.SetCredentials(domain.CredentialBag{"vendor_id": "A00123456"})
	service.now = func() time.Time { return fixedNow }

	assert.Contains(t, service.sign(http.MethodGet, "/v1/campaigns", ""), "access-key=global-access")
}

func TestService_FetchAccounts(t *testing.T) {
	service := newTestService("http://coupang.local")

	accounts, err := service.FetchAccounts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, accounts, 1)

	// Sem vendor_name o ID vira o nome da conta
	assert.Equal(t, "A00123456", accounts[0].ID)
	assert.Equal(t, "A00123456", accounts[0].Name)
	assert.Equal(t, "KRW", accounts[0].Currency)
}

func TestService_FetchAccountsWithoutVendor(t *testing.T) {
	service := NewService(config.CoupangAds{})
	service.SetCredentials(domain.CredentialBag{})

	_, err := service.FetchAccounts(context.Background())
	assert.Error(t, err)
}

func TestService_FetchCampaigns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/campaigns", r.URL.Path)
		assert.Equal(t, "A00123456", r.URL.Query().Get("vendorId"))
		assert.Contains(t, r.Header.Get("Authorization"), "CEA algorithm=HmacSHA256")

		fmt.Fprint(w, `{
			"data": [
				{"campaignId": "cp1", "title": "Rocket Growth", "status": "ACTIVE", "budget": 50000, "budgetType": "daily"},
				{"campaignId": "cp2", "title": "Brand", "status": "PAUSED", "budget": 200000, "budgetType": "lifetime"}
			]
		}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	campaigns, err := service.FetchCampaigns(context.Background(), "A00123456")
	assert.NoError(t, err)
	assert.Len(t, campaigns, 2)

	assert.Equal(t, domain.CampaignStatusActive, campaigns[0].Status)
	assert.True(t, campaigns[0].IsActive)
	assert.Equal(t, 50000.0, campaigns[0].Budget)

	assert.Equal(t, domain.CampaignStatusPaused, campaigns[1].Status)
	assert.False(t, campaigns[1].IsActive)
}

func TestService_FetchCampaignMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/reports/campaigns", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("startDate"))

		fmt.Fprint(w, `{
			"data": [
				{"date": "2024-01-10", "impressions": 1500, "clicks": 60, "adSpend": 32000.456, "orders": 8, "salesAmount": 410000.119},
				{"date": "nao-e-data", "impressions": 1, "clicks": 1, "adSpend": 1, "orders": 1, "salesAmount": 1}
			]
		}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	result, err := service.FetchCampaignMetrics(context.Background(), "A00123456", "cp1", start, end)
	assert.NoError(t, err)

	// Linha com data inválida é ignorada
	assert.Len(t, result, 1)
	assert.Equal(t, int64(1500), result[0].Impressions)
	assert.Equal(t, 32000.46, result[0].Cost)
	assert.Equal(t, 8.0, result[0].Conversions)
	assert.Equal(t, 410000.12, result[0].Revenue)
}

func TestService_UpdateCampaignStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/campaigns/cp1/status", r.URL.Path)

		fmt.Fprint(w, `{"campaignId": "cp1", "status": "PAUSED"}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	confirmed, err := service.UpdateCampaignStatus(context.Background(), "A00123456", "cp1", false)
	assert.NoError(t, err)
	assert.True(t, confirmed)
}

func TestService_APIErrorOnNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "invalid signature"}`)
	}))
	defer server.Close()

	service := newTestService(server.URL)

	_, err := service.FetchCampaigns(context.Background(), "A00123456")
	assert.Error(t, err)

	var apiErr *integrator.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsAuthError())
}
