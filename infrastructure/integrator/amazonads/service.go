package amazonads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/pkg/utils"
)

const requestTimeout = 30 * time.Second

// Service integra com a Amazon Ads API (Sponsored Products). O escopo das
// chamadas é o profile_id da credencial, enviado no header de escopo.
type Service struct {
	cfg         config.AmazonAds
	httpClient  *http.Client
	credentials domain.CredentialBag
}

func NewService(cfg config.AmazonAds) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (s *Service) Platform() domain.AdPlatform {
	return domain.PlatformAmazon
}

func (s *Service) SetCredentials(credentials domain.CredentialBag) {
	s.credentials = credentials
}

func (s *Service) doRequest(ctx context.Context, method, path, profileID string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar o payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.APIBaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.credentials["access_token"])
	req.Header.Set("Amazon-Advertising-API-ClientId", s.cfg.ClientID)
	req.Header.Set("Content-Type", "application/json")
	if profileID != "" {
		req.Header.Set("Amazon-Advertising-API-Scope", profileID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao fazer a requisição: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &integrator.APIError{
			Platform:   domain.PlatformAmazon,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

type profile struct {
	ProfileID    int64  `json:"profileId"`
	CountryCode  string `json:"countryCode"`
	CurrencyCode string `json:"currencyCode"`
	AccountInfo  struct {
		Name string `json:"name"`
	} `json:"accountInfo"`
}

func (s *Service) FetchAccounts(ctx context.Context) ([]*domain.AccountInfo, error) {
	body, err := s.doRequest(ctx, http.MethodGet, "/v2/profiles", "", nil)
	if err != nil {
		return nil, err
	}

	var profiles []profile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	accounts := make([]*domain.AccountInfo, 0, len(profiles))
	for _, p := range profiles {
		name := p.AccountInfo.Name
		if name == "" {
			name = fmt.Sprintf("Profile %d (%s)", p.ProfileID, p.CountryCode)
		}

		accounts = append(accounts, &domain.AccountInfo{
			ID:       strconv.FormatInt(p.ProfileID, 10),
			Name:     name,
			Currency: p.CurrencyCode,
			Status:   "ACTIVE",
		})
	}

	return accounts, nil
}

type amazonCampaign struct {
	CampaignID  int64   `json:"campaignId"`
	Name        string  `json:"name"`
	State       string  `json:"state"`
	DailyBudget float64 `json:"dailyBudget"`
}

func (s *Service) FetchCampaigns(ctx context.Context, accountID string) ([]*domain.SyncedCampaign, error) {
	body, err := s.doRequest(ctx, http.MethodGet, "/v2/sp/campaigns?stateFilter=enabled,paused", accountID, nil)
	if err != nil {
		return nil, err
	}

	var items []amazonCampaign
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaigns := make([]*domain.SyncedCampaign, 0, len(items))
	for _, item := range items {
		isActive := item.State == "enabled"
		status := domain.CampaignStatusPaused
		if isActive {
			status = domain.CampaignStatusActive
		}

		campaigns = append(campaigns, &domain.SyncedCampaign{
			Campaign: domain.Campaign{
				Platform:   domain.PlatformAmazon,
				ExternalID: strconv.FormatInt(item.CampaignID, 10),
				Name:       item.Name,
				Status:     status,
				IsActive:   isActive,
				Budget:     item.DailyBudget,
				BudgetType: "daily",
			},
		})
	}

	return campaigns, nil
}

type reportRow struct {
	Date         string  `json:"date"`
	CampaignID   int64   `json:"campaignId"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
	Cost         float64 `json:"cost"`
	Purchases    float64 `json:"purchases30d"`
	Sales        float64 `json:"sales30d"`
}

type reportResponse struct {
	Rows []reportRow `json:"rows"`
}

func (s *Service) FetchCampaignMetrics(ctx context.Context, accountID, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error) {
	payload := map[string]any{
		"startDate": startDate.Format("2006-01-02"),
		"endDate":   endDate.Format("2006-01-02"),
		"configuration": map[string]any{
			"adProduct":  "SPONSORED_PRODUCTS",
			"reportType": "spCampaigns",
			"groupBy":    []string{"campaign"},
			"columns":    []string{"date", "campaignId", "impressions", "clicks", "cost", "purchases30d", "sales30d"},
			"timeUnit":   "DAILY",
			"filters": []map[string]any{
				{"field": "campaignId", "values": []string{campaignID}},
			},
		},
	}

	body, err := s.doRequest(ctx, http.MethodPost, "/reporting/reports", accountID, payload)
	if err != nil {
		return nil, err
	}

	var response reportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaignMetrics := make([]*domain.CampaignMetric, 0, len(response.Rows))
	for _, row := range response.Rows {
		date, err := utils.ParseDate(row.Date)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaignID).
				Warn("Data inválida no relatório, ignorando a linha")
			continue
		}

		campaignMetrics = append(campaignMetrics, &domain.CampaignMetric{
			Platform:    domain.PlatformAmazon,
			CampaignID:  campaignID,
			Date:        *date,
			Impressions: row.Impressions,
			Clicks:      row.Clicks,
			Cost:        utils.RoundWithTwoDecimalPlace(row.Cost),
			Conversions: row.Purchases,
			Revenue:     utils.RoundWithTwoDecimalPlace(row.Sales),
		})
	}

	return campaignMetrics, nil
}

func (s *Service) UpdateCampaignStatus(ctx context.Context, accountID, campaignID string, isActive bool) (bool, error) {
	state := "paused"
	if isActive {
		state = "enabled"
	}

	id, err := strconv.ParseInt(campaignID, 10, 64)
	if err != nil {
		return false, fmt.Errorf("campaignId inválido para Amazon: %w", err)
	}

	payload := []map[string]any{
		{"campaignId": id, "state": state},
	}

	body, err := s.doRequest(ctx, http.MethodPut, "/v2/sp/campaigns", accountID, payload)
	if err != nil {
		return false, err
	}

	var results []struct {
		CampaignID int64  `json:"campaignId"`
		Code       string `json:"code"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		return false, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	for _, result := range results {
		if result.CampaignID == id {
			return result.Code == "SUCCESS", nil
		}
	}

	return false, nil
}
