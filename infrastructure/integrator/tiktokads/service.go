package tiktokads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/pkg/utils"
)

const requestTimeout = 30 * time.Second

// Service integra com a TikTok Business API. As respostas vêm sempre em um
// envelope {code, message, data}; code diferente de zero é erro mesmo com
// HTTP 200.
type Service struct {
	cfg         config.TikTokAds
	httpClient  *http.Client
	credentials domain.CredentialBag
}

func NewService(cfg config.TikTokAds) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (s *Service) Platform() domain.AdPlatform {
	return domain.PlatformTikTok
}

func (s *Service) SetCredentials(credentials domain.CredentialBag) {
	s.credentials = credentials
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *Service) doRequest(ctx context.Context, method, path string, query url.Values, payload any) (json.RawMessage, error) {
	requestURL := s.cfg.APIBaseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar o payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Access-Token", s.credentials["access_token"])
	req.Header.Set("Content-Type", "application/json")

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
			Platform:   domain.PlatformTikTok,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	if env.Code != 0 {
		statusCode := http.StatusBadRequest
		// 401xx são os códigos de autenticação da Business API
		if env.Code >= 40100 && env.Code < 40200 {
			statusCode = http.StatusUnauthorized
		}
		return nil, &integrator.APIError{
			Platform:   domain.PlatformTikTok,
			StatusCode: statusCode,
			Body:       string(respBody),
		}
	}

	return env.Data, nil
}

type advertisersData struct {
	List []struct {
		AdvertiserID   string `json:"advertiser_id"`
		AdvertiserName string `json:"advertiser_name"`
	} `json:"list"`
}

func (s *Service) FetchAccounts(ctx context.Context) ([]*domain.AccountInfo, error) {
	query := url.Values{}
	query.Add("app_id", s.cfg.AppID)
	query.Add("secret", s.cfg.AppSecret)

	data, err := s.doRequest(ctx, http.MethodGet, "/oauth2/advertiser/get/", query, nil)
	if err != nil {
		return nil, err
	}

	var response advertisersData
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	accounts := make([]*domain.AccountInfo, 0, len(response.List))
	for _, advertiser := range response.List {
		accounts = append(accounts, &domain.AccountInfo{
			ID:     advertiser.AdvertiserID,
			Name:   advertiser.AdvertiserName,
			Status: "ACTIVE",
		})
	}

	return accounts, nil
}

type campaignsData struct {
	List []struct {
		CampaignID      string  `json:"campaign_id"`
		CampaignName    string  `json:"campaign_name"`
		OperationStatus string  `json:"operation_status"`
		Budget          float64 `json:"budget"`
		BudgetMode      string  `json:"budget_mode"`
	} `json:"list"`
}

func (s *Service) FetchCampaigns(ctx context.Context, accountID string) ([]*domain.SyncedCampaign, error) {
	query := url.Values{}
	query.Add("advertiser_id", accountID)
	query.Add("page_size", "100")

	data, err := s.doRequest(ctx, http.MethodGet, "/campaign/get/", query, nil)
	if err != nil {
		return nil, err
	}

	var response campaignsData
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaigns := make([]*domain.SyncedCampaign, 0, len(response.List))
	for _, item := range response.List {
		isActive := item.OperationStatus == "ENABLE"
		status := domain.CampaignStatusPaused
		if isActive {
			status = domain.CampaignStatusActive
		}

		budgetType := "daily"
		if item.BudgetMode == "BUDGET_MODE_TOTAL" {
			budgetType = "lifetime"
		}

		campaigns = append(campaigns, &domain.SyncedCampaign{
			Campaign: domain.Campaign{
				Platform:   domain.PlatformTikTok,
				ExternalID: item.CampaignID,
				Name:       item.CampaignName,
				Status:     status,
				IsActive:   isActive,
				Budget:     item.Budget,
				BudgetType: budgetType,
			},
		})
	}

	return campaigns, nil
}

type reportData struct {
	List []struct {
		Dimensions struct {
			StatTimeDay string `json:"stat_time_day"`
		} `json:"dimensions"`
		Metrics struct {
			Impressions        string `json:"impressions"`
			Clicks             string `json:"clicks"`
			Spend              string `json:"spend"`
			Conversion         string `json:"conversion"`
			TotalPurchaseValue string `json:"total_purchase_value"`
		} `json:"metrics"`
	} `json:"list"`
}

func (s *Service) FetchCampaignMetrics(ctx context.Context, accountID, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error) {
	query := url.Values{}
	query.Add("advertiser_id", accountID)
	query.Add("report_type", "BASIC")
	query.Add("data_level", "AUCTION_CAMPAIGN")
	query.Add("dimensions", `["campaign_id","stat_time_day"]`)
	query.Add("metrics", `["impressions","clicks","spend","conversion","total_purchase_value"]`)
	query.Add("filters", fmt.Sprintf(`[{"field_name":"campaign_ids","filter_type":"IN","filter_value":"[\"%s\"]"}]`, campaignID))
	query.Add("start_date", startDate.Format("2006-01-02"))
	query.Add("end_date", endDate.Format("2006-01-02"))

	data, err := s.doRequest(ctx, http.MethodGet, "/report/integrated/get/", query, nil)
	if err != nil {
		return nil, err
	}

	var response reportData
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaignMetrics := make([]*domain.CampaignMetric, 0, len(response.List))
	for _, row := range response.List {
		// stat_time_day vem como "2024-01-15 00:00:00"
		dateText := row.Dimensions.StatTimeDay
		if len(dateText) >= 10 {
			dateText = dateText[:10]
		}

		date, err := utils.ParseDate(dateText)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaignID).
				Warn("Data inválida no relatório, ignorando a linha")
			continue
		}

		campaignMetrics = append(campaignMetrics, &domain.CampaignMetric{
			Platform:    domain.PlatformTikTok,
			CampaignID:  campaignID,
			Date:        *date,
			Impressions: parseInt(row.Metrics.Impressions),
			Clicks:      parseInt(row.Metrics.Clicks),
			Cost:        utils.RoundWithTwoDecimalPlace(parseFloat(row.Metrics.Spend)),
			Conversions: parseFloat(row.Metrics.Conversion),
			Revenue:     utils.RoundWithTwoDecimalPlace(parseFloat(row.Metrics.TotalPurchaseValue)),
		})
	}

	return campaignMetrics, nil
}

func (s *Service) UpdateCampaignStatus(ctx context.Context, accountID, campaignID string, isActive bool) (bool, error) {
	operationStatus := "DISABLE"
	if isActive {
		operationStatus = "ENABLE"
	}

	payload := map[string]any{
		"advertiser_id":    accountID,
		"campaign_ids":     []string{campaignID},
		"operation_status": operationStatus,
	}

	data, err := s.doRequest(ctx, http.MethodPost, "/campaign/status/update/", nil, payload)
	if err != nil {
		return false, err
	}

	var response struct {
		CampaignIDs []string `json:"campaign_ids"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		return false, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	for _, id := range response.CampaignIDs {
		if id == campaignID {
			return true, nil
		}
	}

	return false, nil
}

// A Business API serializa métricas numéricas como string
func parseInt(value string) int64 {
	parsed, _ := strconv.ParseInt(value, 10, 64)
	return parsed
}

func parseFloat(value string) float64 {
	parsed, _ := strconv.ParseFloat(value, 64)
	return parsed
}
