package naverads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/pkg/utils"
)

const requestTimeout = 30 * time.Second

// Service integra com a Naver SearchAd API. O escopo é sempre um único
// customer, identificado pelo customer_id da credencial.
type Service struct {
	cfg         config.NaverAds
	httpClient  *http.Client
	credentials domain.CredentialBag
}

func NewService(cfg config.NaverAds) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (s *Service) Platform() domain.AdPlatform {
	return domain.PlatformNaver
}

func (s *Service) SetCredentials(credentials domain.CredentialBag) {
	s.credentials = credentials
}

func (s *Service) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
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

	req.Header.Set("Authorization", "Bearer "+s.credentials["access_token"])
	req.Header.Set("X-Customer", s.credentials["customer_id"])
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
			Platform:   domain.PlatformNaver,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

// FetchAccounts retorna o próprio customer da credencial. A SearchAd API não
// expõe hierarquia de contas como Google e Meta.
func (s *Service) FetchAccounts(ctx context.Context) ([]*domain.AccountInfo, error) {
	customerID := s.credentials["customer_id"]
	if customerID == "" {
		return nil, fmt.Errorf("credencial Naver sem customer_id")
	}

	name := s.credentials["customer_name"]
	if name == "" {
		name = customerID
	}

	return []*domain.AccountInfo{
		{
			ID:       customerID,
			Name:     name,
			Currency: "KRW",
			Status:   "ACTIVE",
		},
	}, nil
}

type naverCampaign struct {
	CampaignID  string  `json:"nccCampaignId"`
	Name        string  `json:"name"`
	UserLock    bool    `json:"userLock"`
	DailyBudget float64 `json:"dailyBudget"`
	Status      string  `json:"status"`
}

func (s *Service) FetchCampaigns(ctx context.Context, accountID string) ([]*domain.SyncedCampaign, error) {
	body, err := s.doRequest(ctx, http.MethodGet, "/ncc/campaigns", nil, nil)
	if err != nil {
		return nil, err
	}

	var items []naverCampaign
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaigns := make([]*domain.SyncedCampaign, 0, len(items))
	for _, item := range items {
		// userLock true significa campanha pausada pelo anunciante
		isActive := !item.UserLock && item.Status == "ELIGIBLE"
		status := domain.CampaignStatusPaused
		if isActive {
			status = domain.CampaignStatusActive
		}

		campaigns = append(campaigns, &domain.SyncedCampaign{
			Campaign: domain.Campaign{
				Platform:   domain.PlatformNaver,
				ExternalID: item.CampaignID,
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

type naverStatRow struct {
	DateStart   string  `json:"dateStart"`
	Impressions int64   `json:"impCnt"`
	Clicks      int64   `json:"clkCnt"`
	Cost        float64 `json:"salesAmt"`
	Conversions float64 `json:"ccnt"`
	Revenue     float64 `json:"convAmt"`
}

type naverStatsResponse struct {
	Data []naverStatRow `json:"data"`
}

func (s *Service) FetchCampaignMetrics(ctx context.Context, accountID, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error) {
	timeRange := fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	query := url.Values{}
	query.Add("id", campaignID)
	query.Add("fields", `["impCnt","clkCnt","salesAmt","ccnt","convAmt"]`)
	query.Add("timeRange", timeRange)
	query.Add("breakdown", "dateStart")

	body, err := s.doRequest(ctx, http.MethodGet, "/stats", query, nil)
	if err != nil {
		return nil, err
	}

	var response naverStatsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaignMetrics := make([]*domain.CampaignMetric, 0, len(response.Data))
	for _, row := range response.Data {
		date, err := utils.ParseDate(row.DateStart)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaignID).
				Warn("Data inválida nas estatísticas, ignorando a linha")
			continue
		}

		campaignMetrics = append(campaignMetrics, &domain.CampaignMetric{
			Platform:    domain.PlatformNaver,
			CampaignID:  campaignID,
			Date:        *date,
			Impressions: row.Impressions,
			Clicks:      row.Clicks,
			Cost:        utils.RoundWithTwoDecimalPlace(row.Cost),
			Conversions: row.Conversions,
			Revenue:     utils.RoundWithTwoDecimalPlace(row.Revenue),
		})
	}

	return campaignMetrics, nil
}

// UpdateCampaignStatus alterna o userLock da campanha, que é como a SearchAd
// API representa pausa manual
func (s *Service) UpdateCampaignStatus(ctx context.Context, accountID, campaignID string, isActive bool) (bool, error) {
	query := url.Values{}
	query.Add("fields", "userLock")

	payload := map[string]any{
		"nccCampaignId": campaignID,
		"userLock":      !isActive,
	}

	body, err := s.doRequest(ctx, http.MethodPut, "/ncc/campaigns/"+campaignID, query, payload)
	if err != nil {
		return false, err
	}

	var updated naverCampaign
	if err := json.Unmarshal(body, &updated); err != nil {
		return false, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return updated.UserLock == !isActive, nil
}
