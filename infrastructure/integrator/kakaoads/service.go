package kakaoads

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

// Service integra com a Kakao Moment API. Toda chamada é escopada por um
// adAccountId enviado em header próprio.
type Service struct {
	cfg         config.KakaoAds
	httpClient  *http.Client
	credentials domain.CredentialBag
}

func NewService(cfg config.KakaoAds) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (s *Service) Platform() domain.AdPlatform {
	return domain.PlatformKakao
}

func (s *Service) SetCredentials(credentials domain.CredentialBag) {
	s.credentials = credentials
}

func (s *Service) doRequest(ctx context.Context, method, path, adAccountID string, query url.Values, payload any) ([]byte, error) {
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
	req.Header.Set("Content-Type", "application/json")
	if adAccountID != "" {
		req.Header.Set("adAccountId", adAccountID)
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
			Platform:   domain.PlatformKakao,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

type adAccountsResponse struct {
	Content []struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"content"`
}

func (s *Service) FetchAccounts(ctx context.Context) ([]*domain.AccountInfo, error) {
	body, err := s.doRequest(ctx, http.MethodGet, "/openapi/v4/adAccounts", "", nil, nil)
	if err != nil {
		return nil, err
	}

	var response adAccountsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	accounts := make([]*domain.AccountInfo, 0, len(response.Content))
	for _, account := range response.Content {
		accounts = append(accounts, &domain.AccountInfo{
			ID:       strconv.FormatInt(account.ID, 10),
			Name:     account.Name,
			Currency: "KRW",
			Status:   account.Status,
		})
	}

	return accounts, nil
}

type kakaoCampaign struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Config      string `json:"config"`
	Status      string `json:"status"`
	DailyBudget int64  `json:"dailyBudgetAmount"`
}

type campaignsResponse struct {
	Content []kakaoCampaign `json:"content"`
}

func (s *Service) FetchCampaigns(ctx context.Context, accountID string) ([]*domain.SyncedCampaign, error) {
	body, err := s.doRequest(ctx, http.MethodGet, "/openapi/v4/campaigns", accountID, nil, nil)
	if err != nil {
		return nil, err
	}

	var response campaignsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaigns := make([]*domain.SyncedCampaign, 0, len(response.Content))
	for _, item := range response.Content {
		// config ON/OFF é o liga-desliga do anunciante
		isActive := item.Config == "ON"
		status := domain.CampaignStatusPaused
		if isActive {
			status = domain.CampaignStatusActive
		}

		campaigns = append(campaigns, &domain.SyncedCampaign{
			Campaign: domain.Campaign{
				Platform:   domain.PlatformKakao,
				ExternalID: strconv.FormatInt(item.ID, 10),
				Name:       item.Name,
				Status:     status,
				IsActive:   isActive,
				Budget:     float64(item.DailyBudget),
				BudgetType: "daily",
			},
		})
	}

	return campaigns, nil
}

type kakaoReportRow struct {
	Start   string `json:"start"`
	Metrics struct {
		Impressions   int64   `json:"imp"`
		Clicks        int64   `json:"click"`
		Cost          float64 `json:"cost"`
		Conversions   float64 `json:"convPurchase"`
		PurchaseValue float64 `json:"convPurchaseValue"`
	} `json:"metrics"`
}

type reportResponse struct {
	Data []kakaoReportRow `json:"data"`
}

func (s *Service) FetchCampaignMetrics(ctx context.Context, accountID, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error) {
	query := url.Values{}
	query.Add("dimension", "CAMPAIGN")
	query.Add("ids", campaignID)
	query.Add("start", startDate.Format("2006-01-02"))
	query.Add("end", endDate.Format("2006-01-02"))
	query.Add("timeUnit", "DAY")
	query.Add("metricsGroups", "BASIC,CONVERSION")

	body, err := s.doRequest(ctx, http.MethodGet, "/openapi/v4/campaigns/report", accountID, query, nil)
	if err != nil {
		return nil, err
	}

	var response reportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaignMetrics := make([]*domain.CampaignMetric, 0, len(response.Data))
	for _, row := range response.Data {
		date, err := utils.ParseDate(row.Start)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaignID).
				Warn("Data inválida no relatório, ignorando a linha")
			continue
		}

		campaignMetrics = append(campaignMetrics, &domain.CampaignMetric{
			Platform:    domain.PlatformKakao,
			CampaignID:  campaignID,
			Date:        *date,
			Impressions: row.Metrics.Impressions,
			Clicks:      row.Metrics.Clicks,
			Cost:        utils.RoundWithTwoDecimalPlace(row.Metrics.Cost),
			Conversions: row.Metrics.Conversions,
			Revenue:     utils.RoundWithTwoDecimalPlace(row.Metrics.PurchaseValue),
		})
	}

	return campaignMetrics, nil
}

func (s *Service) UpdateCampaignStatus(ctx context.Context, accountID, campaignID string, isActive bool) (bool, error) {
	onOff := "OFF"
	if isActive {
		onOff = "ON"
	}

	payload := map[string]string{"config": onOff}

	body, err := s.doRequest(ctx, http.MethodPut, "/openapi/v4/campaigns/"+campaignID+"/onOff", accountID, nil, payload)
	if err != nil {
		return false, err
	}

	var updated kakaoCampaign
	if err := json.Unmarshal(body, &updated); err != nil {
		return false, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return updated.Config == onOff, nil
}
