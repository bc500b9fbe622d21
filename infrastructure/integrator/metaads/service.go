package metaads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/pkg/utils"
)

const (
	requestTimeout = 30 * time.Second

	// Limite da Graph API para operações em lote de campanhas
	batchSize = 10

	// Pausa fixa entre lotes para não estourar o rate limit
	batchDelay = time.Second
)

// Service integra com a Meta Marketing API (Graph)
type Service struct {
	cfg         config.MetaAds
	httpClient  *http.Client
	credentials domain.CredentialBag
}

func NewService(cfg config.MetaAds) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (s *Service) Platform() domain.AdPlatform {
	return domain.PlatformMeta
}

func (s *Service) SetCredentials(credentials domain.CredentialBag) {
	s.credentials = credentials
}

func (s *Service) accessToken() string {
	return s.credentials["access_token"]
}

func (s *Service) doRequest(ctx context.Context, method, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao fazer a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &integrator.APIError{
			Platform:   domain.PlatformMeta,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return body, nil
}

type adAccountsResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		AccountStatus int    `json:"account_status"`
		Currency      string `json:"currency"`
	} `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// FetchAccounts lista as contas de anúncio acessíveis pelo token via /me/adaccounts
func (s *Service) FetchAccounts(ctx context.Context) ([]*domain.AccountInfo, error) {
	params := url.Values{}
	params.Add("fields", "id,name,account_status,currency")
	params.Add("access_token", s.accessToken())

	requestURL := fmt.Sprintf("%s/me/adaccounts?%s", s.cfg.URL, params.Encode())

	accounts := make([]*domain.AccountInfo, 0)

	for requestURL != "" {
		body, err := s.doRequest(ctx, http.MethodGet, requestURL)
		if err != nil {
			return nil, err
		}

		var response adAccountsResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
		}

		for _, account := range response.Data {
			status := "DISABLED"
			if account.AccountStatus == 1 {
				status = "ACTIVE"
			}

			accounts = append(accounts, &domain.AccountInfo{
				// A Graph API devolve IDs com prefixo act_
				ID:       strings.TrimPrefix(account.ID, "act_"),
				Name:     account.Name,
				Currency: account.Currency,
				Status:   status,
			})
		}

		requestURL = response.Paging.Next
	}

	return accounts, nil
}

type campaignsResponse struct {
	Data []struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		EffectiveStatus string `json:"effective_status"`
		DailyBudget     string `json:"daily_budget"`
		LifetimeBudget  string `json:"lifetime_budget"`
	} `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

func (s *Service) FetchCampaigns(ctx context.Context, accountID string) ([]*domain.SyncedCampaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,effective_status,daily_budget,lifetime_budget")
	params.Add("access_token", s.accessToken())

	requestURL := fmt.Sprintf("%s/act_%s/campaigns?%s", s.cfg.URL, accountID, params.Encode())

	campaigns := make([]*domain.SyncedCampaign, 0)

	for requestURL != "" {
		body, err := s.doRequest(ctx, http.MethodGet, requestURL)
		if err != nil {
			return nil, err
		}

		var response campaignsResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
		}

		for _, item := range response.Data {
			isActive := item.EffectiveStatus == "ACTIVE"
			status := domain.CampaignStatusPaused
			if isActive {
				status = domain.CampaignStatusActive
			}

			// Orçamentos da Graph API chegam em centavos
			budget, budgetType := parseBudget(item.DailyBudget, item.LifetimeBudget)

			campaigns = append(campaigns, &domain.SyncedCampaign{
				Campaign: domain.Campaign{
					Platform:   domain.PlatformMeta,
					ExternalID: item.ID,
					Name:       item.Name,
					Status:     status,
					IsActive:   isActive,
					Budget:     budget,
					BudgetType: budgetType,
				},
			})
		}

		requestURL = response.Paging.Next
	}

	return campaigns, nil
}

func parseBudget(daily, lifetime string) (float64, string) {
	if daily != "" {
		return centsToCurrency(daily), "daily"
	}
	if lifetime != "" {
		return centsToCurrency(lifetime), "lifetime"
	}
	return 0, ""
}

func centsToCurrency(value string) float64 {
	cents, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(cents) / 100)
}

type insightsResponse struct {
	Data []struct {
		DateStart   string `json:"date_start"`
		Impressions string `json:"impressions"`
		Clicks      string `json:"clicks"`
		Spend       string `json:"spend"`
		Actions     []struct {
			ActionType string `json:"action_type"`
			Value      string `json:"value"`
		} `json:"actions"`
		ActionValues []struct {
			ActionType string `json:"action_type"`
			Value      string `json:"value"`
		} `json:"action_values"`
	} `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

func (s *Service) FetchCampaignMetrics(ctx context.Context, accountID, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error) {
	timeRange := fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	params := url.Values{}
	params.Add("fields", "date_start,impressions,clicks,spend,actions,action_values")
	params.Add("time_range", timeRange)
	params.Add("time_increment", "1")
	params.Add("access_token", s.accessToken())

	requestURL := fmt.Sprintf("%s/%s/insights?%s", s.cfg.URL, campaignID, params.Encode())

	campaignMetrics := make([]*domain.CampaignMetric, 0)

	for requestURL != "" {
		body, err := s.doRequest(ctx, http.MethodGet, requestURL)
		if err != nil {
			return nil, err
		}

		var response insightsResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
		}

		for _, item := range response.Data {
			date, err := utils.ParseDate(item.DateStart)
			if err != nil {
				logrus.WithError(err).WithField("campaign_id", campaignID).
					Warn("Data inválida nos insights, ignorando a linha")
				continue
			}

			var conversions, revenue float64
			for _, action := range item.Actions {
				if action.ActionType == "purchase" {
					conversions, _ = strconv.ParseFloat(action.Value, 64)
				}
			}
			for _, actionValue := range item.ActionValues {
				if actionValue.ActionType == "purchase" {
					revenue, _ = strconv.ParseFloat(actionValue.Value, 64)
				}
			}

			impressions, _ := strconv.ParseInt(item.Impressions, 10, 64)
			clicks, _ := strconv.ParseInt(item.Clicks, 10, 64)
			spend, _ := strconv.ParseFloat(item.Spend, 64)

			campaignMetrics = append(campaignMetrics, &domain.CampaignMetric{
				Platform:    domain.PlatformMeta,
				CampaignID:  campaignID,
				Date:        *date,
				Impressions: impressions,
				Clicks:      clicks,
				Cost:        utils.RoundWithTwoDecimalPlace(spend),
				Conversions: conversions,
				Revenue:     utils.RoundWithTwoDecimalPlace(revenue),
			})
		}

		requestURL = response.Paging.Next
	}

	return campaignMetrics, nil
}

type statusUpdateResponse struct {
	Success bool `json:"success"`
}

func (s *Service) UpdateCampaignStatus(ctx context.Context, accountID, campaignID string, isActive bool) (bool, error) {
	status := "PAUSED"
	if isActive {
		status = "ACTIVE"
	}

	params := url.Values{}
	params.Add("status", status)
	params.Add("access_token", s.accessToken())

	requestURL := fmt.Sprintf("%s/%s?%s", s.cfg.URL, campaignID, params.Encode())

	body, err := s.doRequest(ctx, http.MethodPost, requestURL)
	if err != nil {
		return false, err
	}

	var response statusUpdateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return false, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return response.Success, nil
}

// BatchUpdateCampaignStatus atualiza o status em lotes de 10 campanhas com
// pausa fixa entre lotes. Falhas individuais não interrompem os lotes
// seguintes, apenas entram na contagem de falhas.
func (s *Service) BatchUpdateCampaignStatus(ctx context.Context, accountID string, campaignIDs []string, isActive bool) (*integrator.BatchResult, error) {
	result := &integrator.BatchResult{}

	for start := 0; start < len(campaignIDs); start += batchSize {
		end := start + batchSize
		if end > len(campaignIDs) {
			end = len(campaignIDs)
		}

		for _, campaignID := range campaignIDs[start:end] {
			confirmed, err := s.UpdateCampaignStatus(ctx, accountID, campaignID, isActive)
			if err != nil || !confirmed {
				result.Failed++
				if err != nil {
					result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", campaignID, err))
				} else {
					result.Errors = append(result.Errors, fmt.Sprintf("%s: plataforma não confirmou a mudança", campaignID))
				}
				continue
			}
			result.Succeeded++
		}

		if end < len(campaignIDs) {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(batchDelay):
			}
		}
	}

	return result, nil
}
