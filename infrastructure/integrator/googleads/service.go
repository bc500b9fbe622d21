package googleads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/pkg/utils"
)

const requestTimeout = 30 * time.Second

// Service integra com a Google Ads API (REST). Contas MCC são expandidas
// pela árvore de customer_client.
type Service struct {
	cfg         config.GoogleAds
	httpClient  *http.Client
	credentials domain.CredentialBag
}

func NewService(cfg config.GoogleAds) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (s *Service) Platform() domain.AdPlatform {
	return domain.PlatformGoogle
}

func (s *Service) SetCredentials(credentials domain.CredentialBag) {
	s.credentials = credentials
}

func (s *Service) accessToken() string {
	return s.credentials["access_token"]
}

// loginCustomerID prefere o customer ID configurado na credencial e cai no
// LoginCustomerID global quando ausente
func (s *Service) loginCustomerID() string {
	if id := s.credentials["login_customer_id"]; id != "" {
		return normalizeCustomerID(id)
	}
	return normalizeCustomerID(s.cfg.LoginCustomerID)
}

// normalizeCustomerID remove os traços do formato 123-456-7890
func normalizeCustomerID(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

func (s *Service) doRequest(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar o payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.accessToken())
	req.Header.Set("developer-token", s.cfg.DeveloperToken)
	req.Header.Set("Content-Type", "application/json")
	if loginID := s.loginCustomerID(); loginID != "" {
		req.Header.Set("login-customer-id", loginID)
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
			Platform:   domain.PlatformGoogle,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

func (s *Service) search(ctx context.Context, customerID, query string) ([]searchResult, error) {
	url := fmt.Sprintf("%s/%s/customers/%s/googleAds:search",
		s.cfg.APIBaseURL, s.cfg.APIVersion, normalizeCustomerID(customerID))

	results := make([]searchResult, 0)
	pageToken := ""

	for {
		payload := map[string]string{"query": query}
		if pageToken != "" {
			payload["pageToken"] = pageToken
		}

		body, err := s.doRequest(ctx, http.MethodPost, url, payload)
		if err != nil {
			return nil, err
		}

		var response searchResponse
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
		}

		results = append(results, response.Results...)

		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}

	return results, nil
}

const customerClientQuery = `
	SELECT
		customer_client.id,
		customer_client.descriptive_name,
		customer_client.currency_code,
		customer_client.status,
		customer_client.manager,
		customer_client.level
	FROM customer_client
	WHERE customer_client.status = 'ENABLED'`

// Fallback para contas que rejeitam a consulta de customer_client, o que
// acontece em contas sem subárvore ou com permissões restritas. A conta se
// descreve sozinha pelo recurso customer.
const customerSelfQuery = `
	SELECT customer.id, customer.descriptive_name
	FROM customer`

// FetchAccounts lista as contas acessíveis e expande a árvore de clientes de
// cada MCC. O resultado é deduplicado e ordenado com gerenciadoras primeiro.
func (s *Service) FetchAccounts(ctx context.Context) ([]*domain.AccountInfo, error) {
	url := fmt.Sprintf("%s/%s/customers:listAccessibleCustomers", s.cfg.APIBaseURL, s.cfg.APIVersion)

	body, err := s.doRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var accessible listAccessibleCustomersResponse
	if err := json.Unmarshal(body, &accessible); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	seen := make(map[string]bool)
	accounts := make([]*domain.AccountInfo, 0)

	for _, resourceName := range accessible.ResourceNames {
		customerID := strings.TrimPrefix(resourceName, "customers/")

		results, err := s.search(ctx, customerID, customerClientQuery)
		if err != nil {
			logrus.WithError(err).WithField("account_id", customerID).
				Warn("Query de customer_client falhou, consultando a própria conta")

			results, err = s.search(ctx, customerID, customerSelfQuery)
			if err != nil {
				logrus.WithError(err).WithField("account_id", customerID).
					Warn("Conta inacessível, seguindo para a próxima")
				continue
			}
		}

		for _, result := range results {
			switch {
			case result.CustomerClient != nil:
				client := result.CustomerClient
				if seen[client.ID] {
					continue
				}
				seen[client.ID] = true

				name := client.DescriptiveName
				if name == "" {
					name = client.ID
				}

				accounts = append(accounts, &domain.AccountInfo{
					ID:        client.ID,
					Name:      name,
					Currency:  client.CurrencyCode,
					Status:    client.Status,
					IsManager: client.Manager,
				})
			case result.Customer != nil:
				self := result.Customer
				if seen[self.ID] {
					continue
				}
				seen[self.ID] = true

				name := self.DescriptiveName
				if name == "" {
					name = self.ID
				}

				accounts = append(accounts, &domain.AccountInfo{
					ID:        self.ID,
					Name:      name,
					Currency:  self.CurrencyCode,
					IsManager: self.Manager,
				})
			}
		}
	}

	// Gerenciadoras primeiro para facilitar a seleção de conta no frontend
	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].IsManager != accounts[j].IsManager {
			return accounts[i].IsManager
		}
		return accounts[i].Name < accounts[j].Name
	})

	return accounts, nil
}

const campaignQuery = `
	SELECT
		campaign.id,
		campaign.name,
		campaign.status,
		campaign.resource_name,
		campaign_budget.amount_micros,
		campaign_budget.type
	FROM campaign
	WHERE campaign.status != 'REMOVED'`

// Janela de métricas anexadas ao fetch de campanhas. O GAQL junta campanha e
// métricas segmentadas por dia em uma única consulta por conta.
const campaignMetricsLookbackDays = 30

const campaignMetricsQuery = `
	SELECT
		campaign.id,
		segments.date,
		metrics.impressions,
		metrics.clicks,
		metrics.cost_micros,
		metrics.conversions,
		metrics.conversions_value
	FROM campaign
	WHERE campaign.status != 'REMOVED'
		AND segments.date BETWEEN '%s' AND '%s'`

func (s *Service) FetchCampaigns(ctx context.Context, accountID string) ([]*domain.SyncedCampaign, error) {
	results, err := s.search(ctx, accountID, campaignQuery)
	if err != nil {
		return nil, err
	}

	campaigns := make([]*domain.SyncedCampaign, 0, len(results))
	for _, result := range results {
		if result.Campaign == nil {
			continue
		}

		isActive := result.Campaign.Status == "ENABLED"
		status := domain.CampaignStatusPaused
		if isActive {
			status = domain.CampaignStatusActive
		}

		var budget float64
		var budgetType string
		if result.CampaignBudget != nil {
			budget = utils.MicrosToCurrency(parseMicros(result.CampaignBudget.AmountMicros))
			budgetType = result.CampaignBudget.Type
		}

		campaigns = append(campaigns, &domain.SyncedCampaign{
			Campaign: domain.Campaign{
				Platform:   domain.PlatformGoogle,
				ExternalID: result.Campaign.ID,
				Name:       result.Campaign.Name,
				Status:     status,
				IsActive:   isActive,
				Budget:     budget,
				BudgetType: budgetType,
			},
		})
	}

	// Falha nas métricas não derruba o fetch de campanhas: quem consome faz
	// a busca por campanha quando nada veio anexado
	metricsByCampaign, err := s.fetchRecentMetrics(ctx, accountID)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).
			Warn("Métricas segmentadas indisponíveis, campanhas seguem sem métricas anexadas")
		return campaigns, nil
	}

	for _, synced := range campaigns {
		synced.Metrics = metricsByCampaign[synced.ExternalID]
	}

	return campaigns, nil
}

// fetchRecentMetrics agrupa por campanha as métricas diárias da janela de
// lookback, em uma única consulta para a conta inteira
func (s *Service) fetchRecentMetrics(ctx context.Context, accountID string) (map[string][]*domain.CampaignMetric, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -campaignMetricsLookbackDays)

	query := fmt.Sprintf(campaignMetricsQuery,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)

	results, err := s.search(ctx, accountID, query)
	if err != nil {
		return nil, err
	}

	metricsByCampaign := make(map[string][]*domain.CampaignMetric)
	for _, result := range results {
		if result.Campaign == nil || result.Metrics == nil || result.Segments == nil {
			continue
		}

		date, err := utils.ParseDate(result.Segments.Date)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", result.Campaign.ID).
				Warn("Data inválida nas métricas, ignorando a linha")
			continue
		}

		metricsByCampaign[result.Campaign.ID] = append(metricsByCampaign[result.Campaign.ID], &domain.CampaignMetric{
			Platform:    domain.PlatformGoogle,
			CampaignID:  result.Campaign.ID,
			Date:        *date,
			Impressions: parseMicros(result.Metrics.Impressions),
			Clicks:      parseMicros(result.Metrics.Clicks),
			Cost:        utils.MicrosToCurrency(parseMicros(result.Metrics.CostMicros)),
			Conversions: result.Metrics.Conversions,
			Revenue:     utils.RoundWithTwoDecimalPlace(result.Metrics.ConversionsValue),
		})
	}

	return metricsByCampaign, nil
}

const metricsQueryTemplate = `
	SELECT
		campaign.id,
		segments.date,
		metrics.impressions,
		metrics.clicks,
		metrics.cost_micros,
		metrics.conversions,
		metrics.conversions_value
	FROM campaign
	WHERE campaign.id = %s
		AND segments.date BETWEEN '%s' AND '%s'`

func (s *Service) FetchCampaignMetrics(ctx context.Context, accountID, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error) {
	query := fmt.Sprintf(metricsQueryTemplate,
		campaignID,
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"),
	)

	results, err := s.search(ctx, accountID, query)
	if err != nil {
		return nil, err
	}

	campaignMetrics := make([]*domain.CampaignMetric, 0, len(results))
	for _, result := range results {
		if result.Metrics == nil || result.Segments == nil {
			continue
		}

		date, err := utils.ParseDate(result.Segments.Date)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaignID).
				Warn("Data inválida nas métricas, ignorando a linha")
			continue
		}

		campaignMetrics = append(campaignMetrics, &domain.CampaignMetric{
			Platform:    domain.PlatformGoogle,
			CampaignID:  campaignID,
			Date:        *date,
			Impressions: parseMicros(result.Metrics.Impressions),
			Clicks:      parseMicros(result.Metrics.Clicks),
			Cost:        utils.MicrosToCurrency(parseMicros(result.Metrics.CostMicros)),
			Conversions: result.Metrics.Conversions,
			Revenue:     utils.RoundWithTwoDecimalPlace(result.Metrics.ConversionsValue),
		})
	}

	return campaignMetrics, nil
}

// UpdateCampaignStatus muda o status da campanha via campaigns:mutate com
// update_mask restrito ao campo status
func (s *Service) UpdateCampaignStatus(ctx context.Context, accountID, campaignID string, isActive bool) (bool, error) {
	customerID := normalizeCustomerID(accountID)

	status := "PAUSED"
	if isActive {
		status = "ENABLED"
	}

	payload := mutateRequest{
		Operations: []mutateOperation{
			{
				Update: &campaignUpdate{
					ResourceName: fmt.Sprintf("customers/%s/campaigns/%s", customerID, campaignID),
					Status:       status,
				},
				UpdateMask: "status",
			},
		},
	}

	url := fmt.Sprintf("%s/%s/customers/%s/campaigns:mutate", s.cfg.APIBaseURL, s.cfg.APIVersion, customerID)

	body, err := s.doRequest(ctx, http.MethodPost, url, payload)
	if err != nil {
		return false, err
	}

	var response mutateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return false, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return len(response.Results) > 0, nil
}

// parseMicros trata os inteiros de 64 bits que a API devolve como string
func parseMicros(value string) int64 {
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
