package coupangads

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
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

// Service integra com a Coupang Ads API. A autenticação não usa OAuth e sim
// assinatura HMAC por requisição, com a chave de acesso do vendor.
type Service struct {
	cfg         config.CoupangAds
	httpClient  *http.Client
	credentials domain.CredentialBag
	now         func() time.Time
}

func NewService(cfg config.CoupangAds) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		now: time.Now,
	}
}

func (s *Service) Platform() domain.AdPlatform {
	return domain.PlatformCoupang
}

func (s *Service) SetCredentials(credentials domain.CredentialBag) {
	s.credentials = credentials
}

// accessKey prefere as chaves da credencial e cai nas globais do config
func (s *Service) accessKey() (string, string) {
	accessKey := s.credentials["access_key"]
	secretKey := s.credentials["secret_key"]
	if accessKey == "" {
		accessKey = s.cfg.AccessKey
		secretKey = s.cfg.SecretKey
	}
	return accessKey, secretKey
}

// sign gera o header Authorization no formato CEA exigido pela Coupang:
// HMAC-SHA256 sobre data, método, caminho e query string
func (s *Service) sign(method, path, query string) string {
	accessKey, secretKey := s.accessKey()

	signedDate := s.now().UTC().Format("060102T150405Z")
	message := signedDate + method + path + query

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(message))
	signature := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf(
		"CEA algorithm=HmacSHA256, access-key=%s, signed-date=%s, signature=%s",
		accessKey, signedDate, signature,
	)
}

func (s *Service) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	queryString := query.Encode()
	requestURL := s.cfg.APIBaseURL + path
	if queryString != "" {
		requestURL += "?" + queryString
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

	req.Header.Set("Authorization", s.sign(method, path, queryString))
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
			Platform:   domain.PlatformCoupang,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

// FetchAccounts retorna o vendor da credencial. A API da Coupang é escopada
// por vendor, sem listagem de contas.
func (s *Service) FetchAccounts(ctx context.Context) ([]*domain.AccountInfo, error) {
	vendorID := s.credentials["vendor_id"]
	if vendorID == "" {
		return nil, fmt.Errorf("credencial Coupang sem vendor_id")
	}

	name := s.credentials["vendor_name"]
	if name == "" {
		name = vendorID
	}

	return []*domain.AccountInfo{
		{
			ID:       vendorID,
			Name:     name,
			Currency: "KRW",
			Status:   "ACTIVE",
		},
	}, nil
}

type coupangCampaign struct {
	CampaignID string  `json:"campaignId"`
	Title      string  `json:"title"`
	Status     string  `json:"status"`
	Budget     float64 `json:"budget"`
	BudgetType string  `json:"budgetType"`
}

type campaignsResponse struct {
	Data []coupangCampaign `json:"data"`
}

func (s *Service) FetchCampaigns(ctx context.Context, accountID string) ([]*domain.SyncedCampaign, error) {
	query := url.Values{}
	query.Add("vendorId", accountID)

	body, err := s.doRequest(ctx, http.MethodGet, "/v1/campaigns", query, nil)
	if err != nil {
		return nil, err
	}

	var response campaignsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaigns := make([]*domain.SyncedCampaign, 0, len(response.Data))
	for _, item := range response.Data {
		isActive := item.Status == "ACTIVE"
		status := domain.CampaignStatusPaused
		if isActive {
			status = domain.CampaignStatusActive
		}

		campaigns = append(campaigns, &domain.SyncedCampaign{
			Campaign: domain.Campaign{
				Platform:   domain.PlatformCoupang,
				ExternalID: item.CampaignID,
				Name:       item.Title,
				Status:     status,
				IsActive:   isActive,
				Budget:     item.Budget,
				BudgetType: item.BudgetType,
			},
		})
	}

	return campaigns, nil
}

type coupangReportRow struct {
	Date        string  `json:"date"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	AdSpend     float64 `json:"adSpend"`
	Orders      float64 `json:"orders"`
	SalesAmount float64 `json:"salesAmount"`
}

type reportResponse struct {
	Data []coupangReportRow `json:"data"`
}

func (s *Service) FetchCampaignMetrics(ctx context.Context, accountID, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error) {
	query := url.Values{}
	query.Add("vendorId", accountID)
	query.Add("campaignId", campaignID)
	query.Add("startDate", startDate.Format("2006-01-02"))
	query.Add("endDate", endDate.Format("2006-01-02"))

	body, err := s.doRequest(ctx, http.MethodGet, "/v1/reports/campaigns", query, nil)
	if err != nil {
		return nil, err
	}

	var response reportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	campaignMetrics := make([]*domain.CampaignMetric, 0, len(response.Data))
	for _, row := range response.Data {
		date, err := utils.ParseDate(row.Date)
		if err != nil {
			logrus.WithError(err).WithField("campaign_id", campaignID).
				Warn("Data inválida no relatório, ignorando a linha")
			continue
		}

		campaignMetrics = append(campaignMetrics, &domain.CampaignMetric{
			Platform:    domain.PlatformCoupang,
			CampaignID:  campaignID,
			Date:        *date,
			Impressions: row.Impressions,
			Clicks:      row.Clicks,
			Cost:        utils.RoundWithTwoDecimalPlace(row.AdSpend),
			Conversions: row.Orders,
			Revenue:     utils.RoundWithTwoDecimalPlace(row.SalesAmount),
		})
	}

	return campaignMetrics, nil
}

func (s *Service) UpdateCampaignStatus(ctx context.Context, accountID, campaignID string, isActive bool) (bool, error) {
	status := "PAUSED"
	if isActive {
		status = "ACTIVE"
	}

	payload := map[string]string{
		"vendorId": accountID,
		"status":   status,
	}

	body, err := s.doRequest(ctx, http.MethodPut, "/v1/campaigns/"+campaignID+"/status", nil, payload)
	if err != nil {
		return false, err
	}

	var updated coupangCampaign
	if err := json.Unmarshal(body, &updated); err != nil {
		return false, fmt.Errorf("erro ao decodificar JSON: %w", err)
	}

	return updated.Status == status, nil
}
