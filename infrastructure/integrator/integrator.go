package integrator

import (
	"context"
	"time"

	"github.com/vfg2006/all-ad-api/internal/domain"
)

//go:generate mockgen -source=integrator.go -destination=mocks/integrator_mock.go -package=mocks

// PlatformClient é o contrato comum dos integradores de plataforma de anúncios.
// Cada plataforma implementa o mesmo conjunto de operações para que o
// orquestrador de sync trate todas de forma uniforme.
type PlatformClient interface {
	Platform() domain.AdPlatform

	// SetCredentials injeta o material de credenciais (tokens, chaves,
	// identificadores de conta) antes de qualquer chamada à API
	SetCredentials(credentials domain.CredentialBag)

	FetchAccounts(ctx context.Context) ([]*domain.AccountInfo, error)
	FetchCampaigns(ctx context.Context, accountID string) ([]*domain.SyncedCampaign, error)
	FetchCampaignMetrics(ctx context.Context, accountID, campaignID string, startDate, endDate time.Time) ([]*domain.CampaignMetric, error)

	// UpdateCampaignStatus retorna true somente quando a plataforma confirmou
	// a mudança de status
	UpdateCampaignStatus(ctx context.Context, accountID, campaignID string, isActive bool) (bool, error)
}

// BatchResult resume uma atualização de status em lote
type BatchResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// BatchStatusUpdater é implementado pelas plataformas que suportam
// atualização de status em lote (hoje, apenas Meta)
type BatchStatusUpdater interface {
	BatchUpdateCampaignStatus(ctx context.Context, accountID string, campaignIDs []string, isActive bool) (*BatchResult, error)
}
