package domain

import "time"

// Status normalizado de campanha. O status bruto da plataforma é preservado
// em Status; IsActive é a visão binária usada pelo dashboard.
const (
	CampaignStatusActive = "active"
	CampaignStatusPaused = "paused"
)

// Campaign é a representação normalizada de uma campanha de anúncios
type Campaign struct {
	ID         string     `json:"id"`
	TeamID     string     `json:"team_id"`
	Platform   AdPlatform `json:"platform"`
	ExternalID string     `json:"external_id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	IsActive   bool       `json:"is_active"`
	Budget     float64    `json:"budget"`
	BudgetType string     `json:"budget_type,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SyncedCampaign é o resultado de um fetch: a campanha normalizada mais as
// métricas da janela recente, quando a plataforma as retorna na mesma chamada
type SyncedCampaign struct {
	Campaign
	Metrics []*CampaignMetric `json:"metrics,omitempty"`
}
