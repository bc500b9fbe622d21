package domain

import "time"

// CampaignMetric é o snapshot diário de performance de uma campanha.
// No máximo uma linha por (campanha, data); re-sync do mesmo dia sobrescreve.
type CampaignMetric struct {
	ID          string     `json:"id"`
	TeamID      string     `json:"team_id"`
	Platform    AdPlatform `json:"platform"`
	CampaignID  string     `json:"campaign_id"`
	Date        time.Time  `json:"date"`
	Impressions int64      `json:"impressions"`
	Clicks      int64      `json:"clicks"`
	Cost        float64    `json:"cost"`
	Conversions float64    `json:"conversions"`
	Revenue     float64    `json:"revenue"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
