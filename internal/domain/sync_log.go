package domain

import "time"

// Tipos de sincronização registrados no log
const (
	SyncTypeCampaigns   = "campaigns"
	SyncTypeIncremental = "incremental"
	SyncTypeFull        = "full"
)

// Status de uma tentativa de sincronização
const (
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)

// SyncLog é o registro de auditoria de uma tentativa de sincronização.
// Append-only: uma linha por tentativa, independente do resultado.
type SyncLog struct {
	ID            string     `json:"id"`
	TeamID        string     `json:"team_id"`
	Platform      AdPlatform `json:"platform"`
	SyncType      string     `json:"sync_type"`
	Status        string     `json:"status"`
	RecordsSynced int        `json:"records_synced"`
	ErrorMessage  *string    `json:"error_message,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   time.Time  `json:"completed_at"`
}
