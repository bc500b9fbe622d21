package domain

import "time"

// SyncSummary é o resultado estruturado de uma sincronização de uma
// plataforma. Nunca propagamos exceções além da fronteira do orquestrador:
// a UI sempre recebe um destes.
type SyncSummary struct {
	Success bool   `json:"success"`
	Count   int    `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PlatformSyncResult é o resultado de uma plataforma dentro do fan-out
// "sincronizar tudo"
type PlatformSyncResult struct {
	Platform AdPlatform `json:"platform"`
	Success  bool       `json:"success"`
	Count    int        `json:"count,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// StatusUpdateResult é o resultado de uma alteração de status de campanha
type StatusUpdateResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ScheduledAccountResult é o resultado de uma credencial processada pelo
// job agendado
type ScheduledAccountResult struct {
	AccountID       string `json:"accountId"`
	AccountName     string `json:"accountName"`
	Status          string `json:"status"`
	CampaignsSynced int    `json:"campaigns_synced,omitempty"`
	Error           string `json:"error,omitempty"`
}

// ScheduledJobOutput é a saída de uma execução do job agendado
type ScheduledJobOutput struct {
	Success   bool                      `json:"success"`
	SyncType  string                    `json:"syncType"`
	Timestamp time.Time                 `json:"timestamp"`
	Processed int                       `json:"processed"`
	Results   []*ScheduledAccountResult `json:"results"`
}
