package domain

import "time"

// CredentialBag guarda o material de credencial específico de cada plataforma
// (client id/secret, refresh token, developer token, etc). As chaves variam
// por plataforma e são validadas no momento do merge com as settings.
type CredentialBag map[string]string

// Clone retorna uma cópia independente da bag
func (b CredentialBag) Clone() CredentialBag {
	out := make(CredentialBag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Credential representa uma conta externa de anúncios conectada por um time
type Credential struct {
	ID           string        `json:"id"`
	TeamID       string        `json:"team_id"`
	Platform     AdPlatform    `json:"platform"`
	AccountID    string        `json:"account_id"`
	AccountName  string        `json:"account_name"`
	Credentials  CredentialBag `json:"-"`
	Settings     CredentialBag `json:"settings,omitempty"`
	IsActive     bool          `json:"is_active"`
	GrantedScope string        `json:"granted_scope,omitempty"`
	ConnectedAt  *time.Time    `json:"connected_at,omitempty"`
	LastSyncedAt *time.Time    `json:"last_synced_at,omitempty"`
	LastError    *string       `json:"last_error,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
