package domain

import (
	"fmt"
	"time"
)

// TokenRecord guarda o material de token OAuth derivado de uma Credential.
// A validade lógica é sempre calculada a partir de ExpiresAt, nunca da
// expiração do cache.
type TokenRecord struct {
	AccessToken      string     `json:"access_token"`
	RefreshToken     string     `json:"refresh_token,omitempty"`
	TokenType        string     `json:"token_type,omitempty"`
	Scope            string     `json:"scope,omitempty"`
	ExpiresAt        time.Time  `json:"expires_at"`
	RefreshExpiresAt *time.Time `json:"refresh_expires_at,omitempty"`
}

// ExpiresWithin indica se o token expira dentro da janela informada.
// Tokens sem data de expiração são tratados como permanentes (system user).
func (t *TokenRecord) ExpiresWithin(buffer time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(t.ExpiresAt) < buffer
}

// TokenScopeKey identifica o escopo de um TokenRecord no Token Store
type TokenScopeKey struct {
	Platform  AdPlatform
	TeamID    string
	AccountID string
}

// CacheKey retorna a chave usada no cache rápido
func (k TokenScopeKey) CacheKey() string {
	return fmt.Sprintf("oauth:%s:%s:%s:tokens", k.Platform, k.TeamID, k.AccountID)
}

func (k TokenScopeKey) String() string {
	return k.CacheKey()
}
