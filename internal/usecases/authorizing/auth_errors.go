package authorizing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/all-ad-api/internal/domain"
)

// ErrAuthConfig indica que a plataforma não tem configuração OAuth completa
// (client_id/client_secret ausentes ou plataforma sem fluxo OAuth)
var ErrAuthConfig = errors.New("configuração OAuth ausente ou incompleta para a plataforma")

// TokenExchangeError preserva a resposta bruta do provedor quando a troca do
// authorization code falha
type TokenExchangeError struct {
	Platform   domain.AdPlatform
	StatusCode int
	Body       string
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("troca de código falhou para %s (status %d): %s", e.Platform, e.StatusCode, e.Body)
}

// TokenRefreshError preserva a resposta bruta do provedor quando o refresh
// falha. invalid_grant costuma significar refresh token revogado.
type TokenRefreshError struct {
	Platform   domain.AdPlatform
	StatusCode int
	Body       string
}

func (e *TokenRefreshError) Error() string {
	return fmt.Sprintf("refresh de token falhou para %s (status %d): %s", e.Platform, e.StatusCode, e.Body)
}

// NeedsReauth indica que o refresh token foi revogado e o usuário precisa
// passar pelo fluxo de autorização de novo
func (e *TokenRefreshError) NeedsReauth() bool {
	return e.StatusCode == 400 || e.StatusCode == 401
}
