package integrator

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vfg2006/all-ad-api/internal/domain"
)

// APIError carrega a resposta bruta de erro de uma plataforma de anúncios.
// O corpo é preservado para diagnóstico e para classificação de erros de
// autenticação.
type APIError struct {
	Platform   domain.AdPlatform
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API retornou status %d: %s", e.Platform, e.StatusCode, e.Body)
}

// IsAuthError indica se a falha tem cara de token expirado ou revogado.
// Erros assim valem uma tentativa de refresh antes de desistir.
func (e *APIError) IsAuthError() bool {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return true
	}

	body := strings.ToLower(e.Body)
	for _, marker := range []string{"invalid_grant", "token expired", "invalid access token", "oauthexception", "authentication_error"} {
		if strings.Contains(body, marker) {
			return true
		}
	}

	return false
}

// UnknownPlatformError indica que nenhum integrador foi registrado para a
// plataforma pedida
type UnknownPlatformError struct {
	Platform domain.AdPlatform
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("nenhum integrador registrado para a plataforma %q", e.Platform)
}
