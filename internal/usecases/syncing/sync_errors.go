package syncing

import (
	"fmt"

	"github.com/vfg2006/all-ad-api/internal/domain"
)

// CredentialNotFoundError indica que o time não tem credencial ativa para a
// plataforma pedida
type CredentialNotFoundError struct {
	Platform domain.AdPlatform
	TeamID   string
}

func (e *CredentialNotFoundError) Error() string {
	return fmt.Sprintf("nenhuma credencial ativa de %s para o time %s", e.Platform, e.TeamID)
}

// MissingCredentialKeyError indica que a bag final não tem uma chave que a
// plataforma exige
type MissingCredentialKeyError struct {
	Platform domain.AdPlatform
	Key      string
}

func (e *MissingCredentialKeyError) Error() string {
	return fmt.Sprintf("credencial de %s sem a chave obrigatória %q", e.Platform, e.Key)
}
