package syncing

import (
	"github.com/vfg2006/all-ad-api/internal/domain"
)

// Chaves que cada plataforma exige na bag final para operar. Plataformas
// fora do mapa não têm exigência além do que o integrador valida.
var requiredCredentialKeys = map[domain.AdPlatform][]string{
	domain.PlatformNaver:   {"customer_id"},
	domain.PlatformCoupang: {"vendor_id"},
}

// MergeCredentialBag monta a bag efetiva da credencial: o material salvo no
// conector, sobrescrito pelas settings do time. Settings vencem porque é por
// onde o time ajusta conta padrão, developer token próprio, etc.
func MergeCredentialBag(cred *domain.Credential) (domain.CredentialBag, error) {
	bag := cred.Credentials.Clone()
	if bag == nil {
		bag = domain.CredentialBag{}
	}

	for key, value := range cred.Settings {
		if value != "" {
			bag[key] = value
		}
	}

	for _, key := range requiredCredentialKeys[cred.Platform] {
		if bag[key] == "" {
			return nil, &MissingCredentialKeyError{Platform: cred.Platform, Key: key}
		}
	}

	return bag, nil
}
