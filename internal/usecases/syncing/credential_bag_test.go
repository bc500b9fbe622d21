package syncing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

func TestMergeCredentialBag(t *testing.T) {
	t.Run("Settings sobrescrevem o material do conector", func(t *testing.T) {
		cred := &domain.Credential{
			Platform: domain.PlatformGoogle,
			Credentials: domain.CredentialBag{
				"access_token":      "stored-token",
				"login_customer_id": "111",
			},
			Settings: domain.CredentialBag{
				"login_customer_id": "999",
			},
		}

		bag, err := MergeCredentialBag(cred)
		assert.NoError(t, err)
		assert.Equal(t, "999", bag["login_customer_id"])
		assert.Equal(t, "stored-token", bag["access_token"])
	})

	t.Run("Setting vazia não apaga o valor do conector", func(t *testing.T) {
		cred := &domain.Credential{
			Platform:    domain.PlatformGoogle,
			Credentials: domain.CredentialBag{"login_customer_id": "111"},
			Settings:    domain.CredentialBag{"login_customer_id": ""},
		}

		bag, err := MergeCredentialBag(cred)
		assert.NoError(t, err)
		assert.Equal(t, "111", bag["login_customer_id"])
	})

	t.Run("Merge não altera as bags originais", func(t *testing.T) {
		cred := &domain.Credential{
			Platform:    domain.PlatformGoogle,
			Credentials: domain.CredentialBag{"access_token": "original"},
		}

		bag, err := MergeCredentialBag(cred)
		assert.NoError(t, err)

		bag["access_token"] = "mutado"
		assert.Equal(t, "original", cred.Credentials["access_token"])
	})

	t.Run("Plataforma com chave obrigatória ausente retorna erro", func(t *testing.T) {
		cred := &domain.Credential{
			Platform:    domain.PlatformNaver,
			Credentials: domain.CredentialBag{"access_token": "tok"},
		}

		_, err := MergeCredentialBag(cred)

		var missingErr *MissingCredentialKeyError
		assert.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "customer_id", missingErr.Key)
	})

	t.Run("Chave obrigatória pode vir das settings", func(t *testing.T) {
		cred := &domain.Credential{
			Platform:    domain.PlatformCoupang,
			Credentials: domain.CredentialBag{},
			Settings:    domain.CredentialBag{"vendor_id": "vendor-1"},
		}

		bag, err := MergeCredentialBag(cred)
		assert.NoError(t, err)
		assert.Equal(t, "vendor-1", bag["vendor_id"])
	})

	t.Run("Credencial sem bags retorna bag vazia utilizável", func(t *testing.T) {
		cred := &domain.Credential{Platform: domain.PlatformGoogle}

		bag, err := MergeCredentialBag(cred)
		assert.NoError(t, err)
		assert.NotNil(t, bag)
		assert.Empty(t, bag)
	})
}
