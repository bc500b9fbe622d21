package authorizing

import (
	"golang.org/x/oauth2"

	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

// ProviderConfig descreve o fluxo OAuth de uma plataforma. Plataformas sem
// OAuth (Coupang usa assinatura HMAC) simplesmente não aparecem no mapa.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	Scopes       []string

	// ScopeSeparator difere do espaço padrão em algumas plataformas
	ScopeSeparator string

	// OfflineAccess pede refresh token no consentimento (access_type=offline
	// e prompt=consent no Google)
	OfflineAccess bool

	// UsePKCE envia code_verifier na troca do código
	UsePKCE bool
}

// Configured informa se o app OAuth da plataforma está preenchido
func (p ProviderConfig) Configured() bool {
	return p.ClientID != "" && p.AuthURL != "" && p.TokenURL != ""
}

// OAuth2Config materializa a configuração no formato do x/oauth2
func (p ProviderConfig) OAuth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.RedirectURI,
		Scopes:       p.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  p.AuthURL,
			TokenURL: p.TokenURL,
		},
	}
}

// DefaultProviders monta o mapa de provedores a partir da configuração do app
func DefaultProviders(cfg *config.Config) map[domain.AdPlatform]ProviderConfig {
	return map[domain.AdPlatform]ProviderConfig{
		domain.PlatformGoogle: {
			ClientID:      cfg.Google.ClientID,
			ClientSecret:  cfg.Google.ClientSecret,
			RedirectURI:   cfg.Google.RedirectURI,
			AuthURL:       "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL:      "https://oauth2.googleapis.com/token",
			Scopes:        []string{"https://www.googleapis.com/auth/adwords"},
			OfflineAccess: true,
		},
		domain.PlatformMeta: {
			ClientID:     cfg.Meta.AppID,
			ClientSecret: cfg.Meta.AppSecret,
			RedirectURI:  cfg.Meta.RedirectURI,
			AuthURL:      "https://www.facebook.com/" + cfg.Meta.Version + "/dialog/oauth",
			TokenURL:     cfg.Meta.BaseURL + "/" + cfg.Meta.Version + "/oauth/access_token",
			Scopes:       []string{"ads_read", "ads_management", "business_management"},
			// A Graph API espera os escopos separados por vírgula
			ScopeSeparator: ",",
			UsePKCE:        true,
		},
		domain.PlatformNaver: {
			ClientID:     cfg.Naver.ClientID,
			ClientSecret: cfg.Naver.ClientSecret,
			RedirectURI:  cfg.Naver.RedirectURI,
			AuthURL:      "https://nid.naver.com/oauth2.0/authorize",
			TokenURL:     "https://nid.naver.com/oauth2.0/token",
		},
		domain.PlatformKakao: {
			ClientID:     cfg.Kakao.ClientID,
			ClientSecret: cfg.Kakao.ClientSecret,
			RedirectURI:  cfg.Kakao.RedirectURI,
			AuthURL:      "https://kauth.kakao.com/oauth/authorize",
			TokenURL:     "https://kauth.kakao.com/oauth/token",
			Scopes:       []string{"moment:read", "moment:write"},
			UsePKCE:      true,
		},
		domain.PlatformTikTok: {
			ClientID:     cfg.TikTok.AppID,
			ClientSecret: cfg.TikTok.AppSecret,
			RedirectURI:  cfg.TikTok.RedirectURI,
			AuthURL:      "https://business-api.tiktok.com/portal/auth",
			TokenURL:     cfg.TikTok.APIBaseURL + "/oauth2/access_token/",
		},
		domain.PlatformAmazon: {
			ClientID:      cfg.Amazon.ClientID,
			ClientSecret:  cfg.Amazon.ClientSecret,
			RedirectURI:   cfg.Amazon.RedirectURI,
			AuthURL:       "https://www.amazon.com/ap/oa",
			TokenURL:      "https://api.amazon.com/auth/o2/token",
			Scopes:        []string{"advertising::campaign_management"},
			OfflineAccess: true,
		},
	}
}
