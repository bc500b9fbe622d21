package domain

import "fmt"

// AdPlatform identifica uma plataforma de anúncios suportada
type AdPlatform string

const (
	PlatformGoogle  AdPlatform = "google"
	PlatformMeta    AdPlatform = "meta"
	PlatformNaver   AdPlatform = "naver"
	PlatformKakao   AdPlatform = "kakao"
	PlatformCoupang AdPlatform = "coupang"
	PlatformTikTok  AdPlatform = "tiktok"
	PlatformAmazon  AdPlatform = "amazon"
)

// AllPlatforms retorna todas as plataformas suportadas, na ordem de exibição
func AllPlatforms() []AdPlatform {
	return []AdPlatform{
		PlatformGoogle,
		PlatformMeta,
		PlatformNaver,
		PlatformKakao,
		PlatformCoupang,
		PlatformTikTok,
		PlatformAmazon,
	}
}

// ParseAdPlatform converte uma string em AdPlatform, validando o valor
func ParseAdPlatform(s string) (AdPlatform, error) {
	p := AdPlatform(s)
	for _, known := range AllPlatforms() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("plataforma desconhecida: %q", s)
}

func (p AdPlatform) String() string {
	return string(p)
}
