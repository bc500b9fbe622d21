package integrator

import (
	"sync"

	"github.com/vfg2006/all-ad-api/internal/domain"
)

// Factory constrói uma instância nova de integrador. O registro devolve
// sempre instâncias frescas porque cada uma carrega credenciais próprias.
type Factory func() PlatformClient

// Registry mapeia plataformas para as fábricas dos seus integradores
type Registry struct {
	mu        sync.RWMutex
	factories map[domain.AdPlatform]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[domain.AdPlatform]Factory),
	}
}

func (r *Registry) Register(platform domain.AdPlatform, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[platform] = factory
}

// CreateService devolve um integrador novo para a plataforma, ainda sem
// credenciais configuradas
func (r *Registry) CreateService(platform domain.AdPlatform) (PlatformClient, error) {
	r.mu.RLock()
	factory, ok := r.factories[platform]
	r.mu.RUnlock()

	if !ok {
		return nil, &UnknownPlatformError{Platform: platform}
	}

	return factory(), nil
}

// RegisteredPlatforms lista as plataformas com integrador disponível
func (r *Registry) RegisteredPlatforms() []domain.AdPlatform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]domain.AdPlatform, 0, len(r.factories))
	for _, p := range domain.AllPlatforms() {
		if _, ok := r.factories[p]; ok {
			platforms = append(platforms, p)
		}
	}

	return platforms
}
