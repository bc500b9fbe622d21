package authorizing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/vfg2006/all-ad-api/infrastructure/integrator/metaads"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
)

// Tokens a menos de 5 minutos de expirar são tratados como expirados, para
// não enviar à plataforma um token que morre no meio da requisição
const tokenExpiryBuffer = 5 * time.Minute

//go:generate mockgen -source=service.go -destination=mocks/authorizer_mock.go -package=mocks

type Authorizer interface {
	BuildAuthorizationURL(platform domain.AdPlatform, state string) (string, error)
	ExchangeCode(ctx context.Context, platform domain.AdPlatform, code, codeVerifier string) (*domain.TokenRecord, error)
	StoreTokens(ctx context.Context, key domain.TokenScopeKey, rec *domain.TokenRecord) error
	RefreshAccessToken(ctx context.Context, key domain.TokenScopeKey) (*domain.TokenRecord, error)
	GetValidAccessToken(ctx context.Context, key domain.TokenScopeKey) (string, error)
}

type Service struct {
	providers map[domain.AdPlatform]ProviderConfig
	store     TokenStore
	metaCfg   config.MetaAds

	// Serializa refresh por escopo para não queimar refresh tokens de uso
	// único com chamadas concorrentes
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(cfg *config.Config, store TokenStore) *Service {
	return &Service{
		providers: DefaultProviders(cfg),
		store:     store,
		metaCfg:   cfg.Meta,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *Service) provider(platform domain.AdPlatform) (ProviderConfig, error) {
	p, ok := s.providers[platform]
	if !ok || !p.Configured() {
		return ProviderConfig{}, fmt.Errorf("%w: %s", ErrAuthConfig, platform)
	}
	return p, nil
}

func (s *Service) lockFor(key domain.TokenScopeKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	cacheKey := key.CacheKey()
	if lock, ok := s.locks[cacheKey]; ok {
		return lock
	}

	lock := &sync.Mutex{}
	s.locks[cacheKey] = lock
	return lock
}

// BuildAuthorizationURL monta a URL de consentimento da plataforma com o
// state fornecido pelo chamador
func (s *Service) BuildAuthorizationURL(platform domain.AdPlatform, state string) (string, error) {
	p, err := s.provider(platform)
	if err != nil {
		return "", err
	}

	opts := []oauth2.AuthCodeOption{}
	if p.OfflineAccess {
		opts = append(opts, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	}
	if p.ScopeSeparator != "" && p.ScopeSeparator != " " {
		opts = append(opts, oauth2.SetAuthURLParam("scope", strings.Join(p.Scopes, p.ScopeSeparator)))
	}

	return p.OAuth2Config().AuthCodeURL(state, opts...), nil
}

// ExchangeCode troca o authorization code pelos tokens da plataforma
func (s *Service) ExchangeCode(ctx context.Context, platform domain.AdPlatform, code, codeVerifier string) (*domain.TokenRecord, error) {
	p, err := s.provider(platform)
	if err != nil {
		return nil, err
	}

	conf := p.OAuth2Config()

	// Exatamente uma das duas provas entra na troca: com verifier o fluxo é
	// público e o client_secret fica de fora
	opts := []oauth2.AuthCodeOption{}
	if p.UsePKCE && codeVerifier != "" {
		conf.ClientSecret = ""
		opts = append(opts, oauth2.SetAuthURLParam("code_verifier", codeVerifier))
	}

	token, err := conf.Exchange(ctx, code, opts...)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, &TokenExchangeError{
				Platform:   platform,
				StatusCode: retrieveErr.Response.StatusCode,
				Body:       string(retrieveErr.Body),
			}
		}
		return nil, fmt.Errorf("erro na troca de código para %s: %w", platform, err)
	}

	return tokenRecordFrom(token), nil
}

// StoreTokens persiste os tokens do escopo: banco primeiro, cache depois
func (s *Service) StoreTokens(ctx context.Context, key domain.TokenScopeKey, rec *domain.TokenRecord) error {
	return s.store.Save(ctx, key, rec)
}

// RefreshAccessToken renova o access token do escopo. Se a plataforma não
// devolver refresh token novo, o antigo é mantido.
func (s *Service) RefreshAccessToken(ctx context.Context, key domain.TokenScopeKey) (*domain.TokenRecord, error) {
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	return s.refreshLocked(ctx, key)
}

func (s *Service) refreshLocked(ctx context.Context, key domain.TokenScopeKey) (*domain.TokenRecord, error) {
	current, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &TokenRefreshError{
			Platform: key.Platform,
			Body:     "nenhum token armazenado para o escopo",
		}
	}

	var refreshed *domain.TokenRecord

	// O Meta não emite refresh token; a renovação é a troca do access token
	// atual por um de longa duração
	if key.Platform == domain.PlatformMeta {
		refreshed, err = s.refreshMetaToken(current)
	} else {
		refreshed, err = s.refreshOAuthToken(ctx, key.Platform, current)
	}
	if err != nil {
		return nil, err
	}

	// Refresh só é considerado efetivado depois da escrita durável
	if err := s.store.Save(ctx, key, refreshed); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"platform":   key.Platform,
		"team_id":    key.TeamID,
		"account_id": key.AccountID,
	}).Info("Token renovado com sucesso")

	return refreshed, nil
}

func (s *Service) refreshOAuthToken(ctx context.Context, platform domain.AdPlatform, current *domain.TokenRecord) (*domain.TokenRecord, error) {
	if current.RefreshToken == "" {
		return nil, &TokenRefreshError{
			Platform: platform,
			Body:     "escopo sem refresh token, reautorização necessária",
		}
	}

	p, err := s.provider(platform)
	if err != nil {
		return nil, err
	}

	source := p.OAuth2Config().TokenSource(ctx, &oauth2.Token{RefreshToken: current.RefreshToken})

	token, err := source.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, &TokenRefreshError{
				Platform:   platform,
				StatusCode: retrieveErr.Response.StatusCode,
				Body:       string(retrieveErr.Body),
			}
		}
		return nil, fmt.Errorf("erro no refresh de token para %s: %w", platform, err)
	}

	refreshed := tokenRecordFrom(token)

	// Nem toda plataforma rotaciona o refresh token a cada renovação
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = current.RefreshToken
	}
	if refreshed.Scope == "" {
		refreshed.Scope = current.Scope
	}
	if refreshed.RefreshExpiresAt == nil {
		refreshed.RefreshExpiresAt = current.RefreshExpiresAt
	}

	return refreshed, nil
}

func (s *Service) refreshMetaToken(current *domain.TokenRecord) (*domain.TokenRecord, error) {
	response, err := metaads.GetLongLivedToken(s.metaCfg, current.AccessToken)
	if err != nil {
		return nil, &TokenRefreshError{
			Platform: domain.PlatformMeta,
			Body:     err.Error(),
		}
	}

	return &domain.TokenRecord{
		AccessToken: response.AccessToken,
		TokenType:   response.TokenType,
		Scope:       current.Scope,
		ExpiresAt:   time.Now().Add(time.Duration(response.ExpiresIn) * time.Second),
	}, nil
}

// GetValidAccessToken devolve um access token pronto para uso, renovando se
// estiver perto de expirar. Falha de renovação é logada e retorna token
// vazio, nunca erro: quem chama decide pular a conta.
func (s *Service) GetValidAccessToken(ctx context.Context, key domain.TokenScopeKey) (string, error) {
	rec, err := s.store.Get(ctx, key)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"platform":   key.Platform,
			"account_id": key.AccountID,
		}).Error("Erro ao carregar tokens do escopo")
		return "", nil
	}

	if rec != nil && rec.AccessToken != "" && !rec.ExpiresWithin(tokenExpiryBuffer) {
		return rec.AccessToken, nil
	}

	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	// Outro goroutine pode ter renovado enquanto esperávamos o lock
	rec, err = s.store.Get(ctx, key)
	if err == nil && rec != nil && rec.AccessToken != "" && !rec.ExpiresWithin(tokenExpiryBuffer) {
		return rec.AccessToken, nil
	}

	refreshed, err := s.refreshLocked(ctx, key)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"platform":   key.Platform,
			"team_id":    key.TeamID,
			"account_id": key.AccountID,
		}).Error("Falha ao renovar token do escopo")
		return "", nil
	}

	return refreshed.AccessToken, nil
}

func tokenRecordFrom(token *oauth2.Token) *domain.TokenRecord {
	rec := &domain.TokenRecord{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}

	if scope, ok := token.Extra("scope").(string); ok {
		rec.Scope = scope
	}

	// TikTok e Kakao informam a validade do refresh token em segundos
	if seconds, ok := extraSeconds(token, "refresh_expires_in", "refresh_token_expires_in"); ok {
		expiresAt := time.Now().Add(time.Duration(seconds) * time.Second)
		rec.RefreshExpiresAt = &expiresAt
	}

	return rec
}

func extraSeconds(token *oauth2.Token, fields ...string) (int64, bool) {
	for _, field := range fields {
		switch value := token.Extra(field).(type) {
		case float64:
			return int64(value), true
		case int64:
			return value, true
		}
	}
	return 0, false
}
