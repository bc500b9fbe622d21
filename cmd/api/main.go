package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/all-ad-api/infrastructure/cache"
	"github.com/vfg2006/all-ad-api/infrastructure/database/postgres"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator/amazonads"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator/coupangads"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator/kakaoads"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator/metaads"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator/naverads"
	"github.com/vfg2006/all-ad-api/infrastructure/integrator/tiktokads"
	"github.com/vfg2006/all-ad-api/infrastructure/repository"
	"github.com/vfg2006/all-ad-api/internal/api"
	"github.com/vfg2006/all-ad-api/internal/config"
	"github.com/vfg2006/all-ad-api/internal/domain"
	"github.com/vfg2006/all-ad-api/internal/scheduler"
	"github.com/vfg2006/all-ad-api/internal/usecases/authenticating"
	"github.com/vfg2006/all-ad-api/internal/usecases/authorizing"
	"github.com/vfg2006/all-ad-api/internal/usecases/syncing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	credentialRepo := repository.NewCredentialRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	metricRepo := repository.NewCampaignMetricRepository(pgConn)
	syncLogRepo := repository.NewSyncLogRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	// O cache Redis é opcional: sem ele o Token Store opera só com o banco
	redisCache := redisCache(ctx, cfg.Redis)
	tokenStore := authorizing.NewTokenStore(redisCache, credentialRepo)
	authorizer := authorizing.NewService(cfg, tokenStore)

	registry := registry(cfg)

	syncer := syncing.NewService(
		registry,
		authorizer,
		credentialRepo,
		campaignRepo,
		metricRepo,
		syncLogRepo,
		cfg.CampaignSync,
	)

	campaignSyncService := scheduler.NewCampaignSyncService(credentialRepo, syncer, cfg)
	if err := campaignSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de campanhas")
	} else {
		logrus.Info("Agendador de sincronização de campanhas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		api.Repositories{
			Credential:     credentialRepo,
			Campaign:       campaignRepo,
			CampaignMetric: metricRepo,
			SyncLog:        syncLogRepo,
		},
		authenticator,
		authorizer,
		syncer,
		campaignSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// registry registra uma fábrica por plataforma. Cada sync recebe uma
// instância nova do integrador, com as credenciais do time injetadas depois.
func registry(cfg *config.Config) *integrator.Registry {
	reg := integrator.NewRegistry()

	reg.Register(domain.PlatformGoogle, func() integrator.PlatformClient {
		return googleads.NewService(cfg.Google)
	})
	reg.Register(domain.PlatformMeta, func() integrator.PlatformClient {
		return metaads.NewService(cfg.Meta)
	})
	reg.Register(domain.PlatformNaver, func() integrator.PlatformClient {
		return naverads.NewService(cfg.Naver)
	})
	reg.Register(domain.PlatformKakao, func() integrator.PlatformClient {
		return kakaoads.NewService(cfg.Kakao)
	})
	reg.Register(domain.PlatformCoupang, func() integrator.PlatformClient {
		return coupangads.NewService(cfg.Coupang)
	})
	reg.Register(domain.PlatformTikTok, func() integrator.PlatformClient {
		return tiktokads.NewService(cfg.TikTok)
	})
	reg.Register(domain.PlatformAmazon, func() integrator.PlatformClient {
		return amazonads.NewService(cfg.Amazon)
	})

	return reg
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// redisCache conecta ao Redis. Falha de conexão não derruba a aplicação:
// o Token Store segue funcionando só com o banco.
func redisCache(ctx context.Context, redisConfig config.Redis) cache.Cache {
	c, err := cache.NewRedisCache(ctx, redisConfig)
	if err != nil {
		logrus.WithError(err).Warn("Redis indisponível, Token Store operando sem cache rápido")
		return cache.NewNoopCache()
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return c
}
