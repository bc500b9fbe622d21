package handler

import (
	"net/http"

	"github.com/vfg2006/all-ad-api/infrastructure/repository"
	"github.com/vfg2006/all-ad-api/internal/api/handler/router"
	"github.com/vfg2006/all-ad-api/internal/usecases/authenticating"
	"github.com/vfg2006/all-ad-api/internal/usecases/authorizing"
	"github.com/vfg2006/all-ad-api/internal/usecases/syncing"
	"github.com/vfg2006/all-ad-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// OAuth retorna as rotas do fluxo de conexão de contas. O callback é público:
// é chamado pelo provedor, e o contexto do time viaja no state.
func OAuth(service authorizing.Authorizer, credentialRepo repository.CredentialRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/oauth/:platform/authorize-url",
			Method:      http.MethodGet,
			Handler:     GetAuthorizationURL(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:    "/v1/oauth/:platform/callback",
			Method:  http.MethodGet,
			Handler: OAuthCallback(service, credentialRepo),
		},
	}
}

func Credentials(credentialRepo repository.CredentialRepository, syncLogRepo repository.SyncLogRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/credentials",
			Method:      http.MethodGet,
			Handler:     ListCredentials(credentialRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/credentials",
			Method:      http.MethodPost,
			Handler:     UpsertCredential(credentialRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/credentials/:id/deactivate",
			Method:      http.MethodPost,
			Handler:     DeactivateCredential(credentialRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/credentials/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCredential(credentialRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sync/logs",
			Method:      http.MethodGet,
			Handler:     ListSyncLogs(syncLogRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Sync(service syncing.Syncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync",
			Method:      http.MethodPost,
			Handler:     SyncAll(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sync/:platform",
			Method:      http.MethodPost,
			Handler:     SyncPlatform(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/platforms/:platform/accounts",
			Method:      http.MethodGet,
			Handler:     FetchPlatformAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/platforms/:platform/campaigns/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateCampaignStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Campaigns(campaignRepo repository.CampaignRepository, metricRepo repository.CampaignMetricRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(campaignRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/platforms/:platform/campaigns/:id/metrics",
			Method:      http.MethodGet,
			Handler:     GetCampaignMetrics(metricRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:name/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
