package handler

import (
	"net/http"

	"github.com/vfg2006/ad-publisher-api/internal/api/handler/router"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/publishing"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/reconciling"
	"github.com/vfg2006/ad-publisher-api/pkg/middleware"
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
	}
}

func Publishing(service publishing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns/:id/ads/:ad_id/publish",
			Method:      http.MethodPost,
			Handler:     PublishAd(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/ads/:id/publish-status",
			Method:      http.MethodGet,
			Handler:     GetPublishStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/ads/:id/transitions",
			Method:      http.MethodGet,
			Handler:     GetAdTransitions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reconciling(service reconciling.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ads/:id/reconcile",
			Method:      http.MethodPost,
			Handler:     ReconcileAd(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns/:id/reconcile",
			Method:      http.MethodPost,
			Handler:     ReconcileCampaign(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Webhooks(service reconciling.Service) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/webhooks/meta",
			Method:  http.MethodPost,
			Handler: MetaWebhook(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
