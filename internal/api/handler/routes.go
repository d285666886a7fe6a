package handler

import (
	"net/http"

	"github.com/vfg2006/paid-search-advisor/internal/api/handler/router"
	"github.com/vfg2006/paid-search-advisor/internal/usecases/analyzing"
	"github.com/vfg2006/paid-search-advisor/pkg/metrics"
	"github.com/vfg2006/paid-search-advisor/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Analyses(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analyze",
			Method:  http.MethodPost,
			Handler: Analyze(service),
		},
		{
			Path:    "/v1/classify",
			Method:  http.MethodPost,
			Handler: Classify(service),
		},
		{
			Path:    "/v1/export",
			Method:  http.MethodPost,
			Handler: Export(service),
		},
		{
			Path:    "/v1/analyses",
			Method:  http.MethodGet,
			Handler: ListAnalyses(service),
		},
		{
			Path:    "/v1/analyses/:id",
			Method:  http.MethodGet,
			Handler: GetAnalysis(service),
		},
		{
			Path:    "/v1/analyses/:id/export",
			Method:  http.MethodGet,
			Handler: ExportAnalysis(service),
		},
	}
}

func CronJobs(services CronJobServices, adminToken string) []router.Route {
	adminOnly := []func(http.Handler) http.Handler{middleware.AdminToken(adminToken)}

	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/cron",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: adminOnly,
		},
	}
}
