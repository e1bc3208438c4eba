package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	_ "survey-insights/docs"
	"survey-insights/internal/api/handler"
	"survey-insights/pkg/router"
)

// RegisterRoutes wires the dashboard API. More specific routes first: the
// router matches in registration order.
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/reports", handler.CreateReport)
	r.GET("/api/v1/reports", handler.ListReports)
	r.GET("/api/v1/reports/*/results", handler.GetReportResults)
	r.GET("/api/v1/reports/*/kpis", handler.GetReportKPIs)
	r.GET("/api/v1/reports/*/progress", handler.GetReportProgress)
	r.GET("/api/v1/reports/*/errors", handler.GetReportErrors)
	r.GET("/api/v1/reports/*/artifacts", handler.GetReportArtifacts)
	r.GET("/api/v1/reports/*", handler.GetReport)
	r.GET("/api/v1/download/*/*", handler.DownloadArtifact)
	r.Prefix("/swagger/", httpSwagger.WrapHandler)
}
