package api

import (
	"go-index-exporter/internal/api/handler"
	"go-index-exporter/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.ExportHandler) {
	r.POST("/api/v1/exports", h.CreateExport)
	r.GET("/api/v1/exports", h.ListExports)
	// More specific routes first
	r.GET("/api/v1/exports/*/results", h.GetExportResults)
	r.GET("/api/v1/exports/*/errors", h.GetExportErrors)
	// Generic run route last
	r.GET("/api/v1/exports/*", h.GetExport)
}
