package main

import (
	"flag"
	"fmt"
	"os"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-index-exporter/docs"
	"go-index-exporter/internal/api"
	"go-index-exporter/internal/api/handler"
	"go-index-exporter/internal/config"
	"go-index-exporter/internal/es"
	"go-index-exporter/internal/store"
	"go-index-exporter/pkg/router"
)

// @title Index Exporter API
// @version 1.0
// @description Trigger and inspect Elasticsearch index export runs
// @BasePath /api/v1
func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration file")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if err := store.InitDB("exports.db"); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Cannot open tracking database: %v\n", err)
		os.Exit(1)
	}

	h := handler.NewExportHandler(cfg, es.NewClient(cfg))

	r := router.New()
	api.RegisterRoutes(r, h)
	r.Handle("/swagger/", httpSwagger.WrapHandler)

	r.Start(*addr)
}
