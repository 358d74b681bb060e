package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"go-index-exporter/internal/config"
	"go-index-exporter/internal/es"
	"go-index-exporter/internal/exporter"
	"go-index-exporter/internal/store"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if err := store.InitDB("exports.db"); err != nil {
		fmt.Printf("⚠️ Run tracking unavailable: %v\n", err)
	}

	runID := uuid.New().String()
	store.SaveRun(runID, cfg)

	start := time.Now()
	client := es.NewClient(cfg)
	outcomes, err := exporter.Run(context.Background(), runID, cfg, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Export run failed: %v\n", err)
		os.Exit(1)
	}

	summary := exporter.Summarize(runID, outcomes, start, time.Now())
	if summary.Failed > 0 {
		// Partial success: failed indices were already reported per line,
		// flag it in the exit code for scripted callers.
		os.Exit(2)
	}
}
