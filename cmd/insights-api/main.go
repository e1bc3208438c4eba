package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"survey-insights/internal/api"
	"survey-insights/internal/api/handler"
	"survey-insights/internal/config"
	"survey-insights/internal/store"
	"survey-insights/pkg/router"
	"survey-insights/pkg/utils"
)

// @title Survey Insights API
// @version 1.0
// @description Descriptive-statistics API over the mental-health-in-tech survey dataset.
// @BasePath /api/v1
func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}

	if err := os.MkdirAll(cfg.App.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to create data dir: %v\n", err)
		os.Exit(1)
	}
	if err := store.InitDB(filepath.Join(cfg.App.DataDir, "insights.db")); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open run database: %v\n", err)
		os.Exit(1)
	}

	handler.SetArtifacts(utils.NewArtifactManager(cfg.App.OutputDir))

	r := router.New()
	api.RegisterRoutes(r)
	r.Start(fmt.Sprintf(":%d", cfg.App.Port))
}
