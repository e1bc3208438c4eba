package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"survey-insights/internal/config"
	"survey-insights/internal/store"
	"survey-insights/internal/survey"
	"survey-insights/pkg/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	dataset := flag.String("dataset", "", "override the survey file path or URL")
	outputDir := flag.String("out", "", "override the artifact output directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	if *dataset != "" {
		cfg.Report.Dataset = *dataset
	}
	if *outputDir != "" {
		cfg.App.OutputDir = *outputDir
	}

	if err := os.MkdirAll(cfg.App.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to create data dir: %v\n", err)
		os.Exit(1)
	}
	if err := store.InitDB(filepath.Join(cfg.App.DataDir, "insights.db")); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runID := uuid.New().String()
	if err := store.SaveRun(runID, cfg.Report); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to save run: %v\n", err)
		os.Exit(1)
	}

	artifacts := utils.NewArtifactManager(cfg.App.OutputDir)
	output, err := survey.Run(context.Background(), runID, cfg.Report, artifacts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Run failed: %v\n", err)
		os.Exit(1)
	}

	if output.KPIs != nil {
		fmt.Printf("\n🧠 Respondents: %d | Treatment rate: %.1f%% | Family history: %.1f%%\n",
			output.KPIs.Respondents, output.KPIs.TreatmentRate, output.KPIs.FamilyHistoryRate)
	}
	fmt.Printf("\n📈 Artifacts for run %s:\n", runID)
	for _, chart := range output.Charts {
		fmt.Printf("  %s (%s)\n", chart.Path, chart.Chart)
	}
	for _, export := range output.Exports {
		fmt.Printf("  %s (%s)\n", export.Path, export.Type)
	}
}
