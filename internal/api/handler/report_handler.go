package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"survey-insights/internal/model"
	"survey-insights/internal/store"
	"survey-insights/internal/survey"
	"survey-insights/pkg/utils"
)

var artifacts = utils.NewArtifactManager("output")

// SetArtifacts points the handlers at the configured output directory.
func SetArtifacts(am *utils.ArtifactManager) {
	artifacts = am
}

// CreateReport creates and starts a new analysis run
// @Summary Create a new report run
// @Description Submit a report spec (dataset, filters, analyses, export targets) and start the analysis pass
// @Tags reports
// @Accept json
// @Produce json
// @Param report body model.ReportSpec true "Report configuration"
// @Success 200 {object} map[string]interface{} "Run created"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /reports [post]
func CreateReport(w http.ResponseWriter, r *http.Request) {
	var spec model.ReportSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if spec.Dataset == "" {
		http.Error(w, "A dataset path or URL is required", http.StatusBadRequest)
		return
	}

	// The dashboard reads results back from the run database, so database
	// export is always on for API-submitted runs.
	if spec.Export == nil {
		spec.Export = &model.ExportSpec{}
	}
	spec.Export.DB = true

	runID := uuid.New().String()
	if err := store.SaveRun(runID, spec); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	// The run records its own terminal error; here we only log it.
	ctx, cancel := context.WithTimeout(context.Background(), utils.ParseDuration(spec.Timeout))
	go func() {
		defer cancel()
		if _, err := survey.Run(ctx, runID, spec, artifacts); err != nil {
			log.Printf("❌ Run %s failed: %v", runID, err)
		}
	}()

	resp := map[string]interface{}{
		"message":   "Report run created successfully!",
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListReports retrieves all analysis runs
// @Summary List all report runs
// @Description Get all report runs with their current status, newest first
// @Tags reports
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /reports [get]
func ListReports(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetReport retrieves a specific run
// @Summary Get report run
// @Description Retrieve spec, status, and KPIs of a run
// @Tags reports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /reports/{id} [get]
func GetReport(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "")
	if !ok {
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetReportResults retrieves the aggregation tables of a run
// @Summary Get report results
// @Description Retrieve the stored aggregation tables of a run
// @Tags reports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Aggregation results"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /reports/{id}/results [get]
func GetReportResults(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/results")
	if !ok {
		return
	}

	results, err := store.GetAggregationResults(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":  runID,
		"results": results,
		"count":   len(results),
	})
}

// GetReportKPIs retrieves the KPI cards of a run
// @Summary Get report KPIs
// @Description Retrieve respondent count, treatment rate, and family-history rate of a run
// @Tags reports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.KPISet "KPI card values"
// @Failure 404 {object} map[string]interface{} "Run not found or KPIs not computed"
// @Router /reports/{id}/kpis [get]
func GetReportKPIs(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/kpis")
	if !ok {
		return
	}

	kpis, err := store.GetRunKPIs(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	if kpis == nil {
		http.Error(w, "KPIs not computed for this run", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(kpis)
}

// GetReportProgress retrieves the stage progress of a run
// @Summary Get report progress
// @Description Retrieve per-stage status, row counts, and durations of a run
// @Tags reports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Stage progress"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /reports/{id}/progress [get]
func GetReportProgress(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/progress")
	if !ok {
		return
	}

	stages, err := store.GetRunProgress(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve progress", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"stages": stages,
	})
}

// GetReportErrors retrieves the errors of a run
// @Summary Get report errors
// @Description Retrieve the terminal errors recorded for a run
// @Tags reports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /reports/{id}/errors [get]
func GetReportErrors(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/errors")
	if !ok {
		return
	}

	runErrors, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"errors": runErrors,
		"count":  len(runErrors),
	})
}

// GetReportArtifacts lists the downloadable artifacts of a run
// @Summary List run artifacts
// @Description List the chart and export files a run produced, with type, size, and download URL
// @Tags reports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Artifact list"
// @Failure 404 {object} map[string]interface{} "Run has no artifacts"
// @Router /reports/{id}/artifacts [get]
func GetReportArtifacts(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/artifacts")
	if !ok {
		return
	}

	runDir := filepath.Join(artifacts.BaseOutputDir, runID)
	entries, err := os.ReadDir(runDir)
	if err != nil {
		http.Error(w, "No artifacts for this run", http.StatusNotFound)
		return
	}

	files := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		file := map[string]interface{}{
			"name":        name,
			"type":        artifacts.FileType(name),
			"downloadUrl": artifacts.DownloadURL(runID, name),
		}
		if size, err := artifacts.FileSize(filepath.Join(runDir, name)); err == nil {
			file["size"] = size
		}
		files = append(files, file)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":    runID,
		"artifacts": files,
		"count":     len(files),
	})
}

// DownloadArtifact serves a rendered chart or exported table of a run
// @Summary Download a run artifact
// @Description Serve a chart HTML file or exported table produced by a run
// @Tags reports
// @Produce octet-stream
// @Param id path string true "Run ID"
// @Param file path string true "Artifact file name"
// @Success 200 {file} file "Artifact content"
// @Failure 404 {object} map[string]interface{} "Artifact not found"
// @Router /download/{id}/{file} [get]
func DownloadArtifact(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/download/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		http.Error(w, "Run ID and file name are required", http.StatusBadRequest)
		return
	}

	// filepath.Base blocks path traversal out of the run directory.
	runID := filepath.Base(parts[0])
	fileName := filepath.Base(parts[1])
	path := filepath.Join(artifacts.BaseOutputDir, runID, fileName)

	if _, err := artifacts.FileSize(path); err != nil {
		http.Error(w, "Artifact not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}

// runIDFromPath extracts the run ID between the reports prefix and an
// optional suffix, writing an error response when the path is malformed.
func runIDFromPath(w http.ResponseWriter, r *http.Request, suffix string) (string, bool) {
	const prefix = "/api/v1/reports/"
	path := r.URL.Path

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}

	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" || strings.Contains(runID, "/") {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return "", false
	}
	return runID, true
}
