package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-insights/internal/store"
	"survey-insights/pkg/utils"
)

func setupHandlers(t *testing.T) {
	t.Helper()
	require.NoError(t, store.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { store.Close() })
	SetArtifacts(utils.NewArtifactManager(t.TempDir()))
}

func TestCreateReport_InvalidJSON(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	CreateReport(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReport_MissingDataset(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(`{"kpis": true}`))
	rec := httptest.NewRecorder()
	CreateReport(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "dataset")
}

func TestCreateReport_SavesRunAndRespondsWithID(t *testing.T) {
	setupHandlers(t)

	// A nonexistent dataset keeps the background run short.
	body := `{"dataset": "` + filepath.Join(t.TempDir(), "survey.csv") + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	runID, _ := resp["runID"].(string)
	require.NotEmpty(t, runID)

	run, err := store.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, run["id"])
}

func TestCreateReport_FailedRunRecordsErrorOnce(t *testing.T) {
	setupHandlers(t)

	body := `{"dataset": "` + filepath.Join(t.TempDir(), "missing.csv") + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateReport(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	runID := resp["runID"].(string)

	require.Eventually(t, func() bool {
		errors, err := store.GetRunErrors(runID)
		return err == nil && len(errors) > 0
	}, 5*time.Second, 10*time.Millisecond)

	errors, err := store.GetRunErrors(runID)
	require.NoError(t, err)
	assert.Len(t, errors, 1)

	run, err := store.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "failed", run["status"])
}

func TestCreateReport_AcceptsRunTimeout(t *testing.T) {
	setupHandlers(t)

	body := `{"dataset": "` + filepath.Join(t.TempDir(), "survey.csv") + `", "timeout": "30s"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetReport_NotFound(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/ghost", nil)
	rec := httptest.NewRecorder()
	GetReport(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListReports_Empty(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	rec := httptest.NewRecorder()
	ListReports(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRunIDFromPath(t *testing.T) {
	tests := []struct {
		path   string
		suffix string
		want   string
		ok     bool
	}{
		{"/api/v1/reports/abc-123", "", "abc-123", true},
		{"/api/v1/reports/abc-123/results", "/results", "abc-123", true},
		{"/api/v1/reports//results", "/results", "", false},
		{"/api/v1/reports/a/b/results", "/results", "", false},
		{"/api/v1/other/abc", "", "", false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		rec := httptest.NewRecorder()
		got, ok := runIDFromPath(rec, req, tt.suffix)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestGetReportArtifacts(t *testing.T) {
	setupHandlers(t)

	for _, name := range []string{"gender_distribution.html", "results.csv"} {
		path, err := artifacts.ArtifactPath("run-1", name)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/run-1/artifacts", nil)
	rec := httptest.NewRecorder()
	GetReportArtifacts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID     string `json:"run_id"`
		Count     int    `json:"count"`
		Artifacts []struct {
			Name        string `json:"name"`
			Type        string `json:"type"`
			Size        int64  `json:"size"`
			DownloadURL string `json:"downloadUrl"`
		} `json:"artifacts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "run-1", resp.RunID)
	require.Equal(t, 2, resp.Count)

	byName := make(map[string]string)
	for _, a := range resp.Artifacts {
		byName[a.Name] = a.Type
		assert.Equal(t, "/api/v1/download/run-1/"+a.Name, a.DownloadURL)
		assert.EqualValues(t, 7, a.Size)
	}
	assert.Equal(t, "chart", byName["gender_distribution.html"])
	assert.Equal(t, "csv", byName["results.csv"])
}

func TestGetReportArtifacts_UnknownRun(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/ghost/artifacts", nil)
	rec := httptest.NewRecorder()
	GetReportArtifacts(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadArtifact(t *testing.T) {
	setupHandlers(t)

	path, err := artifacts.ArtifactPath("run-1", "results.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("analysis,count\n"), 0644))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/download/run-1/results.csv", nil)
	rec := httptest.NewRecorder()
	DownloadArtifact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "analysis,count\n", rec.Body.String())
}

func TestDownloadArtifact_NotFound(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/download/run-1/missing.csv", nil)
	rec := httptest.NewRecorder()
	DownloadArtifact(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadArtifact_MissingFileName(t *testing.T) {
	setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/download/run-1", nil)
	rec := httptest.NewRecorder()
	DownloadArtifact(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
