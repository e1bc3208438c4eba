package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactManager_CreateRunDir(t *testing.T) {
	am := NewArtifactManager(t.TempDir())

	runDir, err := am.CreateRunDir("run-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(am.BaseOutputDir, "run-1"), runDir)

	info, err := os.Stat(runDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent for an existing run dir.
	_, err = am.CreateRunDir("run-1")
	assert.NoError(t, err)
}

func TestArtifactManager_ArtifactPath(t *testing.T) {
	am := NewArtifactManager(t.TempDir())

	path, err := am.ArtifactPath("run-1", "results.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(am.BaseOutputDir, "run-1", "results.csv"), path)

	// Path separators in the file name are stripped.
	path, err = am.ArtifactPath("run-1", "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(am.BaseOutputDir, "run-1", "passwd"), path)
}

func TestArtifactManager_DownloadURL(t *testing.T) {
	am := NewArtifactManager("output")
	assert.Equal(t, "/api/v1/download/run-1/results.csv", am.DownloadURL("run-1", "results.csv"))
	assert.Equal(t, "/api/v1/download/run-1/chart.html", am.DownloadURL("run-1", "sub/chart.html"))
}

func TestArtifactManager_FileType(t *testing.T) {
	am := NewArtifactManager("output")
	assert.Equal(t, "csv", am.FileType("results.csv"))
	assert.Equal(t, "json", am.FileType("results.JSON"))
	assert.Equal(t, "excel", am.FileType("results.xlsx"))
	assert.Equal(t, "chart", am.FileType("gender_distribution.html"))
	assert.Equal(t, "database", am.FileType("insights.db"))
	assert.Equal(t, "unknown", am.FileType("notes.txt"))
}

func TestArtifactManager_FileSize(t *testing.T) {
	am := NewArtifactManager(t.TempDir())

	path, err := am.ArtifactPath("run-1", "results.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("analysis,count\n"), 0644))

	size, err := am.FileSize(path)
	require.NoError(t, err)
	assert.EqualValues(t, 15, size)

	_, err = am.FileSize(filepath.Join(am.BaseOutputDir, "missing.csv"))
	assert.Error(t, err)
}
