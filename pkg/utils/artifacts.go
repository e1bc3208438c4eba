package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactManager handles output file organization for analysis runs.
type ArtifactManager struct {
	BaseOutputDir string
}

// NewArtifactManager creates a new artifact manager rooted at baseOutputDir.
func NewArtifactManager(baseOutputDir string) *ArtifactManager {
	return &ArtifactManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateRunDir creates the per-run directory for a run's artifacts.
func (am *ArtifactManager) CreateRunDir(runID string) (string, error) {
	runDir := filepath.Join(am.BaseOutputDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run output directory: %w", err)
	}

	return runDir, nil
}

// ArtifactPath generates a full path for an output file of a run.
func (am *ArtifactManager) ArtifactPath(runID, fileName string) (string, error) {
	runDir, err := am.CreateRunDir(runID)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	return filepath.Join(runDir, filepath.Base(fileName)), nil
}

// DownloadURL generates the API download URL for an artifact.
func (am *ArtifactManager) DownloadURL(runID, fileName string) string {
	return fmt.Sprintf("/api/v1/download/%s/%s", runID, filepath.Base(fileName))
}

// FileType determines the artifact type based on extension.
func (am *ArtifactManager) FileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".xlsx", ".xls":
		return "excel"
	case ".html":
		return "chart"
	case ".db":
		return "database"
	default:
		return "unknown"
	}
}

// FileSize returns the size of an artifact in bytes.
func (am *ArtifactManager) FileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
