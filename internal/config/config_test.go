package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `app:
  port: 9090
  data_dir: /var/lib/insights
report:
  dataset: data/survey.csv
  kpis: true
  filters:
    genders: [male, female]
    min_age: 18
    max_age: 65
  analyses:
    - name: gender_distribution
      group_by: [Gender]
      chart: donut
  export:
    file: results.csv
    db: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "/var/lib/insights", cfg.App.DataDir)
	assert.Equal(t, "output", cfg.App.OutputDir, "unset fields take defaults")

	assert.Equal(t, "data/survey.csv", cfg.Report.Dataset)
	assert.True(t, cfg.Report.KPIs)

	require.NotNil(t, cfg.Report.Filters)
	assert.Equal(t, []string{"male", "female"}, cfg.Report.Filters.Genders)
	assert.Equal(t, 18, cfg.Report.Filters.MinAge)

	require.Len(t, cfg.Report.Analyses, 1)
	assert.Equal(t, "gender_distribution", cfg.Report.Analyses[0].Name)
	assert.Equal(t, "donut", cfg.Report.Analyses[0].Chart)

	require.NotNil(t, cfg.Report.Export)
	assert.Equal(t, "results.csv", cfg.Report.Export.File)
	assert.True(t, cfg.Report.Export.DB)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "data", cfg.App.DataDir)
	assert.Equal(t, "output", cfg.App.OutputDir)
	assert.Equal(t, "survey.csv", cfg.Report.Dataset)
}
