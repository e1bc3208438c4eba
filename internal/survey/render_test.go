package survey

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-insights/internal/model"
)

func TestRenderCharts_DefaultCatalogue(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))
	analyses := DefaultAnalyses()

	results, err := RunAnalyses(cleaned, analyses)
	require.NoError(t, err)

	outDir := t.TempDir()
	rendered, err := RenderCharts(results, analyses, outDir)
	require.NoError(t, err)
	require.Len(t, rendered, len(analyses))

	for _, r := range rendered {
		assert.Equal(t, filepath.Join(outDir, r.Analysis+".html"), r.Path)

		info, err := os.Stat(r.Path)
		require.NoError(t, err, r.Analysis)
		assert.NotZero(t, info.Size(), r.Analysis)
	}
}

func TestRenderCharts_DefaultChartByDimensions(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))
	analyses := []model.AnalysisSpec{
		{Name: "one_dim", GroupBy: []string{ColGender}},
		{Name: "two_dims", GroupBy: []string{ColGender, ColTreatment}},
	}

	results, err := RunAnalyses(cleaned, analyses)
	require.NoError(t, err)

	rendered, err := RenderCharts(results, analyses, t.TempDir())
	require.NoError(t, err)
	require.Len(t, rendered, 2)

	assert.Equal(t, ChartBar, rendered[0].Chart)
	assert.Equal(t, ChartGroupedBar, rendered[1].Chart)
}

func TestRenderCharts_UnknownChartType(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))
	analyses := []model.AnalysisSpec{
		{Name: "bad_chart", GroupBy: []string{ColGender}, Chart: "sunburst"},
	}

	results, err := RunAnalyses(cleaned, analyses)
	require.NoError(t, err)

	_, err = RenderCharts(results, analyses, t.TempDir())
	require.Error(t, err)

	var cfgErr *model.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRenderCharts_DimensionMismatch(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))

	// Heatmaps need two grouping dimensions.
	analyses := []model.AnalysisSpec{
		{Name: "flat_heatmap", GroupBy: []string{ColGender}, Chart: ChartHeatmap},
	}
	results, err := RunAnalyses(cleaned, analyses)
	require.NoError(t, err)

	_, err = RenderCharts(results, analyses, t.TempDir())
	require.Error(t, err)

	var cfgErr *model.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRenderCharts_OverwritesEarlierArtifacts(t *testing.T) {
	cleaned := CleanTable(loadFixture(t))
	analyses := []model.AnalysisSpec{
		{Name: "gender", GroupBy: []string{ColGender}, Chart: ChartDonut},
	}
	results, err := RunAnalyses(cleaned, analyses)
	require.NoError(t, err)

	outDir := t.TempDir()
	_, err = RenderCharts(results, analyses, outDir)
	require.NoError(t, err)
	_, err = RenderCharts(results, analyses, outDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCrossTab_PivotsTwoDimensions(t *testing.T) {
	result := &model.AggregationResult{
		Name:    "size_vs_interference",
		GroupBy: []string{ColCompanySize, ColWorkInterfere},
		Groups: []model.GroupCount{
			{Labels: []string{"1-5", "Often"}, Count: 2},
			{Labels: []string{"1-5", "Rarely"}, Count: 1},
			{Labels: []string{"6-25", "Often"}, Count: 4},
		},
	}

	primary, series, counts := crossTab(result)
	assert.Equal(t, []string{"1-5", "6-25"}, primary)
	// Interference levels keep their survey order, not alphabetical.
	assert.Equal(t, []string{"Rarely", "Often"}, series)
	assert.Equal(t, 2, counts["1-5"]["Often"])
	assert.Equal(t, 4, counts["6-25"]["Often"])
	assert.Equal(t, 0, counts["6-25"]["Rarely"])
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 66.7, roundPercent(0.66666))
	assert.Equal(t, 100.0, roundPercent(1.0))
	assert.Equal(t, 0.0, roundPercent(0))
}
