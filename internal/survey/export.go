package survey

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"survey-insights/internal/model"
	"survey-insights/internal/store"
	"survey-insights/pkg/utils"
)

// ------------------- Export -------------------

// Exporter writes a run's aggregation tables to the configured targets.
type Exporter struct {
	RunID     string
	Spec      *model.ExportSpec
	Artifacts *utils.ArtifactManager
}

// ExportResults exports the aggregation tables of a run. Every configured
// target produces one ExportResult; a failed target does not stop the rest.
func ExportResults(runID string, spec *model.ExportSpec, results []model.AggregationResult, artifacts *utils.ArtifactManager) []model.ExportResult {
	if spec == nil {
		return nil
	}
	ex := &Exporter{RunID: runID, Spec: spec, Artifacts: artifacts}

	var out []model.ExportResult
	if spec.File != "" {
		out = append(out, ex.exportToFile(results))
	}
	if spec.Workbook != "" {
		out = append(out, ex.exportToWorkbook(results))
	}
	if spec.DB {
		out = append(out, ex.exportToDatabase(results))
	}

	for _, result := range out {
		if result.Success {
			fmt.Printf("💾 Export successful: %d rows to %s (%s)\n", result.RecordCount, result.Path, result.Type)
		} else {
			fmt.Printf("❌ Export failed for %s: %s\n", result.Path, result.Error)
		}
	}
	return out
}

// exportToFile writes the flat aggregation table as CSV or JSON depending on
// the file extension.
func (ex *Exporter) exportToFile(results []model.AggregationResult) model.ExportResult {
	path, err := ex.Artifacts.ArtifactPath(ex.RunID, ex.Spec.File)
	result := model.ExportResult{Type: "file", Path: path, ExportedAt: time.Now().UTC()}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	var rows int
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		rows, err = writeJSON(path, ex.RunID, results)
	default:
		rows, err = writeCSV(path, results)
	}

	result.RecordCount = rows
	result.Success = err == nil
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func writeCSV(path string, results []model.AggregationResult) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"analysis", "dimension_1", "dimension_2", "count", "proportion", "rate"}
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	rows := 0
	for _, result := range results {
		for _, g := range result.Groups {
			second := ""
			if len(g.Labels) > 1 {
				second = g.Labels[1]
			}
			rate := ""
			if g.Rate != nil {
				rate = strconv.FormatFloat(*g.Rate, 'f', 6, 64)
			}
			row := []string{
				result.Name,
				g.Labels[0],
				second,
				strconv.Itoa(g.Count),
				strconv.FormatFloat(g.Proportion, 'f', 6, 64),
				rate,
			}
			if err := writer.Write(row); err != nil {
				return rows, fmt.Errorf("failed to write row: %w", err)
			}
			rows++
		}
	}
	return rows, nil
}

func writeJSON(path, runID string, results []model.AggregationResult) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"run_id":      runID,
			"exported_at": time.Now().UTC(),
			"analyses":    len(results),
		},
		"results": results,
	}
	if err := encoder.Encode(exportData); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return len(results), nil
}

// exportToWorkbook writes one XLSX workbook with a sheet per analysis.
func (ex *Exporter) exportToWorkbook(results []model.AggregationResult) model.ExportResult {
	path, err := ex.Artifacts.ArtifactPath(ex.RunID, ex.Spec.Workbook)
	result := model.ExportResult{Type: "workbook", Path: path, ExportedAt: time.Now().UTC()}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	rows, err := writeWorkbook(path, results)
	result.RecordCount = rows
	result.Success = err == nil
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

func writeWorkbook(path string, results []model.AggregationResult) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	rows := 0
	for i, result := range results {
		sheet := sheetName(result.Name)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return rows, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return rows, err
		}

		header := []interface{}{"dimension_1", "dimension_2", "count", "proportion", "rate"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return rows, err
		}
		for r, g := range result.Groups {
			second := ""
			if len(g.Labels) > 1 {
				second = g.Labels[1]
			}
			var rate interface{}
			if g.Rate != nil {
				rate = *g.Rate
			}
			row := []interface{}{g.Labels[0], second, g.Count, g.Proportion, rate}
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", r+2), &row); err != nil {
				return rows, err
			}
			rows++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return rows, fmt.Errorf("failed to save workbook: %w", err)
	}
	return rows, nil
}

// sheetName trims an analysis name to an XLSX-legal sheet name.
func sheetName(name string) string {
	for _, bad := range []string{"[", "]", ":", "*", "?", "/", "\\"} {
		name = strings.ReplaceAll(name, bad, "_")
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

// exportToDatabase stores the aggregation tables in the run database so the
// dashboard API can serve them later.
func (ex *Exporter) exportToDatabase(results []model.AggregationResult) model.ExportResult {
	result := model.ExportResult{Type: "database", Path: "aggregated_results", ExportedAt: time.Now().UTC()}

	saved := 0
	var lastErr error
	for _, agg := range results {
		if err := store.SaveAggregationResult(ex.RunID, agg); err != nil {
			lastErr = err
			continue
		}
		saved++
	}

	result.RecordCount = saved
	result.Success = lastErr == nil
	if lastErr != nil {
		result.Error = lastErr.Error()
	}
	return result
}
