package survey

import (
	"context"
	"fmt"
	"time"

	"survey-insights/internal/model"
	"survey-insights/internal/store"
	"survey-insights/pkg/utils"
)

// ------------------- Report Runner -------------------

// Run executes one full analysis pass for a run ID, strictly in the order
// Load -> Clean -> Filter -> Aggregate -> Render -> Export. Each stage's
// output is consumed in full before the next begins; any stage error is
// terminal for the run.
func Run(ctx context.Context, runID string, spec model.ReportSpec, artifacts *utils.ArtifactManager) (output *model.ReportOutput, err error) {
	start := time.Now()
	fmt.Printf("🚀 Starting analysis run: %s\n", runID)

	store.UpdateRunStatus(runID, "running")
	defer func() {
		if err != nil {
			store.UpdateRunStatus(runID, "failed")
			store.SaveRunError(runID, err)
		}
	}()

	if spec.Dataset == "" {
		return nil, &model.ConfigurationError{Field: "dataset", Reason: "is required"}
	}
	analyses := spec.Analyses
	if len(analyses) == 0 {
		analyses = DefaultAnalyses()
	}

	runDir, err := artifacts.CreateRunDir(runID)
	if err != nil {
		return nil, err
	}

	output = &model.ReportOutput{RunID: runID}

	// --- LOAD STAGE ---
	var raw *Table
	err = runStage(ctx, runID, "load", func() (int, error) {
		var stageErr error
		raw, stageErr = LoadTable(spec.Dataset)
		if stageErr != nil {
			return 0, stageErr
		}
		return raw.Len(), nil
	})
	if err != nil {
		return nil, err
	}

	// --- CLEAN STAGE ---
	var cleaned *Table
	err = runStage(ctx, runID, "clean", func() (int, error) {
		cleaned = CleanTable(raw)
		return cleaned.Len(), nil
	})
	if err != nil {
		return nil, err
	}

	// --- FILTER STAGE ---
	var filtered *Table
	err = runStage(ctx, runID, "filter", func() (int, error) {
		var stageErr error
		filtered, stageErr = ApplyFilters(cleaned, spec.Filters)
		if stageErr != nil {
			return 0, stageErr
		}
		return filtered.Len(), nil
	})
	if err != nil {
		return nil, err
	}

	// --- AGGREGATION STAGE ---
	err = runStage(ctx, runID, "aggregate", func() (int, error) {
		var stageErr error
		output.Results, stageErr = RunAnalyses(filtered, analyses)
		if stageErr != nil {
			return 0, stageErr
		}
		if spec.KPIs {
			output.KPIs = ComputeKPIs(filtered)
			store.SaveRunKPIs(runID, output.KPIs)
		}
		return len(output.Results), nil
	})
	if err != nil {
		return nil, err
	}

	// --- RENDER STAGE ---
	err = runStage(ctx, runID, "render", func() (int, error) {
		var stageErr error
		output.Charts, stageErr = RenderCharts(output.Results, analyses, runDir)
		if stageErr != nil {
			return 0, stageErr
		}
		return len(output.Charts), nil
	})
	if err != nil {
		return nil, err
	}

	// --- EXPORT STAGE ---
	err = runStage(ctx, runID, "export", func() (int, error) {
		output.Exports = ExportResults(runID, spec.Export, output.Results, artifacts)
		for _, export := range output.Exports {
			if !export.Success {
				return len(output.Exports), fmt.Errorf("export to %s failed: %s", export.Path, export.Error)
			}
		}
		return len(output.Exports), nil
	})
	if err != nil {
		return nil, err
	}

	store.UpdateRunStatus(runID, "completed")
	fmt.Printf("🏁 Run %s completed in %v\n", runID, time.Since(start))
	return output, nil
}

// runStage wraps one pipeline stage with status tracking and cancellation.
func runStage(ctx context.Context, runID, stage string, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run cancelled before %s stage: %w", stage, err)
	}

	startedAt := time.Now().UTC()
	store.UpdateRunStatus(runID, stage)
	store.SaveStageProgress(runID, stage, "started", 0, startedAt, nil)

	rowCount, err := fn()
	finishedAt := time.Now().UTC()
	if err != nil {
		store.SaveStageProgress(runID, stage, "failed", rowCount, startedAt, &finishedAt)
		return fmt.Errorf("%s stage: %w", stage, err)
	}

	store.SaveStageProgress(runID, stage, "completed", rowCount, startedAt, &finishedAt)
	return nil
}
