package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"survey-insights/internal/model"
)

var db *sql.DB

// InitDB opens the run database and creates the schema.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			kpis TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_stages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			stage TEXT,
			status TEXT,
			row_count INTEGER,
			started_at DATETIME,
			finished_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS aggregated_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			analysis TEXT,
			group_by TEXT,
			groups_json TEXT,
			included INTEGER,
			excluded INTEGER,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the run database.
func Close() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// SaveRun stores a new analysis run.
func SaveRun(runID string, spec model.ReportSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, specJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates the run status.
func UpdateRunStatus(runID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunKPIs stores the KPI card values of a completed run.
func SaveRunKPIs(runID string, kpis *model.KPISet) error {
	if kpis == nil {
		return nil
	}
	kpisJSON, err := json.Marshal(kpis)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`UPDATE runs SET kpis = ?, updated_at = ? WHERE id = ?`, kpisJSON, now, runID)
	return err
}

// SaveRunError records a terminal error for a run.
func SaveRunError(runID string, runErr error) error {
	if runErr == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, runErr.Error(), now)
	return err
}

// GetRunErrors lists the recorded errors of a run.
func GetRunErrors(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errors []map[string]interface{}
	for rows.Next() {
		var message string
		var createdAt time.Time
		if err := rows.Scan(&message, &createdAt); err != nil {
			return nil, err
		}
		errors = append(errors, map[string]interface{}{
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return errors, rows.Err()
}

// SaveStageProgress records when a pipeline stage started or finished and how
// many rows it produced.
func SaveStageProgress(runID, stage, status string, rowCount int, startedAt time.Time, finishedAt *time.Time) error {
	var finished interface{}
	if finishedAt != nil {
		finished = *finishedAt
	}
	_, err := db.Exec(`INSERT INTO run_stages (run_id, stage, status, row_count, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, stage, status, rowCount, startedAt, finished)
	return err
}

// GetRunProgress lists the stage records of a run in execution order.
func GetRunProgress(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT stage, status, row_count, started_at, finished_at FROM run_stages WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stages []map[string]interface{}
	for rows.Next() {
		var stage, status string
		var rowCount int
		var startedAt time.Time
		var finishedAt sql.NullTime
		if err := rows.Scan(&stage, &status, &rowCount, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		entry := map[string]interface{}{
			"stage":     stage,
			"status":    status,
			"rowCount":  rowCount,
			"startedAt": startedAt,
		}
		if finishedAt.Valid {
			entry["finishedAt"] = finishedAt.Time
			entry["durationMs"] = finishedAt.Time.Sub(startedAt).Milliseconds()
		}
		stages = append(stages, entry)
	}
	return stages, rows.Err()
}

// ListRuns returns all runs with basic info, newest first.
func ListRuns() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches the full spec, status, and KPIs of a run.
func GetRun(runID string) (map[string]interface{}, error) {
	var specJSON, status string
	var kpisJSON sql.NullString
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, kpis, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&specJSON, &status, &kpisJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.ReportSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}

	run := map[string]interface{}{
		"id":        runID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}
	if kpisJSON.Valid && kpisJSON.String != "" {
		var kpis model.KPISet
		if err := json.Unmarshal([]byte(kpisJSON.String), &kpis); err != nil {
			return nil, err
		}
		run["kpis"] = kpis
	}
	return run, nil
}

// GetRunKPIs fetches only the KPI card values of a run.
func GetRunKPIs(runID string) (*model.KPISet, error) {
	var kpisJSON sql.NullString
	if err := db.QueryRow(`SELECT kpis FROM runs WHERE id = ?`, runID).Scan(&kpisJSON); err != nil {
		return nil, err
	}
	if !kpisJSON.Valid || kpisJSON.String == "" {
		return nil, nil
	}
	var kpis model.KPISet
	if err := json.Unmarshal([]byte(kpisJSON.String), &kpis); err != nil {
		return nil, err
	}
	return &kpis, nil
}

// SaveAggregationResult stores one aggregation table for a run.
func SaveAggregationResult(runID string, result model.AggregationResult) error {
	groupsJSON, err := json.Marshal(result.Groups)
	if err != nil {
		return err
	}
	groupBy, err := json.Marshal(result.GroupBy)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO aggregated_results (run_id, analysis, group_by, groups_json, included, excluded, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, result.Name, groupBy, groupsJSON, result.Included, result.Excluded, now)
	return err
}

// GetAggregationResults fetches the stored aggregation tables of a run.
func GetAggregationResults(runID string) ([]model.AggregationResult, error) {
	rows, err := db.Query(`SELECT analysis, group_by, groups_json, included, excluded FROM aggregated_results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.AggregationResult
	for rows.Next() {
		var analysis, groupByJSON, groupsJSON string
		var included, excluded int
		if err := rows.Scan(&analysis, &groupByJSON, &groupsJSON, &included, &excluded); err != nil {
			return nil, err
		}

		result := model.AggregationResult{Name: analysis, Included: included, Excluded: excluded}
		if err := json.Unmarshal([]byte(groupByJSON), &result.GroupBy); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(groupsJSON), &result.Groups); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
