package model

import "time"

// GroupCount is one observed category combination inside an AggregationResult.
// Rate is nil unless the analysis asked for one, so a missing rate never reads
// as a genuine 0%.
type GroupCount struct {
	Labels     []string `json:"labels"`
	Count      int      `json:"count"`
	Proportion float64  `json:"proportion"`
	Rate       *float64 `json:"rate,omitempty"`
}

// AggregationResult maps each observed combination of category values to a
// count and a proportion of the non-excluded rows.
type AggregationResult struct {
	Name     string       `json:"name"`
	GroupBy  []string     `json:"group_by"`
	Groups   []GroupCount `json:"groups"`
	Included int          `json:"included"` // rows that had every grouping column present
	Excluded int          `json:"excluded"` // rows skipped because a grouping column was missing
}

// KPISet holds the dashboard's headline card values for the filtered table.
type KPISet struct {
	Respondents       int     `json:"respondents"`
	TreatmentRate     float64 `json:"treatment_rate"`       // percent
	FamilyHistoryRate float64 `json:"family_history_rate"`  // percent
}

// RenderResult represents one rendered chart artifact.
type RenderResult struct {
	Analysis string `json:"analysis"`
	Chart    string `json:"chart"`
	Path     string `json:"path"`
}

// ExportResult represents the result of an export operation.
type ExportResult struct {
	Type        string    `json:"type"` // "file", "workbook", "database"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}

// ReportOutput bundles everything one run produced.
type ReportOutput struct {
	RunID   string              `json:"run_id"`
	KPIs    *KPISet             `json:"kpis,omitempty"`
	Results []AggregationResult `json:"results"`
	Charts  []RenderResult      `json:"charts"`
	Exports []ExportResult      `json:"exports"`
}
