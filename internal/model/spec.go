package model

// FilterSpec narrows the cleaned table before any aggregation runs.
// Zero values mean "no filter on that dimension".
type FilterSpec struct {
	Genders   []string `json:"genders,omitempty" yaml:"genders,omitempty"`
	MinAge    int      `json:"minAge,omitempty" yaml:"min_age,omitempty"`
	MaxAge    int      `json:"maxAge,omitempty" yaml:"max_age,omitempty"`
	Remote    string   `json:"remote,omitempty" yaml:"remote,omitempty"`   // all, remote, on-site
	Company   string   `json:"company,omitempty" yaml:"company,omitempty"` // all, tech, non-tech
	Countries []string `json:"countries,omitempty" yaml:"countries,omitempty"`
}

// RateSpec asks for the share of true values of a boolean column per group
// (e.g. treatment rate by gender).
type RateSpec struct {
	Column string `json:"column" yaml:"column"`
}

// WhereSpec restricts one analysis to rows whose column equals a value
// (e.g. only respondents who reported mental-health consequences).
type WhereSpec struct {
	Column string `json:"column" yaml:"column"`
	Equals string `json:"equals" yaml:"equals"`
}

// AnalysisSpec is one grouped aggregation plus the chart drawn from it.
type AnalysisSpec struct {
	Name    string     `json:"name" yaml:"name"`
	GroupBy []string   `json:"groupBy" yaml:"group_by"` // one or two categorical columns
	Where   *WhereSpec `json:"where,omitempty" yaml:"where,omitempty"`
	Rate    *RateSpec  `json:"rate,omitempty" yaml:"rate,omitempty"`
	Chart   string     `json:"chart,omitempty" yaml:"chart,omitempty"` // donut, bar, grouped_bar, stacked_percent, heatmap, hbar
	TopN    int        `json:"topN,omitempty" yaml:"top_n,omitempty"`  // keep only the N largest groups
}

// ExportSpec defines export targets for the aggregation tables of a run.
type ExportSpec struct {
	File     string `json:"file,omitempty" yaml:"file,omitempty"`         // .csv or .json
	Workbook string `json:"workbook,omitempty" yaml:"workbook,omitempty"` // .xlsx, one sheet per analysis
	DB       bool   `json:"db,omitempty" yaml:"db,omitempty"`             // store results in the run database
}

// ReportSpec drives one full analysis pass: Load -> Clean -> Filter ->
// Aggregate -> Render/Export. This is the struct for POST /api/v1/reports.
type ReportSpec struct {
	Dataset  string         `json:"dataset" yaml:"dataset"` // file path or URL of the survey CSV
	Filters  *FilterSpec    `json:"filters,omitempty" yaml:"filters,omitempty"`
	Analyses []AnalysisSpec `json:"analyses" yaml:"analyses"`
	KPIs     bool           `json:"kpis" yaml:"kpis"`
	Export   *ExportSpec    `json:"export,omitempty" yaml:"export,omitempty"`
	Timeout  string         `json:"timeout,omitempty" yaml:"timeout,omitempty"` // wall-clock limit per pass, e.g. "5m"
}
