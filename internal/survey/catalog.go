package survey

import "survey-insights/internal/model"

// Chart types the renderer understands.
const (
	ChartDonut          = "donut"
	ChartBar            = "bar"
	ChartGroupedBar     = "grouped_bar"
	ChartStackedPercent = "stacked_percent"
	ChartHeatmap        = "heatmap"
	ChartHBar           = "hbar"
)

// DefaultAnalyses is the slide-deck catalogue: the ten grouped views of the
// survey the dashboard presents. A report spec without analyses falls back
// to this set.
func DefaultAnalyses() []model.AnalysisSpec {
	return []model.AnalysisSpec{
		{
			Name:    "gender_distribution",
			GroupBy: []string{ColGender},
			Chart:   ChartDonut,
		},
		{
			Name:    "age_distribution_by_gender",
			GroupBy: []string{ColAgeBand, ColGender},
			Chart:   ChartGroupedBar,
		},
		{
			Name:    "consequences_by_gender",
			GroupBy: []string{ColGender, ColConsequence},
			Chart:   ChartGroupedBar,
		},
		{
			Name:    "remote_work_and_consequences",
			GroupBy: []string{ColRemoteWork, ColConsequence},
			Chart:   ChartGroupedBar,
		},
		{
			Name:    "treatment_rate_by_gender",
			GroupBy: []string{ColGender},
			Rate:    &model.RateSpec{Column: ColTreatment},
			Chart:   ChartBar,
		},
		{
			Name:    "treatment_by_company_size",
			GroupBy: []string{ColCompanySize, ColTreatment},
			Chart:   ChartStackedPercent,
		},
		{
			Name:    "company_size_vs_work_interference",
			GroupBy: []string{ColCompanySize, ColWorkInterfere},
			Chart:   ChartHeatmap,
		},
		{
			Name:    "tech_company_vs_work_interference",
			GroupBy: []string{ColTechCompany, ColWorkInterfere},
			Chart:   ChartGroupedBar,
		},
		{
			Name:    "countries_reporting_consequences",
			GroupBy: []string{ColCountry},
			Where:   &model.WhereSpec{Column: ColConsequence, Equals: "Yes"},
			TopN:    15,
			Chart:   ChartHBar,
		},
		{
			Name:    "mental_vs_physical_by_country",
			GroupBy: []string{ColCountry},
			Rate:    &model.RateSpec{Column: ColMentalVsPhys},
			TopN:    15,
			Chart:   ChartBar,
		},
	}
}
