package survey

import "survey-insights/internal/model"

// ComputeKPIs produces the dashboard's headline cards over the filtered
// table: respondent count, treatment rate, family-history rate.
func ComputeKPIs(t *Table) *model.KPISet {
	return &model.KPISet{
		Respondents:       t.Len(),
		TreatmentRate:     boolRatePercent(t, ColTreatment),
		FamilyHistoryRate: boolRatePercent(t, ColFamilyHistory),
	}
}

// boolRatePercent is the share of true values among the rows where the
// column is present, as a percentage.
func boolRatePercent(t *Table, col string) float64 {
	total, trues := 0, 0
	for _, rec := range t.Rows {
		if v, ok := rec[col].(bool); ok {
			total++
			if v {
				trues++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return 100 * float64(trues) / float64(total)
}
