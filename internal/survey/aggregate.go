package survey

import (
	"fmt"
	"sort"
	"strings"

	"survey-insights/internal/model"
	"survey-insights/pkg/utils"
)

// ------------------- Aggregation -------------------

// groupSeparator joins the labels of a two-dimensional group into a map key.
const groupSeparator = "\x1f"

// Aggregate computes the grouped counts and proportions for one analysis.
// Rows missing any grouping column are excluded from that aggregation; the
// proportion denominator is the number of included rows. Group order is
// deterministic: natural scale order for ordinal columns, label sort order
// otherwise, largest-first when TopN truncation is requested.
func Aggregate(t *Table, spec model.AnalysisSpec) (*model.AggregationResult, error) {
	if err := validateAnalysis(t, spec); err != nil {
		return nil, err
	}

	type bucket struct {
		labels    []string
		count     int
		rateTotal int
		rateTrue  int
	}
	buckets := make(map[string]*bucket)

	included, excluded := 0, 0
	for _, rec := range t.Rows {
		if spec.Where != nil {
			label, ok := rec.Label(spec.Where.Column)
			if !ok || label != spec.Where.Equals {
				excluded++
				continue
			}
		}
		labels, ok := groupLabels(rec, spec.GroupBy)
		if !ok {
			excluded++
			continue
		}
		included++

		key := strings.Join(labels, groupSeparator)
		b, exists := buckets[key]
		if !exists {
			b = &bucket{labels: labels}
			buckets[key] = b
		}
		b.count++

		if spec.Rate != nil {
			if v, recognized := utils.Truthy(rec[spec.Rate.Column]); recognized {
				b.rateTotal++
				if v {
					b.rateTrue++
				}
			}
		}
	}

	result := &model.AggregationResult{
		Name:     spec.Name,
		GroupBy:  append([]string(nil), spec.GroupBy...),
		Included: included,
		Excluded: excluded,
	}
	for _, b := range buckets {
		group := model.GroupCount{
			Labels:     b.labels,
			Count:      b.count,
			Proportion: float64(b.count) / float64(included),
		}
		if spec.Rate != nil && b.rateTotal > 0 {
			rate := float64(b.rateTrue) / float64(b.rateTotal)
			group.Rate = &rate
		}
		result.Groups = append(result.Groups, group)
	}

	orderGroups(result, spec)
	return result, nil
}

// validateAnalysis rejects malformed grouping specifications.
func validateAnalysis(t *Table, spec model.AnalysisSpec) error {
	if len(spec.GroupBy) == 0 || len(spec.GroupBy) > 2 {
		return &model.ConfigurationError{
			Field:  "groupBy",
			Reason: fmt.Sprintf("needs one or two columns, got %d", len(spec.GroupBy)),
		}
	}
	for _, col := range spec.GroupBy {
		if !t.HasColumn(col) {
			return &model.ConfigurationError{Field: "groupBy", Reason: fmt.Sprintf("unknown column %q", col)}
		}
	}
	if spec.Rate != nil && !t.HasColumn(spec.Rate.Column) {
		return &model.ConfigurationError{Field: "rate.column", Reason: fmt.Sprintf("unknown column %q", spec.Rate.Column)}
	}
	if spec.Where != nil && !t.HasColumn(spec.Where.Column) {
		return &model.ConfigurationError{Field: "where.column", Reason: fmt.Sprintf("unknown column %q", spec.Where.Column)}
	}
	if spec.TopN < 0 {
		return &model.ConfigurationError{Field: "topN", Reason: "must not be negative"}
	}
	return nil
}

// rateOf treats a missing rate as zero for ranking purposes.
func rateOf(g model.GroupCount) float64 {
	if g.Rate == nil {
		return 0
	}
	return *g.Rate
}

// groupLabels extracts the category labels of a row for the grouping columns.
func groupLabels(rec Record, groupBy []string) ([]string, bool) {
	labels := make([]string, 0, len(groupBy))
	for _, col := range groupBy {
		label, ok := rec.Label(col)
		if !ok {
			return nil, false
		}
		labels = append(labels, label)
	}
	return labels, true
}

// orderGroups sorts the groups for reproducible output and applies TopN
// truncation for the "largest groups" charts.
func orderGroups(result *model.AggregationResult, spec model.AnalysisSpec) {
	byLabels := func(i, j int) bool {
		a, b := result.Groups[i], result.Groups[j]
		for d := range spec.GroupBy {
			if a.Labels[d] != b.Labels[d] {
				return labelLess(spec.GroupBy[d], a.Labels[d], b.Labels[d])
			}
		}
		return false
	}

	if spec.TopN > 0 {
		// Largest first; rate analyses rank by rate. Ties break on labels.
		sort.Slice(result.Groups, func(i, j int) bool {
			a, b := result.Groups[i], result.Groups[j]
			if spec.Rate != nil && rateOf(a) != rateOf(b) {
				return rateOf(a) > rateOf(b)
			}
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return byLabels(i, j)
		})
		if len(result.Groups) > spec.TopN {
			result.Groups = result.Groups[:spec.TopN]
		}
		return
	}

	sort.Slice(result.Groups, byLabels)
}

// RunAnalyses aggregates every analysis of the report over the filtered
// table, failing fast on the first invalid specification.
func RunAnalyses(t *Table, analyses []model.AnalysisSpec) ([]model.AggregationResult, error) {
	results := make([]model.AggregationResult, 0, len(analyses))
	for _, spec := range analyses {
		result, err := Aggregate(t, spec)
		if err != nil {
			return nil, fmt.Errorf("analysis %q: %w", spec.Name, err)
		}
		fmt.Printf("📊 Aggregated %q: %d groups from %d rows (%d excluded)\n",
			spec.Name, len(result.Groups), result.Included, result.Excluded)
		results = append(results, *result)
	}
	return results, nil
}
