package survey

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"survey-insights/internal/model"
)

// ------------------- Rendering -------------------

// renderable is the piece of the go-echarts chart types the renderer needs.
type renderable interface {
	Render(w io.Writer) error
}

// RenderCharts turns each aggregation into a standalone HTML chart under
// outDir, one chart per result, axes titled with the grouping dimensions.
// Re-running overwrites earlier artifacts.
func RenderCharts(results []model.AggregationResult, analyses []model.AnalysisSpec, outDir string) ([]model.RenderResult, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	rendered := make([]model.RenderResult, 0, len(results))
	for i, result := range results {
		spec := analyses[i]
		chartType := spec.Chart
		if chartType == "" {
			chartType = defaultChartFor(result)
		}

		chart, err := buildChart(&result, spec, chartType)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(outDir, result.Name+".html")
		if err := writeChart(chart, path); err != nil {
			return nil, fmt.Errorf("render %q: %w", result.Name, err)
		}

		fmt.Printf("🖼️ Rendered %q as %s -> %s\n", result.Name, chartType, path)
		rendered = append(rendered, model.RenderResult{Analysis: result.Name, Chart: chartType, Path: path})
	}
	return rendered, nil
}

func defaultChartFor(result model.AggregationResult) string {
	if len(result.GroupBy) == 2 {
		return ChartGroupedBar
	}
	return ChartBar
}

func buildChart(result *model.AggregationResult, spec model.AnalysisSpec, chartType string) (renderable, error) {
	dims := len(result.GroupBy)
	switch chartType {
	case ChartDonut:
		if dims != 1 {
			return nil, chartDimsError(chartType, 1, dims)
		}
		return buildDonut(result), nil
	case ChartBar, ChartHBar:
		if dims != 1 {
			return nil, chartDimsError(chartType, 1, dims)
		}
		return buildBar(result, spec, chartType == ChartHBar), nil
	case ChartGroupedBar, ChartStackedPercent, ChartHeatmap:
		if dims != 2 {
			return nil, chartDimsError(chartType, 2, dims)
		}
		switch chartType {
		case ChartGroupedBar:
			return buildGroupedBar(result), nil
		case ChartStackedPercent:
			return buildStackedPercent(result), nil
		default:
			return buildHeatmap(result), nil
		}
	default:
		return nil, &model.ConfigurationError{Field: "chart", Reason: fmt.Sprintf("unknown chart type %q", chartType)}
	}
}

func chartDimsError(chartType string, want, got int) error {
	return &model.ConfigurationError{
		Field:  "chart",
		Reason: fmt.Sprintf("%s needs %d grouping dimension(s), analysis has %d", chartType, want, got),
	}
}

func buildDonut(result *model.AggregationResult) renderable {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: chartTitle(result.Name)}))

	data := make([]opts.PieData, 0, len(result.Groups))
	for _, g := range result.Groups {
		data = append(data, opts.PieData{Name: g.Labels[0], Value: g.Count})
	}
	pie.AddSeries(result.GroupBy[0], data).
		SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "70%"}}))
	return pie
}

func buildBar(result *model.AggregationResult, spec model.AnalysisSpec, horizontal bool) renderable {
	bar := charts.NewBar()

	valueName := "respondents"
	if spec.Rate != nil {
		valueName = "% yes"
	}
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: chartTitle(result.Name)}),
		charts.WithXAxisOpts(opts.XAxis{Name: result.GroupBy[0]}),
		charts.WithYAxisOpts(opts.YAxis{Name: valueName}),
	)

	labels := make([]string, 0, len(result.Groups))
	values := make([]opts.BarData, 0, len(result.Groups))
	for _, g := range result.Groups {
		labels = append(labels, g.Labels[0])
		if spec.Rate != nil {
			values = append(values, opts.BarData{Value: roundPercent(rateOf(g))})
		} else {
			values = append(values, opts.BarData{Value: g.Count})
		}
	}
	bar.SetXAxis(labels).AddSeries(valueName, values)
	if horizontal {
		bar.XYReversal()
	}
	return bar
}

func buildGroupedBar(result *model.AggregationResult) renderable {
	primary, series, counts := crossTab(result)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: chartTitle(result.Name)}),
		charts.WithXAxisOpts(opts.XAxis{Name: result.GroupBy[0]}),
		charts.WithYAxisOpts(opts.YAxis{Name: "respondents"}),
	)
	bar.SetXAxis(primary)
	for _, s := range series {
		values := make([]opts.BarData, 0, len(primary))
		for _, p := range primary {
			values = append(values, opts.BarData{Value: counts[p][s]})
		}
		bar.AddSeries(s, values)
	}
	return bar
}

func buildStackedPercent(result *model.AggregationResult) renderable {
	primary, series, counts := crossTab(result)

	// Per-category totals turn counts into a 100% stack.
	totals := make(map[string]int, len(primary))
	for _, p := range primary {
		for _, s := range series {
			totals[p] += counts[p][s]
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: chartTitle(result.Name)}),
		charts.WithXAxisOpts(opts.XAxis{Name: result.GroupBy[0]}),
		charts.WithYAxisOpts(opts.YAxis{Name: "% of category"}),
	)
	bar.SetXAxis(primary)
	for _, s := range series {
		values := make([]opts.BarData, 0, len(primary))
		for _, p := range primary {
			pct := 0.0
			if totals[p] > 0 {
				pct = roundPercent(float64(counts[p][s]) / float64(totals[p]))
			}
			values = append(values, opts.BarData{Value: pct})
		}
		bar.AddSeries(s, values, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}
	return bar
}

func buildHeatmap(result *model.AggregationResult) renderable {
	primary, series, counts := crossTab(result)

	maxCount := 0
	data := make([]opts.HeatMapData, 0, len(primary)*len(series))
	for xi, p := range primary {
		for yi, s := range series {
			count := counts[p][s]
			if count > maxCount {
				maxCount = count
			}
			data = append(data, opts.HeatMapData{Value: []interface{}{xi, yi, count}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: chartTitle(result.Name)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: result.GroupBy[0]}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: result.GroupBy[1], Data: series}),
		charts.WithVisualMapOpts(opts.VisualMap{Min: 0, Max: float32(maxCount)}),
	)
	hm.SetXAxis(primary).AddSeries("respondents", data)
	return hm
}

// crossTab pivots a two-dimensional aggregation into primary categories,
// series labels, and a count matrix. Primary order follows the result's
// group order; series labels follow the second column's natural order.
func crossTab(result *model.AggregationResult) (primary, series []string, counts map[string]map[string]int) {
	counts = make(map[string]map[string]int)
	seenPrimary := make(map[string]bool)
	seenSeries := make(map[string]bool)

	for _, g := range result.Groups {
		p, s := g.Labels[0], g.Labels[1]
		if !seenPrimary[p] {
			seenPrimary[p] = true
			primary = append(primary, p)
		}
		if !seenSeries[s] {
			seenSeries[s] = true
			series = append(series, s)
		}
		if counts[p] == nil {
			counts[p] = make(map[string]int)
		}
		counts[p][s] += g.Count
	}

	secondCol := result.GroupBy[1]
	sort.Slice(series, func(i, j int) bool { return labelLess(secondCol, series[i], series[j]) })
	return primary, series, counts
}

func writeChart(chart renderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return chart.Render(f)
}

func chartTitle(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func roundPercent(v float64) float64 {
	return math.Round(v*1000) / 10
}
