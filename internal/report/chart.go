package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	topFilesLimit = 20
	xAxisRotate   = 60
	chartHeight   = "500px"
	barColor      = "#dc2626"
	styleTagLen   = 8 // len("</style>").
)

// renderTopFilesChart builds the most-edited-files bar chart and returns its
// embeddable fragment. Empty input produces no chart at all.
func renderTopFilesChart(ranked []Entry) (template.HTML, error) {
	if len(ranked) == 0 {
		return "", nil
	}

	top := ranked
	if len(top) > topFilesLimit {
		top = top[:topFilesLimit]
	}

	labels := make([]string, len(top))
	data := make([]opts.BarData, len(top))

	for i, e := range top {
		labels[i] = e.RelPath
		data[i] = opts.BarData{Value: e.Total}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Most edited files",
			Subtitle: "Files ranked by total number of commits touching their lines.",
			Left:     "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: xAxisRotate, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Edits"}),
	)

	bar.SetXAxis(labels)
	bar.AddSeries("Edits", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: barColor}))

	var buf bytes.Buffer

	err := bar.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return template.HTML(extractChartContent(buf.String())), nil
}

// extractChartContent lifts the chart div and script out of the full HTML
// page echarts emits so the fragment can be embedded in the index document.
func extractChartContent(html string) string {
	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			break
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			break
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}

	return content
}
