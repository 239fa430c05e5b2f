package svg

import (
	"fmt"
	"strings"
)

// Line renders a single-series line chart with an area fill.
func Line(width, height int, series []float64, labels []string, opts Opts) string {
	if len(series) == 0 || len(series) != len(labels) {
		return empty(width, height, opts, "No data")
	}
	f := newFrame(width, height, opts)
	stroke := fallback(opts.ColorA, "#2563eb")
	fill := fallback(opts.ColorB, "rgba(37,99,235,0.12)")

	minVal, maxVal := valueBounds(series)
	scale := f.chartH / (maxVal - minVal)

	step := 0.0
	if len(series) > 1 {
		step = f.chartW / float64(len(series)-1)
	}
	pointX := func(i int) float64 {
		if len(series) > 1 {
			return f.padding + float64(i)*step
		}
		return f.padding + f.chartW/2
	}
	pointY := func(v float64) float64 {
		return f.padding + f.chartH - (v-minVal)*scale
	}

	var path strings.Builder
	for i, value := range series {
		if i == 0 {
			fmt.Fprintf(&path, "M%.2f %.2f", pointX(i), pointY(value))
		} else {
			fmt.Fprintf(&path, " L%.2f %.2f", pointX(i), pointY(value))
		}
	}

	var b strings.Builder
	f.open(&b, fallback(opts.Title, "Line chart"), fallback(opts.Description, "Trend data"))
	f.grid(&b, minVal, maxVal)
	f.axes(&b)

	base := f.padding + f.chartH
	fmt.Fprintf(&b, `<path d="%s L%.2f %.2f L%.2f %.2f Z" fill="%s" stroke="none" aria-hidden="true"></path>`,
		path.String(), pointX(len(series)-1), base, pointX(0), base, fill)
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round" stroke-linecap="round"></path>`,
		path.String(), stroke)

	for i, value := range series {
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="%s"></circle>`, pointX(i), pointY(value), stroke)
	}
	for i, label := range labels {
		f.xLabel(&b, pointX(i), label)
	}

	b.WriteString("</svg>")
	return b.String()
}
