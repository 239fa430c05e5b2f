package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Bars renders a grouped bar chart comparing two series per label. seriesB
// may be nil for a single-series chart.
func Bars(width, height int, seriesA, seriesB []float64, labels []string, opts Opts) string {
	if len(labels) == 0 || len(seriesA) != len(labels) || (seriesB != nil && len(seriesB) != len(labels)) {
		return empty(width, height, opts, "No data")
	}
	f := newFrame(width, height, opts)
	colorA := fallback(opts.ColorA, "#0ea5e9")
	colorB := fallback(opts.ColorB, "#f97316")

	minVal, maxVal := valueBounds(seriesA, seriesB)
	scale := f.chartH / (maxVal - minVal)
	zeroY := f.padding + f.chartH + minVal*scale

	groups := len(labels)
	groupWidth := f.chartW / float64(groups)
	barWidth := groupWidth * 0.3
	if seriesB == nil {
		barWidth = groupWidth * 0.5
	}

	var b strings.Builder
	f.open(&b, fallback(opts.Title, "Bar chart"), fallback(opts.Description, "Comparison data"))
	f.grid(&b, minVal, maxVal)
	f.axes(&b)

	drawBar := func(x, value float64, color string) {
		top := zeroY - value*scale
		barH := value * scale
		if barH < 0 {
			top = zeroY
			barH = -barH
		}
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"></rect>`,
			x, top, barWidth, barH, color)
	}

	for i := range labels {
		groupX := f.padding + float64(i)*groupWidth
		center := groupX + groupWidth/2
		if seriesB == nil {
			drawBar(center-barWidth/2, seriesA[i], colorA)
		} else {
			drawBar(center-barWidth-1, seriesA[i], colorA)
			drawBar(center+1, seriesB[i], colorB)
		}
		f.xLabel(&b, center, labels[i])
	}

	if seriesB != nil {
		legend(&b, f, opts.SeriesALabel, colorA, opts.SeriesBLabel, colorB)
	}

	b.WriteString("</svg>")
	return b.String()
}

func legend(b *strings.Builder, f frame, labelA, colorA, labelB, colorB string) {
	x := f.padding + f.chartW - 150
	y := f.padding - 12
	fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="8" height="8" fill="%s"></rect>`, x, y, colorA)
	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" font-size="10">%s</text>`, x+12, y+8, template.HTMLEscapeString(fallback(labelA, "Series A")))
	fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="8" height="8" fill="%s"></rect>`, x+75, y, colorB)
	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" font-size="10">%s</text>`, x+87, y+8, template.HTMLEscapeString(fallback(labelB, "Series B")))
}
