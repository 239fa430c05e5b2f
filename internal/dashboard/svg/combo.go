package svg

import (
	"fmt"
	"strings"
)

// Combo renders bars for one series with a line overlaid for a second, both
// on a shared scale. Used for the monthly revenue-vs-profit view.
func Combo(width, height int, bars, line []float64, labels []string, opts Opts) string {
	if len(labels) == 0 || len(bars) != len(labels) || len(line) != len(labels) {
		return empty(width, height, opts, "No data")
	}
	f := newFrame(width, height, opts)
	barColor := fallback(opts.ColorA, "#0ea5e9")
	lineColor := fallback(opts.ColorB, "#16a34a")

	minVal, maxVal := valueBounds(bars, line)
	scale := f.chartH / (maxVal - minVal)
	zeroY := f.padding + f.chartH + minVal*scale

	groups := len(labels)
	groupWidth := f.chartW / float64(groups)
	barWidth := groupWidth * 0.5

	var b strings.Builder
	f.open(&b, fallback(opts.Title, "Combo chart"), fallback(opts.Description, "Bars with trend line"))
	f.grid(&b, minVal, maxVal)
	f.axes(&b)

	for i, value := range bars {
		center := f.padding + float64(i)*groupWidth + groupWidth/2
		top := zeroY - value*scale
		barH := value * scale
		if barH < 0 {
			top = zeroY
			barH = -barH
		}
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"></rect>`,
			center-barWidth/2, top, barWidth, barH, barColor)
		f.xLabel(&b, center, labels[i])
	}

	var path strings.Builder
	for i, value := range line {
		x := f.padding + float64(i)*groupWidth + groupWidth/2
		y := zeroY - value*scale
		if i == 0 {
			fmt.Fprintf(&path, "M%.2f %.2f", x, y)
		} else {
			fmt.Fprintf(&path, " L%.2f %.2f", x, y)
		}
	}
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round"></path>`,
		path.String(), lineColor)
	for i, value := range line {
		x := f.padding + float64(i)*groupWidth + groupWidth/2
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="%s"></circle>`, x, zeroY-value*scale, lineColor)
	}

	legend(&b, f, fallback(opts.SeriesALabel, "Bars"), barColor, fallback(opts.SeriesBLabel, "Line"), lineColor)
	b.WriteString("</svg>")
	return b.String()
}
