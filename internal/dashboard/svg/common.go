package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// frame holds the resolved drawing geometry shared by the renderers.
type frame struct {
	width, height int
	padding       float64
	chartW        float64
	chartH        float64
	ticks         int
	axisColor     string
	gridColor     string
}

func newFrame(width, height int, opts Opts) frame {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	ticks := opts.TickCount
	if ticks <= 0 {
		ticks = DefaultTicks
	}
	f := frame{
		width:     width,
		height:    height,
		padding:   padding,
		chartW:    float64(width) - 2*padding,
		chartH:    float64(height) - 2*padding,
		ticks:     ticks,
		axisColor: fallback(opts.AxisColor, "#475569"),
		gridColor: fallback(opts.GridColor, "#cbd5f5"),
	}
	if f.chartW <= 0 || f.chartH <= 0 {
		// Degenerate viewport: fall back to the defaults instead of failing.
		f.width, f.height, f.padding = DefaultWidth, DefaultHeight, DefaultPadding
		f.chartW = float64(f.width) - 2*f.padding
		f.chartH = float64(f.height) - 2*f.padding
	}
	return f
}

// open writes the svg element with an accessible title and description.
func (f frame) open(b *strings.Builder, title, desc string) {
	titleID := makeID(title, "title")
	descID := makeID(title, "desc")
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-labelledby="%s %s">`, f.width, f.height, titleID, descID)
	fmt.Fprintf(b, `<title id="%s">%s</title>`, titleID, template.HTMLEscapeString(title))
	fmt.Fprintf(b, `<desc id="%s">%s</desc>`, descID, template.HTMLEscapeString(desc))
}

// grid draws horizontal gridlines with tick value labels for the given scale.
func (f frame) grid(b *strings.Builder, minVal, maxVal float64) {
	for i := 0; i <= f.ticks; i++ {
		ratio := float64(i) / float64(f.ticks)
		y := f.padding + f.chartH - ratio*f.chartH
		value := minVal + (maxVal-minVal)*ratio
		fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="0.5" stroke-dasharray="2,4" aria-hidden="true"></line>`,
			f.padding, y, f.padding+f.chartW, y, f.gridColor)
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="end">%s</text>`,
			f.padding-6, y+4, f.axisColor, template.HTMLEscapeString(formatTick(value)))
	}
}

// axes draws the x and y axis lines.
func (f frame) axes(b *strings.Builder) {
	fmt.Fprintf(b, `<g stroke="%s">`, f.axisColor)
	fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="1"></line>`,
		f.padding, f.padding, f.padding, f.padding+f.chartH)
	fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="1"></line>`,
		f.padding, f.padding+f.chartH, f.padding+f.chartW, f.padding+f.chartH)
	b.WriteString("</g>")
}

func (f frame) xLabel(b *strings.Builder, x float64, label string) {
	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="middle">%s</text>`,
		x, f.padding+f.chartH+14, f.axisColor, template.HTMLEscapeString(truncateLabel(label)))
}

// valueBounds expands the series bounds so zero is always on the scale and a
// flat series still gets a non-degenerate axis.
func valueBounds(series ...[]float64) (float64, float64) {
	minVal, maxVal := 0.0, 0.0
	for _, s := range series {
		for _, v := range s {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	return minVal, maxVal
}

func fallback(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// truncateLabel caps axis labels so long client or product names cannot
// overflow the viewport.
func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxLabelRunes {
		return s
	}
	return string(runes[:MaxLabelRunes-1]) + "…"
}

func makeID(base, suffix string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "chart"
	}
	return cleaned + "-" + suffix
}

func formatTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", v/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	default:
		if almostEqual(v, math.Round(v)) {
			return fmt.Sprintf("%.0f", v)
		}
		return fmt.Sprintf("%.2f", v)
	}
}

// empty renders a frame with a centred placeholder when a chart has no data.
func empty(width, height int, opts Opts, note string) string {
	f := newFrame(width, height, opts)
	var b strings.Builder
	f.open(&b, fallback(opts.Title, "Chart"), fallback(opts.Description, note))
	f.axes(&b)
	fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" fill="%s" font-size="12" text-anchor="middle">%s</text>`,
		f.padding+f.chartW/2, f.padding+f.chartH/2, f.axisColor, template.HTMLEscapeString(note))
	b.WriteString("</svg>")
	return b.String()
}
