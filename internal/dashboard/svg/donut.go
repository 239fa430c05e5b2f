package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

var donutPalette = []string{"#2563eb", "#f97316", "#16a34a", "#a855f7", "#dc2626", "#0891b2"}

// Donut renders a ring chart of the given slices. Negative or zero slices
// are skipped; with no positive slice it renders the empty frame.
func Donut(size int, values []float64, labels []string, opts Opts) string {
	if size <= 0 {
		size = DefaultHeight
	}
	if len(values) != len(labels) {
		return empty(size, size, opts, "No data")
	}
	var total float64
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return empty(size, size, opts, "No data")
	}

	cx := float64(size) / 2
	cy := float64(size) / 2
	outer := float64(size)/2 - 10
	thickness := outer * 0.38

	var b strings.Builder
	titleID := makeID(opts.Title, "title")
	descID := makeID(opts.Title, "desc")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-labelledby="%s %s">`, size, size, titleID, descID)
	fmt.Fprintf(&b, `<title id="%s">%s</title>`, titleID, template.HTMLEscapeString(fallback(opts.Title, "Donut chart")))
	fmt.Fprintf(&b, `<desc id="%s">%s</desc>`, descID, template.HTMLEscapeString(fallback(opts.Description, "Share data")))

	angle := -math.Pi / 2 // start at twelve o'clock
	slice := 0
	for i, v := range values {
		if v <= 0 {
			continue
		}
		sweep := v / total * 2 * math.Pi
		// A full-circle arc degenerates in SVG path syntax; cap just short.
		if sweep >= 2*math.Pi {
			sweep = 2*math.Pi - 1e-4
		}
		x1 := cx + outer*math.Cos(angle)
		y1 := cy + outer*math.Sin(angle)
		x2 := cx + outer*math.Cos(angle+sweep)
		y2 := cy + outer*math.Sin(angle+sweep)
		large := 0
		if sweep > math.Pi {
			large = 1
		}
		color := donutPalette[slice%len(donutPalette)]
		fmt.Fprintf(&b, `<path d="M%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f" fill="none" stroke="%s" stroke-width="%.2f"><title>%s</title></path>`,
			x1, y1, outer, outer, large, x2, y2, color, thickness,
			template.HTMLEscapeString(fmt.Sprintf("%s: %s", labels[i], formatTick(v))))
		angle += sweep
		slice++
	}

	fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" font-size="13" text-anchor="middle" fill="#475569">%s</text>`,
		cx, cy+4, template.HTMLEscapeString(truncateLabel(formatTick(total))))
	b.WriteString("</svg>")
	return b.String()
}
