// Package svg renders the dashboard charts as standalone SVG documents.
// Values are scaled linearly into a fixed viewport; renderers never fail on
// empty or negative series, they draw an empty frame instead so one blank
// chart cannot take the whole dashboard down.
package svg

// Opts customises a chart. Zero values fall back to the package defaults.
type Opts struct {
	Title        string
	Description  string
	SeriesALabel string
	SeriesBLabel string
	ColorA       string
	ColorB       string
	AxisColor    string
	GridColor    string
	Padding      float64
	TickCount    int
}

// Defaults shared by all chart types.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 28.0
	DefaultTicks   = 4
	MaxLabelRunes  = 12
)
