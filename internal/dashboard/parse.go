package dashboard

import (
	"regexp"
	"strconv"
	"strings"
)

// Grouping labels derived from product names. Names that carry no recognised
// token fall into the Unknown group rather than being dropped.
const (
	SideDouble     = "Double"
	SideSingle     = "Single"
	SideNonPrinted = "Non-Printed"
	SideUnknown    = "Unknown"

	ColourTri     = "Tri"
	ColourDouble  = "Double"
	ColourSingle  = "Single"
	ColourNone    = "None"
	ColourUnknown = "Unknown"
)

var (
	sideRe       = regexp.MustCompile(`(?i)\b(double|single)\s+side\b`)
	nonPrintedRe = regexp.MustCompile(`(?i)\bnon[\s-]?printed\b`)
	colourRe     = regexp.MustCompile(`(?i)\b(tri|double|single|no)\s+colou?r\b`)
	dimsRe       = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*[xX]\s*(\d+(?:\.\d+)?)\b`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

// NameTraits are the attributes read out of a product display name by
// lexical pattern matching. A name like "Double Side Tri Colour 10x12 Cover"
// parses to side=Double, colour=Tri, dims=10x12, area=120, base=Cover.
type NameTraits struct {
	Side   string
	Colour string
	Dims   string
	Width  float64
	Height float64
	Area   float64
	Base   string
}

// ParseName extracts grouping traits from a product name. It never fails;
// unmatched attributes come back as Unknown (or None for the colour of a
// non-printed product) and a zero area.
func ParseName(name string) NameTraits {
	traits := NameTraits{Side: SideUnknown, Colour: ColourUnknown}
	remainder := name

	if m := sideRe.FindStringSubmatch(remainder); m != nil {
		traits.Side = titled(m[1])
		remainder = strings.Replace(remainder, m[0], " ", 1)
	} else if m := nonPrintedRe.FindString(remainder); m != "" {
		traits.Side = SideNonPrinted
		traits.Colour = ColourNone
		remainder = strings.Replace(remainder, m, " ", 1)
	}

	if m := colourRe.FindStringSubmatch(remainder); m != nil {
		if strings.EqualFold(m[1], "no") {
			traits.Colour = ColourNone
		} else {
			traits.Colour = titled(m[1])
		}
		remainder = strings.Replace(remainder, m[0], " ", 1)
	}

	if m := dimsRe.FindStringSubmatch(remainder); m != nil {
		width, werr := strconv.ParseFloat(m[1], 64)
		height, herr := strconv.ParseFloat(m[2], 64)
		if werr == nil && herr == nil {
			traits.Dims = m[1] + "x" + m[2]
			traits.Width = width
			traits.Height = height
			traits.Area = width * height
			remainder = strings.Replace(remainder, m[0], " ", 1)
		}
	}

	traits.Base = strings.TrimSpace(spaceRe.ReplaceAllString(remainder, " "))
	if traits.Base == "" {
		traits.Base = name
	}
	return traits
}

func titled(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
