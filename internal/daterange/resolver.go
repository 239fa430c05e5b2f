// Package daterange converts named presets or custom calendar dates into
// inclusive instant ranges. All boundaries are computed in a fixed +05:30
// frame; no timezone database or DST rule is ever consulted, so results are
// identical regardless of the host timezone.
package daterange

import (
	"fmt"
	"time"
)

// Offset is the fixed business-day offset. Day, week, month and year
// boundaries are taken in "now + Offset" and shifted back afterwards.
const Offset = 5*time.Hour + 30*time.Minute

// Preset identifies one of the named date windows offered by the dashboard.
type Preset string

const (
	PresetAllTime     Preset = "all_time"
	PresetToday       Preset = "today"
	PresetYesterday   Preset = "yesterday"
	PresetThisWeek    Preset = "this_week"
	PresetLastWeek    Preset = "last_week"
	PresetThisMonth   Preset = "this_month"
	PresetLastMonth   Preset = "last_month"
	PresetLast3Months Preset = "last_3_months"
	PresetLast30Days  Preset = "last_30_days"
	PresetThisYear    Preset = "this_year"
	PresetLastYear    Preset = "last_year"
	PresetCustom      Preset = "custom"
)

// Presets lists every supported preset in display order.
var Presets = []Preset{
	PresetAllTime,
	PresetToday,
	PresetYesterday,
	PresetThisWeek,
	PresetLastWeek,
	PresetThisMonth,
	PresetLastMonth,
	PresetLast3Months,
	PresetLast30Days,
	PresetThisYear,
	PresetLastYear,
	PresetCustom,
}

// Range is an inclusive pair of absolute instants. A nil bound means
// unbounded on that side; all-time is nil on both.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// Bounded reports whether at least one side of the range is set.
func (r Range) Bounded() bool {
	return r.Start != nil || r.End != nil
}

// Contains reports whether t falls inside the (inclusive) range.
func (r Range) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Valid reports a well-formed preset name.
func (p Preset) Valid() bool {
	for _, candidate := range Presets {
		if candidate == p {
			return true
		}
	}
	return false
}

// Resolve computes the instant range for a preset against the supplied "now".
// It is pure: the same preset and now always produce the same range. Custom
// must go through ResolveCustom and resolves here to all-time.
func Resolve(preset Preset, now time.Time) (Range, error) {
	if !preset.Valid() {
		return Range{}, fmt.Errorf("daterange: unknown preset %q", preset)
	}
	if preset == PresetAllTime || preset == PresetCustom {
		return Range{}, nil
	}

	// Shift into the business frame, compute calendar boundaries there and
	// shift the result back.
	shifted := now.UTC().Add(Offset)

	var start, end time.Time
	switch preset {
	case PresetToday:
		start = startOfDay(shifted)
		end = endOfDay(shifted)
	case PresetYesterday:
		y := shifted.AddDate(0, 0, -1)
		start = startOfDay(y)
		end = endOfDay(y)
	case PresetThisWeek:
		start = startOfWeek(shifted)
		end = endOfDay(start.AddDate(0, 0, 6))
	case PresetLastWeek:
		start = startOfWeek(shifted).AddDate(0, 0, -7)
		end = endOfDay(start.AddDate(0, 0, 6))
	case PresetThisMonth:
		start = startOfMonth(shifted)
		end = endOfMonth(shifted)
	case PresetLastMonth:
		prev := startOfMonth(shifted).AddDate(0, 0, -1)
		start = startOfMonth(prev)
		end = endOfMonth(prev)
	case PresetLast3Months:
		start = startOfDay(shifted.AddDate(0, -3, 0))
		end = endOfDay(shifted)
	case PresetLast30Days:
		start = startOfDay(shifted.AddDate(0, 0, -29))
		end = endOfDay(shifted)
	case PresetThisYear:
		start = time.Date(shifted.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end = endOfDay(time.Date(shifted.Year(), time.December, 31, 0, 0, 0, 0, time.UTC))
	case PresetLastYear:
		start = time.Date(shifted.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = endOfDay(time.Date(shifted.Year()-1, time.December, 31, 0, 0, 0, 0, time.UTC))
	}

	return rangeOf(start.Add(-Offset), end.Add(-Offset)), nil
}

// ResolveCustom interprets the given "2006-01-02" strings as whole calendar
// days in the business frame: start-of-day for from, end-of-day for to. An
// empty string leaves that side unbounded.
func ResolveCustom(from, to string) (Range, error) {
	var r Range
	if from != "" {
		day, err := time.Parse("2006-01-02", from)
		if err != nil {
			return Range{}, fmt.Errorf("daterange: parse custom start: %w", err)
		}
		start := startOfDay(day).Add(-Offset)
		r.Start = &start
	}
	if to != "" {
		day, err := time.Parse("2006-01-02", to)
		if err != nil {
			return Range{}, fmt.Errorf("daterange: parse custom end: %w", err)
		}
		end := endOfDay(day).Add(-Offset)
		r.End = &end
	}
	return r, nil
}

// DayKey buckets an instant by its calendar day in the business frame.
func DayKey(t time.Time) string {
	return t.UTC().Add(Offset).Format("2006-01-02")
}

// MonthKey buckets an instant by plain-UTC month. The day bucket above uses
// the business frame while this one does not; the mismatch is inherited from
// the reports this service replaces and is kept so that boundary-month totals
// do not shift. See DESIGN.md before unifying them.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func rangeOf(start, end time.Time) Range {
	return Range{Start: &start, End: &end}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

func startOfWeek(t time.Time) time.Time {
	// Monday-based week.
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return startOfDay(t.AddDate(0, 0, -(wd - 1)))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	firstNext := startOfMonth(t).AddDate(0, 1, 0)
	return endOfDay(firstNext.AddDate(0, 0, -1))
}
