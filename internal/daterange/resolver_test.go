package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveAllTimeUnbounded(t *testing.T) {
	r, err := Resolve(PresetAllTime, time.Now())
	require.NoError(t, err)
	require.Nil(t, r.Start)
	require.Nil(t, r.End)
	require.False(t, r.Bounded())
}

func TestResolveUnknownPreset(t *testing.T) {
	_, err := Resolve(Preset("fortnight"), time.Now())
	require.Error(t, err)
}

func TestResolveOrderingAndDeterminism(t *testing.T) {
	now := time.Date(2025, 3, 19, 10, 4, 31, 0, time.UTC)
	for _, preset := range Presets {
		if preset == PresetAllTime || preset == PresetCustom {
			continue
		}
		first, err := Resolve(preset, now)
		require.NoError(t, err, preset)
		require.NotNil(t, first.Start, preset)
		require.NotNil(t, first.End, preset)
		require.False(t, first.End.Before(*first.Start), "end before start for %s", preset)

		second, err := Resolve(preset, now)
		require.NoError(t, err)
		require.True(t, first.Start.Equal(*second.Start), preset)
		require.True(t, first.End.Equal(*second.End), preset)
	}
}

func TestResolveTodayIsShiftedMidnight(t *testing.T) {
	// 20:00 UTC on March 19 is already March 20 in the +05:30 frame, so
	// "today" must start at March 20 00:00 +05:30 == March 19 18:30 UTC.
	now := time.Date(2025, 3, 19, 20, 0, 0, 0, time.UTC)
	r, err := Resolve(PresetToday, now)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 19, 18, 30, 0, 0, time.UTC), r.Start.UTC())
	require.Equal(t, "2025-03-20", DayKey(*r.Start))
}

func TestResolveTodayIndependentOfCallerZone(t *testing.T) {
	utc := time.Date(2025, 6, 1, 4, 0, 0, 0, time.UTC)
	elsewhere := utc.In(time.FixedZone("XYZ", -9*3600))
	a, err := Resolve(PresetToday, utc)
	require.NoError(t, err)
	b, err := Resolve(PresetToday, elsewhere)
	require.NoError(t, err)
	require.True(t, a.Start.Equal(*b.Start))
	require.True(t, a.End.Equal(*b.End))
}

func TestResolveWeekStartsMonday(t *testing.T) {
	// 2025-03-19 is a Wednesday in the shifted frame too.
	now := time.Date(2025, 3, 19, 10, 0, 0, 0, time.UTC)
	r, err := Resolve(PresetThisWeek, now)
	require.NoError(t, err)
	start := r.Start.UTC().Add(Offset)
	require.Equal(t, time.Monday, start.Weekday())
	require.Equal(t, 17, start.Day())

	last, err := Resolve(PresetLastWeek, now)
	require.NoError(t, err)
	require.Equal(t, time.Monday, last.Start.UTC().Add(Offset).Weekday())
	require.True(t, last.End.Before(*r.Start))
}

func TestResolveMonthBoundaries(t *testing.T) {
	now := time.Date(2025, 3, 19, 10, 0, 0, 0, time.UTC)

	this, err := Resolve(PresetThisMonth, now)
	require.NoError(t, err)
	require.Equal(t, "2025-03-01", this.Start.UTC().Add(Offset).Format("2006-01-02"))
	require.Equal(t, "2025-03-31", this.End.UTC().Add(Offset).Format("2006-01-02"))

	last, err := Resolve(PresetLastMonth, now)
	require.NoError(t, err)
	require.Equal(t, "2025-02-01", last.Start.UTC().Add(Offset).Format("2006-01-02"))
	require.Equal(t, "2025-02-28", last.End.UTC().Add(Offset).Format("2006-01-02"))
}

func TestResolveLastYear(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	r, err := Resolve(PresetLastYear, now)
	require.NoError(t, err)
	require.Equal(t, "2024-01-01", r.Start.UTC().Add(Offset).Format("2006-01-02"))
	require.Equal(t, "2024-12-31", r.End.UTC().Add(Offset).Format("2006-01-02"))
}

func TestResolveCustom(t *testing.T) {
	r, err := ResolveCustom("2025-01-10", "2025-01-20")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 1, 9, 18, 30, 0, 0, time.UTC), r.Start.UTC())
	require.Equal(t, "2025-01-10", DayKey(*r.Start))
	require.Equal(t, "2025-01-20", DayKey(*r.End))
	require.True(t, r.End.After(*r.Start))
}

func TestResolveCustomOpenEnded(t *testing.T) {
	r, err := ResolveCustom("", "2025-01-20")
	require.NoError(t, err)
	require.Nil(t, r.Start)
	require.NotNil(t, r.End)

	r, err = ResolveCustom("2025-01-20", "")
	require.NoError(t, err)
	require.NotNil(t, r.Start)
	require.Nil(t, r.End)

	_, err = ResolveCustom("20/01/2025", "")
	require.Error(t, err)
}

func TestRangeContains(t *testing.T) {
	r, err := ResolveCustom("2025-01-10", "2025-01-11")
	require.NoError(t, err)
	require.True(t, r.Contains(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)))
	require.False(t, r.Contains(time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)))
}

func TestMonthKeyStaysPlainUTC(t *testing.T) {
	// 19:00 UTC on Jan 31 is Feb 1 in the business frame: the day bucket
	// moves forward while the month bucket deliberately does not.
	at := time.Date(2025, 1, 31, 19, 0, 0, 0, time.UTC)
	require.Equal(t, "2025-02-01", DayKey(at))
	require.Equal(t, "2025-01", MonthKey(at))
}
