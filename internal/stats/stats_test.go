package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	value  *float64
	rating *int
	label  *string
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }
func s(v string) *string   { return &v }

func TestAverage_ExcludesMissingValues(t *testing.T) {
	entries := []sample{
		{value: f(6.0)},
		{value: nil},
		{value: f(8.0)},
	}

	avg := Average(entries, func(e sample) *float64 { return e.value })

	require.NotNil(t, avg)
	assert.InDelta(t, 7.0, *avg, 0.0001)
}

func TestAverage_AllMissing(t *testing.T) {
	entries := []sample{
		{value: nil},
		{value: nil},
	}

	avg := Average(entries, func(e sample) *float64 { return e.value })
	assert.Nil(t, avg)
}

func TestAverage_Empty(t *testing.T) {
	avg := Average(nil, func(e sample) *float64 { return e.value })
	assert.Nil(t, avg)
}

func TestAverageInt(t *testing.T) {
	entries := []sample{
		{rating: i(4)},
		{rating: nil},
		{rating: i(7)},
	}

	avg := AverageInt(entries, func(e sample) *int { return e.rating })

	require.NotNil(t, avg)
	assert.InDelta(t, 5.5, *avg, 0.0001)
}

func TestSum_MissingCountsAsZero(t *testing.T) {
	entries := []sample{
		{value: f(1.5)},
		{value: nil},
		{value: f(2.5)},
	}

	total := Sum(entries, func(e sample) *float64 { return e.value })
	assert.InDelta(t, 4.0, total, 0.0001)
}

func TestSum_Empty(t *testing.T) {
	total := Sum(nil, func(e sample) *float64 { return e.value })
	assert.Equal(t, 0.0, total)

	intTotal := Sum(nil, func(e sample) *int { return nil })
	assert.Equal(t, 0, intTotal)
}

func TestGroupCount(t *testing.T) {
	entries := []sample{
		{label: s("running")},
		{label: s("cycling")},
		{label: s("running")},
		{label: nil},
		{label: s("")},
	}

	counts := GroupCount(entries, func(e sample) *string { return e.label })

	assert.Equal(t, map[string]int{"running": 2, "cycling": 1}, counts)
}

func TestWeekWindow_MondayStart(t *testing.T) {
	// 2024-01-17 is a Wednesday
	start, end := WeekWindow(time.Date(2024, 1, 17, 15, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Sunday, end.Weekday())
}

func TestWeekWindow_SundayBelongsToSameWeek(t *testing.T) {
	// Sunday closes the week its Monday opened
	start, end := WeekWindow(time.Date(2024, 1, 21, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekWindow_SameWeekSameWindow(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	wantStart, wantEnd := WeekWindow(monday)
	for d := 0; d < 7; d++ {
		start, end := WeekWindow(monday.AddDate(0, 0, d))
		assert.Equal(t, wantStart, start, "day offset %d", d)
		assert.Equal(t, wantEnd, end, "day offset %d", d)
	}
}

func TestWeekWindow_YearBoundary(t *testing.T) {
	// 2024-01-01 is a Monday; the previous Sunday falls in 2023
	start, end := WeekWindow(time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), end)
}
