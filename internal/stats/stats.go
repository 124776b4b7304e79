// Package stats computes summary statistics over already-fetched entry
// slices. It performs no I/O and keeps no state.
package stats

import "time"

type Number interface {
	~int | ~int64 | ~float64
}

// Average returns the arithmetic mean of the selected field over entries
// where it is present. Missing measurements are excluded, not counted as
// zero. Returns nil when no entry carries a value: an average of nothing is
// undefined, and the caller picks the display fallback.
func Average[T any](entries []T, selector func(T) *float64) *float64 {
	var sum float64
	var count int

	for _, entry := range entries {
		if v := selector(entry); v != nil {
			sum += *v
			count++
		}
	}

	if count == 0 {
		return nil
	}

	avg := sum / float64(count)
	return &avg
}

// AverageInt is Average for integer-valued metrics such as 1-10 ratings.
func AverageInt[T any](entries []T, selector func(T) *int) *float64 {
	return Average(entries, func(entry T) *float64 {
		if v := selector(entry); v != nil {
			f := float64(*v)
			return &f
		}
		return nil
	})
}

// Sum totals the selected field treating missing values as zero. A sum of
// nothing is meaningfully 0, unlike Average.
func Sum[T any, N Number](entries []T, selector func(T) *N) N {
	var total N
	for _, entry := range entries {
		if v := selector(entry); v != nil {
			total += *v
		}
	}
	return total
}

// GroupCount tallies entries by a categorical field, skipping entries where
// the category is missing or empty.
func GroupCount[T any](entries []T, selector func(T) *string) map[string]int {
	counts := make(map[string]int)
	for _, entry := range entries {
		if v := selector(entry); v != nil && *v != "" {
			counts[*v]++
		}
	}
	return counts
}

// WeekWindow returns the Monday and Sunday of the ISO week containing ref.
// Pure calendar arithmetic: any two dates in the same week map to the same
// window regardless of time of day or zone offset of the input.
func WeekWindow(ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}
