package fitnessController

import (
	"testing"
	"time"

	. "tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryOn(day int) *FitnessEntry {
	return &FitnessEntry{
		EntryModel: EntryModel{
			Date: time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestFilterRange_BoundsInclusive(t *testing.T) {
	entries := []*FitnessEntry{entryOn(1), entryOn(5), entryOn(10), entryOn(15)}

	start := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	got := filterRange(entries, start, end)

	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Date.Day())
	assert.Equal(t, 10, got[1].Date.Day())
}

func TestFilterRange_Empty(t *testing.T) {
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, filterRange(nil, start, start))
}

func TestReverse(t *testing.T) {
	entries := []*FitnessEntry{entryOn(1), entryOn(2), entryOn(3)}

	got := reverse(entries)

	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].Date.Day())
	assert.Equal(t, 1, got[2].Date.Day())

	// Input order untouched
	assert.Equal(t, 1, entries[0].Date.Day())
}
