package mentalController

import (
	"testing"

	. "tracker/internal/models"

	"github.com/stretchr/testify/assert"
)

func flag(v bool) *bool { return &v }

func TestStressorCounts(t *testing.T) {
	entries := []*MentalEntry{
		{WorkStress: flag(true), FinancialStress: flag(true)},
		{WorkStress: flag(true), HealthStress: flag(false)},
		{RelationshipStress: flag(true)},
		{},
	}

	counts := stressorCounts(entries)

	assert.Equal(t, map[string]int{
		"work":         2,
		"financial":    1,
		"relationship": 1,
	}, counts)
}

func TestStressorCounts_Empty(t *testing.T) {
	assert.Empty(t, stressorCounts(nil))
}
