package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFor(t *testing.T) {
	for _, domain := range []Domain{DomainHealth, DomainMental, DomainFitness} {
		schema, ok := SchemaFor(domain)
		assert.True(t, ok, "domain %s", domain)
		assert.Equal(t, domain, schema.Domain)
		assert.NotEmpty(t, schema.Fields)
	}

	_, ok := SchemaFor(Domain("sleep"))
	assert.False(t, ok)
}

func TestValidateInput_UnknownField(t *testing.T) {
	schema, _ := SchemaFor(DomainHealth)

	err := schema.ValidateInput(map[string]any{"steps": 9000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestValidateInput_RatingBounds(t *testing.T) {
	schema, _ := SchemaFor(DomainMental)

	assert.NoError(t, schema.ValidateInput(map[string]any{"mood_rating": 1}))
	assert.NoError(t, schema.ValidateInput(map[string]any{"mood_rating": 10}))
	// JSON numbers arrive as float64
	assert.NoError(t, schema.ValidateInput(map[string]any{"mood_rating": float64(7)}))

	assert.Error(t, schema.ValidateInput(map[string]any{"mood_rating": 0}))
	assert.Error(t, schema.ValidateInput(map[string]any{"mood_rating": 11}))
	assert.Error(t, schema.ValidateInput(map[string]any{"mood_rating": 7.5}))
}

func TestValidateInput_Choices(t *testing.T) {
	schema, _ := SchemaFor(DomainFitness)

	for _, workoutType := range WorkoutTypes {
		assert.NoError(t, schema.ValidateInput(map[string]any{"workout_type": workoutType}))
	}

	assert.Error(t, schema.ValidateInput(map[string]any{"workout_type": "parkour"}))
	assert.Error(t, schema.ValidateInput(map[string]any{"workout_type": 3}))
}

func TestValidateInput_NilClearsField(t *testing.T) {
	schema, _ := SchemaFor(DomainHealth)

	assert.NoError(t, schema.ValidateInput(map[string]any{"weight": nil}))
}

func TestNormalize_CoercesJSONNumbers(t *testing.T) {
	schema, _ := SchemaFor(DomainFitness)

	out, err := schema.Normalize(map[string]any{
		"steps":        float64(8200),
		"distance":     float64(5),
		"workout_type": "running",
	})
	require.NoError(t, err)

	assert.Equal(t, 8200, out["steps"])
	assert.Equal(t, 5.0, out["distance"])
	assert.Equal(t, "running", out["workout_type"])
}

func TestNormalize_RejectsFractionalInt(t *testing.T) {
	schema, _ := SchemaFor(DomainFitness)

	_, err := schema.Normalize(map[string]any{"steps": 100.5})
	assert.Error(t, err)
}

func TestNormalize_RejectsTypeMismatch(t *testing.T) {
	schema, _ := SchemaFor(DomainHealth)

	_, err := schema.Normalize(map[string]any{"smoking": "yes"})
	assert.Error(t, err)

	_, err = schema.Normalize(map[string]any{"notes": 42})
	assert.Error(t, err)
}

func TestNormalize_PreservesNil(t *testing.T) {
	schema, _ := SchemaFor(DomainHealth)

	out, err := schema.Normalize(map[string]any{"weight": nil})
	require.NoError(t, err)

	value, present := out["weight"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 5, 3, 18, 45, 12, 900, time.FixedZone("CEST", 2*3600))
	out := DateOnly(in)

	assert.Equal(t, time.UTC, out.Location())
	assert.Equal(t, 0, out.Hour())
	assert.Equal(t, 0, out.Minute())

	// Two instants on the same UTC calendar day collapse to one date
	assert.Equal(t, DateOnly(in.Add(2*time.Hour)), out)
}
