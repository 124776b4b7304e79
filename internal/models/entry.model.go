package models

import (
	"fmt"
	"math"
	"time"
)

type Domain string

const (
	DomainHealth  Domain = "health"
	DomainMental  Domain = "mental"
	DomainFitness Domain = "fitness"
)

// DailyEntry is implemented by every per-day tracking record.
type DailyEntry interface {
	EntryID() int
	Owner() string
	EntryDate() time.Time
}

type FieldKind int

const (
	KindFloat FieldKind = iota
	KindInt
	KindRating // integer bounded to [1,10] at the input boundary
	KindBool
	KindText
	KindChoice // string restricted to an enumerated set
)

// FieldSpec describes one updatable column of a domain entry.
type FieldSpec struct {
	Kind    FieldKind
	Choices []string
}

// DomainSchema is the field allowlist for one tracking domain. All partial
// updates flow through it; columns not listed here can never be written by
// an upsert.
type DomainSchema struct {
	Domain Domain
	Fields map[string]FieldSpec
}

var WorkoutTypes = []string{
	"running", "walking", "cycling", "swimming",
	"strength", "hiit", "yoga", "pilates", "other",
}

func rating() FieldSpec { return FieldSpec{Kind: KindRating} }

var healthSchema = DomainSchema{
	Domain: DomainHealth,
	Fields: map[string]FieldSpec{
		"weight":                   {Kind: KindFloat},
		"blood_pressure_systolic":  {Kind: KindInt},
		"blood_pressure_diastolic": {Kind: KindInt},
		"heart_rate":               {Kind: KindInt},
		"body_temperature":         {Kind: KindFloat},
		"sleep_duration":           {Kind: KindFloat},
		"sleep_quality":            rating(),
		"energy_level":             rating(),
		"stress_level":             rating(),
		"water_intake":             {Kind: KindFloat},
		"meal_quality":             rating(),
		"alcohol_consumption":      {Kind: KindBool},
		"smoking":                  {Kind: KindBool},
		"symptoms":                 {Kind: KindText},
		"notes":                    {Kind: KindText},
	},
}

var mentalSchema = DomainSchema{
	Domain: DomainMental,
	Fields: map[string]FieldSpec{
		"mood_rating":         rating(),
		"anxiety_level":       rating(),
		"depression_level":    rating(),
		"focus_clarity":       rating(),
		"motivation":          rating(),
		"social_connection":   rating(),
		"meditation_minutes":  {Kind: KindInt},
		"gratitude_practice":  {Kind: KindBool},
		"therapy_session":     {Kind: KindBool},
		"work_stress":         {Kind: KindBool},
		"financial_stress":    {Kind: KindBool},
		"relationship_stress": {Kind: KindBool},
		"health_stress":       {Kind: KindBool},
		"triggers":            {Kind: KindText},
		"coping_strategies":   {Kind: KindText},
		"journal_entry":       {Kind: KindText},
	},
}

var fitnessSchema = DomainSchema{
	Domain: DomainFitness,
	Fields: map[string]FieldSpec{
		"steps":             {Kind: KindInt},
		"distance":          {Kind: KindFloat},
		"active_minutes":    {Kind: KindInt},
		"calories_burned":   {Kind: KindInt},
		"workout_type":      {Kind: KindChoice, Choices: WorkoutTypes},
		"workout_duration":  {Kind: KindInt},
		"workout_intensity": rating(),
		"heart_rate_avg":    {Kind: KindInt},
		"heart_rate_max":    {Kind: KindInt},
		"recovery_score":    rating(),
		"soreness_level":    rating(),
		"workout_notes":     {Kind: KindText},
	},
}

func SchemaFor(domain Domain) (DomainSchema, bool) {
	switch domain {
	case DomainHealth:
		return healthSchema, true
	case DomainMental:
		return mentalSchema, true
	case DomainFitness:
		return fitnessSchema, true
	}
	return DomainSchema{}, false
}

// ValidateInput checks caller-facing business rules: known fields, rating
// bounds, enumerated choices. It belongs at the request boundary; the store
// itself only re-checks Go types via Normalize.
func (s DomainSchema) ValidateInput(fields map[string]any) error {
	for name, value := range fields {
		spec, ok := s.Fields[name]
		if !ok {
			return fmt.Errorf("unknown field %q for domain %s", name, s.Domain)
		}

		if value == nil {
			continue
		}

		switch spec.Kind {
		case KindRating:
			n, err := toInt(value)
			if err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
			if n < 1 || n > 10 {
				return fmt.Errorf("field %q must be between 1 and 10, got %d", name, n)
			}
		case KindChoice:
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("field %q must be a string", name)
			}
			if !contains(spec.Choices, str) {
				return fmt.Errorf("field %q has invalid value %q", name, str)
			}
		default:
			if _, err := coerce(spec, value); err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
		}
	}
	return nil
}

// Normalize coerces an already-validated field map into storable column
// values. Unknown fields or Go-type mismatches here indicate a collaborator
// bug, not user error; callers surface them as BadInput.
func (s DomainSchema) Normalize(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for name, value := range fields {
		spec, ok := s.Fields[name]
		if !ok {
			return nil, fmt.Errorf("unknown field %q for domain %s", name, s.Domain)
		}

		if value == nil {
			out[name] = nil
			continue
		}

		coerced, err := coerce(spec, value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = coerced
	}
	return out, nil
}

func coerce(spec FieldSpec, value any) (any, error) {
	switch spec.Kind {
	case KindFloat:
		return toFloat(value)
	case KindInt, KindRating:
		return toInt(value)
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", value)
		}
		return b, nil
	case KindText, KindChoice:
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		return str, nil
	}
	return nil, fmt.Errorf("unhandled field kind %d", spec.Kind)
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("expected number, got %T", value)
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// JSON numbers decode as float64; only integral values are acceptable
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("expected integer, got %v", v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("expected integer, got %T", value)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
