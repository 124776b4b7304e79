package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndConvert_SupportedFormats(t *testing.T) {
	dv := NewDateValidator()

	tests := []struct {
		name   string
		input  string
		format DateFormat
		want   time.Time
	}{
		{
			name:   "iso date",
			input:  "2024-03-15",
			format: FormatISO8601Date,
			want:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "rfc3339 truncates to date",
			input:  "2024-03-15T18:30:00Z",
			format: FormatRFC3339,
			want:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "us date",
			input:  "03/15/2024",
			format: FormatUSDate,
			want:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "surrounding whitespace",
			input:  "  2024-03-15  ",
			format: FormatISO8601Date,
			want:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := dv.ValidateAndConvert(tt.input)
			require.True(t, result.IsValid)
			assert.Equal(t, tt.format, result.DetectedFormat)
			assert.Equal(t, tt.want, result.ParsedTime)
		})
	}
}

func TestValidateAndConvert_Invalid(t *testing.T) {
	dv := NewDateValidator()

	for _, input := range []string{"", "   ", "yesterday", "2024-13-01", "15/03/2024", "2024-03-15 18:30"} {
		result := dv.ValidateAndConvert(input)
		assert.False(t, result.IsValid, "input %q", input)
		assert.Equal(t, input, result.OriginalValue)
	}
}
