package utils

import (
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatRFC3339     DateFormat = "2006-01-02T15:04:05Z07:00"
	FormatUSDate      DateFormat = "01/02/2006"
)

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	OriginalValue  string
}

// DateValidator parses the date formats accepted on entry forms and query
// strings and normalizes them to a UTC calendar date.
type DateValidator struct {
	supportedFormats []DateFormat
}

func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601Date,
			FormatRFC3339,
			FormatUSDate,
		},
	}
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{
		IsValid:       false,
		OriginalValue: input,
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	for _, format := range dv.supportedFormats {
		if parsedTime, err := time.Parse(string(format), input); err == nil {
			result.IsValid = true
			result.DetectedFormat = format
			result.ParsedTime = time.Date(
				parsedTime.Year(), parsedTime.Month(), parsedTime.Day(),
				0, 0, 0, 0, time.UTC,
			)
			return result
		}
	}

	return result
}
