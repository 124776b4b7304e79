package utils

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteCSV streams an entry history export. Rows must match the header
// width; the csv writer's own error is the single failure signal.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Cell formatters for nullable metric columns. A nil value exports as an
// empty cell, never as zero: absent and zero are different measurements.

func CSVFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func CSVInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func CSVBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func CSVString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func CSVDate(t time.Time) string {
	return t.Format(string(FormatISO8601Date))
}
