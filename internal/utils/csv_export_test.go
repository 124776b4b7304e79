package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	err := WriteCSV(&buf,
		[]string{"date", "weight", "notes"},
		[][]string{
			{"2024-03-15", "82.5", "slept well"},
			{"2024-03-16", "", "contains, comma"},
		},
	)
	require.NoError(t, err)

	want := "date,weight,notes\n" +
		"2024-03-15,82.5,slept well\n" +
		"2024-03-16,,\"contains, comma\"\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVFormatters_NilIsEmptyCell(t *testing.T) {
	assert.Equal(t, "", CSVFloat(nil))
	assert.Equal(t, "", CSVInt(nil))
	assert.Equal(t, "", CSVBool(nil))
	assert.Equal(t, "", CSVString(nil))
}

func TestCSVFormatters_Values(t *testing.T) {
	f := 7.25
	i := 9000
	b := false
	s := "running"

	assert.Equal(t, "7.25", CSVFloat(&f))
	assert.Equal(t, "9000", CSVInt(&i))
	assert.Equal(t, "false", CSVBool(&b))
	assert.Equal(t, "running", CSVString(&s))

	assert.Equal(t, "2024-03-15", CSVDate(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)))
}
