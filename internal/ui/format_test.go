package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{name: "zero", seconds: 0, want: "00:00:00"},
		{name: "negative clamps", seconds: -5, want: "00:00:00"},
		{name: "minutes", seconds: 125, want: "00:02:05"},
		{name: "hours", seconds: 3*3600 + 7, want: "03:00:07"},
		{name: "past a hundred hours", seconds: 120 * 3600, want: "120:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.seconds))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2.50h", FormatHours(9000))
}

func TestFormatErrorForDisplay(t *testing.T) {
	assert.Equal(t, "", formatErrorForDisplay(nil, 80))
	assert.Equal(t, "Error: boom", formatErrorForDisplay(errors.New("boom"), 80))

	long := errors.New(strings.Repeat("word ", 60))
	out := formatErrorForDisplay(long, 40)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Error: "))
	assert.True(t, strings.HasSuffix(lines[1], "..."))
	assert.LessOrEqual(t, len(lines[1]), 40)
}
