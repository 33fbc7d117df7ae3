package ui

import (
	"strings"
	"unicode/utf8"
)

const (
	errorPrefix    = "Error: "
	maxErrorLines  = 2
	minErrorWidth  = 10
	truncationMark = "..."
)

// formatErrorForDisplay word-wraps an error into at most two lines of maxWidth.
// The first line carries the "Error: " prefix; overflow ends with "...".
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}
	message := err.Error()
	words := strings.Fields(message)
	if len(words) == 0 {
		return errorPrefix + "unknown error"
	}

	width := max(maxWidth, minErrorWidth)
	firstWidth := max(maxWidth-utf8.RuneCountInString(errorPrefix), minErrorWidth)

	var lines []string
	var line strings.Builder
	limit := firstWidth
	truncated := false
	for i, word := range words {
		lineLen := utf8.RuneCountInString(line.String())
		if lineLen > 0 && lineLen+1+utf8.RuneCountInString(word) > limit {
			lines = append(lines, line.String())
			line.Reset()
			if len(lines) == maxErrorLines {
				truncated = i < len(words)
				break
			}
			limit = width
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 && len(lines) < maxErrorLines {
		lines = append(lines, line.String())
	}

	if truncated {
		last := []rune(lines[maxErrorLines-1])
		keep := width - utf8.RuneCountInString(truncationMark)
		if len(last) > keep && keep > 0 {
			last = last[:keep]
		}
		lines[maxErrorLines-1] = string(last) + truncationMark
	}

	return errorPrefix + strings.Join(lines, "\n")
}
