// Package dateutil formats dates with human-friendly layouts such as
// "MMMM D, YYYY", used by the today() template function.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when no format is given.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps layout tokens to Go time layout elements.
// Longest first so "MMMM" is not read as "MM" twice.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Format renders t with a token layout or preset name.
// An empty format selects DefaultDateFormat. Preset names are matched
// case-insensitively.
func Format(t time.Time, format string) (string, error) {
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// ParseDateFormat converts a token layout to a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text in brackets is copied
// literally ("[Posted] D MMM" keeps "Posted"), as is any other character.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var sb strings.Builder
	sb.Grow(len(format) + 8)

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			sb.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		goFmt, n := matchToken(rest)
		if n == 0 {
			sb.WriteByte(rest[0])
			n = 1
		} else {
			sb.WriteString(goFmt)
		}
		rest = rest[n:]
	}
	return sb.String(), nil
}

// matchToken returns the Go layout for the token at the start of s and its
// length, or 0 if s does not start with a token.
func matchToken(s string) (string, int) {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			return t.goFmt, len(t.token)
		}
	}
	return "", 0
}
