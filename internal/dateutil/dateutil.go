// Package dateutil resolves the docinfo date field of a presentation.
//
// The :date: field may hold a literal date ("June 2024"), or a format
// pattern that is rendered with today's date, mirroring the original
// behavior of passing a date format through strftime.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultLayout renders the title-slide date when no :date: field is given.
const DefaultLayout = "January, 2006"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
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

// ParseFormat converts a user-friendly format string to Go's time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Bracketed text is literal.
func ParseFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}
	return result.String(), nil
}

// containsToken reports whether the string uses a date format token.
// Single-letter tokens are ignored here: a literal like "December 2024"
// must not be mistaken for a format.
func containsToken(s string) bool {
	for _, t := range dateTokens {
		if len(t.token) >= 2 && strings.Contains(s, t.token) {
			return true
		}
	}
	return false
}

// Resolve turns a docinfo date value into display text. An empty value
// renders today with DefaultLayout; a value containing format tokens is
// rendered with today's date; anything else is used literally.
func Resolve(value string, now time.Time) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Format(DefaultLayout)
	}
	if !containsToken(value) {
		return value
	}
	layout, err := ParseFormat(value)
	if err != nil {
		return value
	}
	return now.Format(layout)
}
