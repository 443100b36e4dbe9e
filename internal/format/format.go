// Package format turns document metadata into display strings.
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const Missing = "-"

// Date renders t relative to now for the last week and as an absolute date
// before that. A nil or zero time renders as Missing.
func Date(t *time.Time, now time.Time) string {
	if t == nil || t.IsZero() {
		return Missing
	}
	diff := now.Sub(*t)
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return ago(int(diff/time.Minute), "minute")
	case diff < 24*time.Hour:
		return ago(int(diff/time.Hour), "hour")
	case diff < 7*24*time.Hour:
		return ago(int(diff/(24*time.Hour)), "day")
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}

func ago(n int, unit string) string {
	return fmt.Sprintf("%d %s ago", n, Plural(n, unit))
}

// Plural appends an "s" to word unless n is one.
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// TitleCase lowercases s and capitalizes each space-separated word.
// Hyphens and apostrophes do not start a new word.
func TitleCase(s string) string {
	caser := cases.Title(language.Und)
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		words[i] = caser.String(w[:size]) + w[size:]
	}
	return strings.Join(words, " ")
}

// Size renders a size in kilobytes. Folders and unknown sizes render as Missing.
func Size(kb *int64) string {
	if kb == nil {
		return Missing
	}
	v := *kb
	switch {
	case v < 1024:
		return fmt.Sprintf("%d KB", v)
	case v < 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(v)/1024)
	default:
		return fmt.Sprintf("%.1f GB", float64(v)/(1024*1024))
	}
}

// Text renders an optional string.
func Text(s *string) string {
	if s == nil || *s == "" {
		return Missing
	}
	return *s
}
