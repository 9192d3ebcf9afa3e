package parser

import (
	"regexp"
	"strings"
)

var wsRun = regexp.MustCompile(`\s+`)

// NormalizeHeader cleans a header or name cell: strips line breaks and
// tabs, collapses whitespace runs, trims the ends.
func NormalizeHeader(name string) string {
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	name = wsRun.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// ContainsAny reports whether text contains any keyword, case-insensitive.
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// monthLabel matches the period spellings seen in real sheets: English
// month names and abbreviations with an optional year, yyyy-mm stamps,
// Chinese N月 labels, and bare "Month N" counters.
var monthLabel = regexp.MustCompile(`(?i)^(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?(\s+\d{2,4})?$|^\d{4}[-/.]\d{1,2}$|^\d{1,2}月$|^m(onth)?\s*\d{1,2}$`)

// LooksLikeMonth reports whether a period label reads as a month.
func LooksLikeMonth(label string) bool {
	return monthLabel.MatchString(strings.TrimSpace(label))
}
