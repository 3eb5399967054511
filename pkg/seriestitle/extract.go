// Package seriestitle derives series membership from free-text book titles.
package seriestitle

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// patterns are ordered by priority; the first match wins and matches are never
// combined. The dash form runs before the comma form so its series capture is
// not swallowed with a trailing dash. Group 1 captures the series name, group 2
// the position (decimal-capable, e.g. "2.5"). Trailing patterns consume the
// whole title, so their clean title is the series capture itself rather than
// the title with the match removed.
var patterns = []struct {
	re       *regexp.Regexp
	trailing bool
}{
	// Parenthetical formats
	{re: regexp.MustCompile(`(?i)\(([^)]+?)\s*#(\d+(?:\.\d+)?)\)`)},           // (Series #1)
	{re: regexp.MustCompile(`(?i)\(([^)]+?)\s*-\s*Book\s+(\d+(?:\.\d+)?)\)`)}, // (Series - Book 1)
	{re: regexp.MustCompile(`(?i)\(([^)]+?),?\s*Book\s+(\d+(?:\.\d+)?)\)`)},   // (Series, Book 1) or (Series Book 1)
	{re: regexp.MustCompile(`(?i)\(([^)]+?),?\s*Vol\.?\s+(\d+(?:\.\d+)?)\)`)}, // (Series, Vol 1)
	// Colon/subtitle formats
	{re: regexp.MustCompile(`(?i)^(.+?):\s*Book\s+(\d+(?:\.\d+)?)\s*[-:]`)}, // Series: Book 1 - Title
	{re: regexp.MustCompile(`(?i)^(.+?)\s*#(\d+(?:\.\d+)?)\s*[-:]`)},        // Series #1 - Title
	// Trailing number formats
	{re: regexp.MustCompile(`(?i)(.+?)\s+Book\s+(\d+(?:\.\d+)?)$`), trailing: true}, // Title Book 1
	{re: regexp.MustCompile(`(?i)(.+?)\s+#(\d+(?:\.\d+)?)$`), trailing: true},       // Title #1
}

const edgeCutset = "-: \t"

// Extract pulls a series name and position out of a title. It returns the
// title with the matched span stripped, or the title unchanged with nil series
// and position when no pattern matches. Stripping that would leave fewer than
// 3 characters is discarded to protect short titles.
func Extract(title string) (string, *string, *string) {
	for _, p := range patterns {
		loc := p.re.FindStringSubmatchIndex(title)
		if loc == nil {
			continue
		}

		series := strings.TrimSpace(title[loc[2]:loc[3]])
		position := title[loc[4]:loc[5]]

		clean := series
		if !p.trailing {
			clean = title[:loc[0]] + title[loc[1]:]
		}
		clean = strings.Trim(strings.TrimSpace(clean), edgeCutset)
		clean = strings.TrimSpace(clean)
		if utf8.RuneCountInString(clean) < 3 {
			clean = title
		}

		return clean, &series, &position
	}

	return title, nil, nil
}
