// Package htmlutil cleans up the HTML fragments catalog APIs embed in book
// descriptions.
package htmlutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	breakPattern = regexp.MustCompile(`(?i)</p>|</div>|</li>|</h[1-6]>|<br\s*/?>`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`[ \t]{2,}`)
)

// StripTags removes HTML markup from a string, keeping paragraph breaks as
// newlines and decoding entities.
func StripTags(s string) string {
	if s == "" {
		return ""
	}

	s = breakPattern.ReplaceAllString(s, "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(spacePattern.ReplaceAllString(line, " "))
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
