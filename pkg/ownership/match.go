// Package ownership checks which books are already present in the user's
// Audiobookshelf library and resolves series metadata for the ones that
// aren't.
package ownership

import "strings"

const matchThreshold = 0.75

// normalizeWords lowercases a title, turns common punctuation into spaces,
// and splits it into a word set.
func normalizeWords(title string) map[string]struct{} {
	normalized := strings.ToLower(strings.TrimSpace(title))
	normalized = strings.NewReplacer(":", "", ",", "", "-", " ").Replace(normalized)

	words := map[string]struct{}{}
	for _, word := range strings.Fields(normalized) {
		words[word] = struct{}{}
	}
	return words
}

// titlesMatch reports whether a library item's title refers to the same book.
// A case-insensitive substring in either direction matches outright;
// otherwise enough of the book title's words have to appear in the library
// title.
func titlesMatch(bookTitle, libraryTitle string) bool {
	book := strings.ToLower(strings.TrimSpace(bookTitle))
	library := strings.ToLower(strings.TrimSpace(libraryTitle))

	if strings.Contains(library, book) || strings.Contains(book, library) {
		return true
	}

	bookWords := normalizeWords(bookTitle)
	if len(bookWords) == 0 {
		return false
	}
	libraryWords := normalizeWords(libraryTitle)

	overlap := 0
	for word := range bookWords {
		if _, ok := libraryWords[word]; ok {
			overlap++
		}
	}

	return float64(overlap)/float64(len(bookWords)) >= matchThreshold
}
