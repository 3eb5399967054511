// Package identifiers classifies and normalizes the book identifiers the
// catalog sources hand back: ISBN-10, ISBN-13, and Amazon ASINs.
package identifiers

import (
	"regexp"
	"strings"
	"unicode"
)

type Type string

const (
	TypeISBN10  Type = "isbn_10"
	TypeISBN13  Type = "isbn_13"
	TypeASIN    Type = "asin"
	TypeUnknown Type = ""
)

var asinRegex = regexp.MustCompile(`^B0[A-Z0-9]{8}$`)

// Classify determines what kind of identifier a raw value is. ISBNs are
// normalized and checksum-validated before classification; a well-formed but
// invalid ISBN comes back as TypeUnknown.
func Classify(value string) Type {
	value = strings.TrimSpace(value)
	if value == "" {
		return TypeUnknown
	}

	if asinRegex.MatchString(strings.ToUpper(value)) {
		return TypeASIN
	}

	normalized := NormalizeISBN(value)
	if len(normalized) == 13 && ValidateISBN13(normalized) {
		return TypeISBN13
	}
	if len(normalized) == 10 && ValidateISBN10(normalized) {
		return TypeISBN10
	}
	return TypeUnknown
}

// NormalizeISBN strips hyphens, spaces, and an "ISBN" prefix, keeping only
// digits and a trailing X.
func NormalizeISBN(value string) string {
	value = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(value)), "ISBN:")
	value = strings.TrimPrefix(value, "ISBN")

	result := strings.Builder{}
	for _, r := range value {
		if unicode.IsDigit(r) || r == 'X' || r == 'x' {
			result.WriteRune(r)
		}
	}
	return strings.ToUpper(result.String())
}

// ValidateISBN10 checks the modulo-11 checksum. X stands for 10 and is only
// valid in the last position.
func ValidateISBN10(isbn string) bool {
	if len(isbn) != 10 {
		return false
	}

	sum := 0
	for i, r := range isbn {
		digit := 0
		switch {
		case r == 'X' || r == 'x':
			if i != 9 {
				return false
			}
			digit = 10
		case unicode.IsDigit(r):
			digit = int(r - '0')
		default:
			return false
		}
		sum += digit * (10 - i)
	}
	return sum%11 == 0
}

// ValidateISBN13 checks the alternating 1/3-weighted modulo-10 checksum.
func ValidateISBN13(isbn string) bool {
	if len(isbn) != 13 {
		return false
	}

	sum := 0
	for i, r := range isbn {
		if !unicode.IsDigit(r) {
			return false
		}
		digit := int(r - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return sum%10 == 0
}
