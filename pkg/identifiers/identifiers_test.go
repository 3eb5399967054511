package identifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected Type
	}{
		{"valid isbn-13", "9780765326355", TypeISBN13},
		{"valid isbn-13 with hyphens", "978-0-7653-2635-5", TypeISBN13},
		{"valid isbn-13 with prefix", "ISBN: 978-0-7653-2635-5", TypeISBN13},
		{"invalid isbn-13 checksum", "9780765326356", TypeUnknown},
		{"valid isbn-10", "0765326353", TypeISBN10},
		{"valid isbn-10 with x checksum", "080442957X", TypeISBN10},
		{"invalid isbn-10 checksum", "0765326354", TypeUnknown},
		{"asin", "B0041JKFJW", TypeASIN},
		{"lowercase asin", "b0041jkfjw", TypeASIN},
		{"empty", "", TypeUnknown},
		{"garbage", "not-an-identifier", TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.value))
		})
	}
}

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9780765326355", NormalizeISBN("978-0-7653-2635-5"))
	assert.Equal(t, "9780765326355", NormalizeISBN("ISBN: 978 0 7653 2635 5"))
	assert.Equal(t, "080442957X", NormalizeISBN("0-8044-2957-x"))
	assert.Equal(t, "", NormalizeISBN(""))
}

func TestValidateISBN10(t *testing.T) {
	assert.True(t, ValidateISBN10("0765326353"))
	assert.True(t, ValidateISBN10("080442957X"))
	assert.False(t, ValidateISBN10("X765326353"))
	assert.False(t, ValidateISBN10("0765326354"))
	assert.False(t, ValidateISBN10("12345"))
}

func TestValidateISBN13(t *testing.T) {
	assert.True(t, ValidateISBN13("9780765326355"))
	assert.False(t, ValidateISBN13("9780765326356"))
	assert.False(t, ValidateISBN13("97807653263"))
	assert.False(t, ValidateISBN13("978076532635X"))
}
