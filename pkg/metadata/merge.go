package metadata

import (
	"strings"

	"github.com/bookscoutapp/bookscout/pkg/seriestitle"
)

// DedupKey decides which records describe the same work. Identifier priority:
// isbn13 > isbn > asin, with the normalized title as the fallback identity.
func DedupKey(rec Record) string {
	switch {
	case rec.ISBN13 != "":
		return "isbn13:" + rec.ISBN13
	case rec.ISBN != "":
		return "isbn:" + rec.ISBN
	case rec.ASIN != "":
		return "asin:" + rec.ASIN
	default:
		return "title:" + strings.ToLower(strings.TrimSpace(rec.Title))
	}
}

// mergeFields are the fields filled from later sources when the first source
// left them empty. An existing non-empty value is never overwritten.
var mergeFields = []struct {
	get func(*Record) string
	set func(*Record, string)
}{
	{func(r *Record) string { return r.Subtitle }, func(r *Record, v string) { r.Subtitle = v }},
	{func(r *Record) string { return r.ISBN }, func(r *Record, v string) { r.ISBN = v }},
	{func(r *Record) string { return r.ISBN13 }, func(r *Record, v string) { r.ISBN13 = v }},
	{func(r *Record) string { return r.ASIN }, func(r *Record, v string) { r.ASIN = v }},
	{func(r *Record) string { return r.CoverURL }, func(r *Record, v string) { r.CoverURL = v }},
	{func(r *Record) string { return r.Description }, func(r *Record, v string) { r.Description = v }},
}

// fillMissing copies src's values into dst for every merge field where dst is
// empty and src is not.
func fillMissing(dst *Record, src Record) {
	for _, field := range mergeFields {
		if field.get(dst) == "" && field.get(&src) != "" {
			field.set(dst, field.get(&src))
		}
	}
}

// Merge deduplicates and merges records from multiple sources. Each record's
// title is run through series extraction first; records sharing a dedup key
// collapse into one, with sources accumulated in first-appearance order.
// Merging an already-merged set with itself yields the same set.
func Merge(lists ...[]Record) []Record {
	order := []string{}
	index := map[string]*Record{}

	for _, records := range lists {
		for _, rec := range records {
			clean, series, position := seriestitle.Extract(rec.Title)
			rec.Title = clean
			if series != nil {
				rec.Series = *series
				rec.SeriesPosition = *position
			}

			key := DedupKey(rec)
			existing, ok := index[key]
			if !ok {
				copied := rec
				index[key] = &copied
				order = append(order, key)
				continue
			}

			fillMissing(existing, rec)
			for _, source := range rec.Sources {
				existing.Sources = existing.Sources.Add(source)
			}
		}
	}

	merged := make([]Record, 0, len(order))
	for _, key := range order {
		merged = append(merged, *index[key])
	}
	return merged
}
