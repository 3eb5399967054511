package books

import (
	"context"
	"strings"

	"github.com/bookscoutapp/bookscout/pkg/errcodes"
	"github.com/bookscoutapp/bookscout/pkg/models"
	"github.com/pkg/errors"
)

const duplicateThreshold = 0.9

// normalizeTitle lowercases, turns punctuation into spaces, and collapses
// runs of whitespace.
func normalizeTitle(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	normalized = strings.NewReplacer(
		":", " ", ",", " ", "-", " ", "!", " ", "?", " ", ".", " ",
	).Replace(normalized)
	return strings.Join(strings.Fields(normalized), " ")
}

func sameIdentifier(a, b *string) bool {
	return a != nil && b != nil && *a != "" && *a == *b
}

// areDuplicates reports whether two rows likely describe the same book:
// a shared identifier, title containment, or near-total word overlap.
func areDuplicates(a, b *models.Book) bool {
	if sameIdentifier(a.ISBN13, b.ISBN13) || sameIdentifier(a.ISBN, b.ISBN) || sameIdentifier(a.ASIN, b.ASIN) {
		return true
	}

	titleA := normalizeTitle(a.Title)
	titleB := normalizeTitle(b.Title)
	if titleA == "" || titleB == "" {
		return false
	}
	if strings.Contains(titleA, titleB) || strings.Contains(titleB, titleA) {
		return true
	}

	wordsA := map[string]struct{}{}
	for _, word := range strings.Fields(titleA) {
		wordsA[word] = struct{}{}
	}
	wordsB := map[string]struct{}{}
	for _, word := range strings.Fields(titleB) {
		wordsB[word] = struct{}{}
	}

	overlap := 0
	for word := range wordsA {
		if _, ok := wordsB[word]; ok {
			overlap++
		}
	}

	larger := len(wordsA)
	if len(wordsB) > larger {
		larger = len(wordsB)
	}
	return float64(overlap)/float64(larger) >= duplicateThreshold
}

// FindDuplicateGroups pairs up likely duplicates among an author's live
// books. Each book lands in at most one group and groups always have two or
// more members. Assignment is greedy over the title-sorted list, so the
// alphabetically first edition anchors its group.
func (svc *Service) FindDuplicateGroups(ctx context.Context, authorID int) ([][]*models.Book, error) {
	books := []*models.Book{}
	err := svc.db.NewSelect().
		Model(&books).
		Where("author_id = ?", authorID).
		Where("deleted = ?", false).
		Order("title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	groups := [][]*models.Book{}
	claimed := map[int]bool{}

	for i, book := range books {
		if claimed[book.ID] {
			continue
		}

		group := []*models.Book{book}
		claimed[book.ID] = true

		for _, other := range books[i+1:] {
			if claimed[other.ID] {
				continue
			}
			if areDuplicates(book, other) {
				group = append(group, other)
				claimed[other.ID] = true
			}
		}

		if len(group) > 1 {
			groups = append(groups, group)
		}
	}

	return groups, nil
}

// MergeBooks folds duplicates into the primary book. Empty fields on the
// primary take the duplicate's value, ownership is kept if any copy had it,
// and the duplicates are hard-deleted so they can't resurface as tombstones.
func (svc *Service) MergeBooks(ctx context.Context, primaryID int, duplicateIDs []int) error {
	primary, err := svc.RetrieveBook(ctx, primaryID)
	if err != nil {
		return err
	}

	for _, dupID := range duplicateIDs {
		if dupID == primaryID {
			continue
		}

		duplicate, err := svc.RetrieveBook(ctx, dupID)
		if err != nil {
			cerr := &errcodes.Error{}
			if errors.As(err, &cerr) && cerr.Code == "not_found" {
				continue
			}
			return err
		}

		fillBookField(&primary.Subtitle, duplicate.Subtitle)
		fillBookField(&primary.ISBN, duplicate.ISBN)
		fillBookField(&primary.ISBN13, duplicate.ISBN13)
		fillBookField(&primary.ASIN, duplicate.ASIN)
		fillBookField(&primary.CoverURL, duplicate.CoverURL)
		fillBookField(&primary.Description, duplicate.Description)
		fillBookField(&primary.Series, duplicate.Series)
		fillBookField(&primary.SeriesPosition, duplicate.SeriesPosition)
		if duplicate.HaveIt {
			primary.HaveIt = true
		}

		if err := svc.HardDeleteBook(ctx, dupID); err != nil {
			return err
		}
	}

	_, err = svc.db.NewUpdate().
		Model(primary).
		Column(
			"subtitle", "isbn", "isbn13", "asin", "cover_url", "description",
			"series", "series_position", "have_it",
		).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

func fillBookField(dst **string, src *string) {
	if (*dst == nil || **dst == "") && src != nil && *src != "" {
		*dst = src
	}
}
