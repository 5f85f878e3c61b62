package library

import (
	"sort"
	"strings"

	"github.com/justyntemme/shelfkeep/internal/models"
)

// SortKey names a sort order over the catalog.
type SortKey string

const (
	SortTitleAsc      SortKey = "title-asc"
	SortTitleDesc     SortKey = "title-desc"
	SortAuthorAsc     SortKey = "author-asc"
	SortAuthorDesc    SortKey = "author-desc"
	SortYearAsc       SortKey = "year-asc"
	SortYearDesc      SortKey = "year-desc"
	SortPagesAsc      SortKey = "pages-asc"
	SortPagesDesc     SortKey = "pages-desc"
	SortDateAddedAsc  SortKey = "date-added-asc"
	SortDateAddedDesc SortKey = "date-added-desc"
	SortRatingAsc     SortKey = "rating-asc"
	SortRatingDesc    SortKey = "rating-desc"
)

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Sort returns a sorted copy of books. The sort is stable, so ties keep
// catalog insertion order. An unknown key returns the books unchanged, in a
// copy the caller may mutate freely.
func Sort(books []models.Book, key SortKey) []models.Book {
	out := make([]models.Book, len(books))
	copy(out, books)

	var less func(a, b *models.Book) bool
	switch key {
	case SortTitleAsc:
		less = func(a, b *models.Book) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortTitleDesc:
		less = func(a, b *models.Book) bool {
			return strings.ToLower(a.Title) > strings.ToLower(b.Title)
		}
	case SortAuthorAsc:
		less = func(a, b *models.Book) bool {
			return strings.ToLower(a.Author) < strings.ToLower(b.Author)
		}
	case SortAuthorDesc:
		less = func(a, b *models.Book) bool {
			return strings.ToLower(a.Author) > strings.ToLower(b.Author)
		}
	case SortYearAsc:
		less = func(a, b *models.Book) bool {
			return intOrZero(a.PublishedYear) < intOrZero(b.PublishedYear)
		}
	case SortYearDesc:
		less = func(a, b *models.Book) bool {
			return intOrZero(a.PublishedYear) > intOrZero(b.PublishedYear)
		}
	case SortPagesAsc:
		less = func(a, b *models.Book) bool {
			return intOrZero(a.Pages) < intOrZero(b.Pages)
		}
	case SortPagesDesc:
		less = func(a, b *models.Book) bool {
			return intOrZero(a.Pages) > intOrZero(b.Pages)
		}
	case SortDateAddedAsc:
		less = func(a, b *models.Book) bool {
			return a.DateAdded.Before(b.DateAdded)
		}
	case SortDateAddedDesc:
		less = func(a, b *models.Book) bool {
			return a.DateAdded.After(b.DateAdded)
		}
	case SortRatingAsc:
		less = func(a, b *models.Book) bool {
			return intOrZero(a.Rating) < intOrZero(b.Rating)
		}
	case SortRatingDesc:
		less = func(a, b *models.Book) bool {
			return intOrZero(a.Rating) > intOrZero(b.Rating)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	return out
}
