package library

import (
	"strings"

	"github.com/justyntemme/shelfkeep/internal/models"
)

// Range bounds a numeric field inclusively. A nil endpoint is unbounded.
type Range struct {
	Min *int
	Max *int
}

func (r Range) contains(v int) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func (r Range) empty() bool { return r.Min == nil && r.Max == nil }

// Filters is the structured filter set applied alongside a free-text query.
// Zero-valued clauses pass every book.
type Filters struct {
	Category  string
	Status    models.Status
	YearRange Range
	PageRange Range
	// Rating is a minimum threshold; once set, unrated books are excluded.
	Rating *int
}

// Filter returns the books matching the free-text query and every filter
// clause, in catalog order. Text matches case-insensitively against title,
// author or ISBN. Books missing publishedYear or pages pass the respective
// range clause rather than being excluded by data they never had.
func Filter(books []models.Book, query string, f Filters) []models.Book {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []models.Book
	for _, b := range books {
		if q != "" && !matchesText(&b, q) {
			continue
		}
		if f.Category != "" && b.Category != f.Category {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if !f.YearRange.empty() && b.PublishedYear != nil && !f.YearRange.contains(*b.PublishedYear) {
			continue
		}
		if !f.PageRange.empty() && b.Pages != nil && !f.PageRange.contains(*b.Pages) {
			continue
		}
		if f.Rating != nil && (b.Rating == nil || *b.Rating < *f.Rating) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesText(b *models.Book, q string) bool {
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.ISBN), q)
}
