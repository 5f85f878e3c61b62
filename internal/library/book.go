package library

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justyntemme/shelfkeep/internal/models"
)

// BookInput carries the caller-supplied fields for creating or editing a
// book. Optional numerics are pointers so an absent field stays absent
// instead of becoming zero.
type BookInput struct {
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	ISBN          string        `json:"isbn"`
	Category      string        `json:"category"`
	Description   string        `json:"description"`
	PublishedYear *int          `json:"publishedYear"`
	Pages         *int          `json:"pages"`
	CoverURL      string        `json:"coverUrl"`
	Status        models.Status `json:"status"`
	Rating        *int          `json:"rating"`
	Review        string        `json:"review"`
	Series        string        `json:"series"`
	SeriesNumber  *int          `json:"seriesNumber"`
}

func (in *BookInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalidField("title", "required")
	}
	if strings.TrimSpace(in.Author) == "" {
		return invalidField("author", "required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return invalidField("category", "required")
	}
	if !models.ValidCategory(in.Category) {
		return invalidField("category", "unknown category "+in.Category)
	}
	if in.Status != "" && !models.ValidStatus(in.Status) {
		return invalidField("status", "unknown status "+string(in.Status))
	}
	if in.Pages != nil && *in.Pages <= 0 {
		return invalidField("pages", "must be positive")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return invalidField("rating", "must be between 1 and 5")
	}
	return nil
}

// NewBook constructs a book from caller input, assigning a fresh id and
// dateAdded. Status defaults to want-to-read when not supplied; callers
// entering a book straight into circulation pass available explicitly.
func NewBook(in BookInput) (models.Book, error) {
	if err := in.validate(); err != nil {
		return models.Book{}, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusWantToRead
	}

	return models.Book{
		ID:               uuid.New().String(),
		Title:            strings.TrimSpace(in.Title),
		Author:           strings.TrimSpace(in.Author),
		ISBN:             in.ISBN,
		Category:         in.Category,
		Description:      in.Description,
		PublishedYear:    in.PublishedYear,
		Pages:            in.Pages,
		CoverURL:         in.CoverURL,
		Status:           status,
		Rating:           in.Rating,
		Review:           in.Review,
		Series:           in.Series,
		SeriesNumber:     in.SeriesNumber,
		DateAdded:        time.Now(),
		BorrowingHistory: []models.BorrowRecord{},
	}, nil
}

// ApplyEdit overwrites the book's caller-editable fields with the supplied
// input, keeping its identity, dateAdded, borrowing history and reading
// progress. A status set through this path is applied as-is and produces no
// ledger side effects, so an edit can move a book to or from borrowed
// without opening or closing a loan; the dedicated Borrow/Return entry
// points are the only ones that maintain the ledger.
func (c *Catalog) ApplyEdit(bookID string, in BookInput) (*models.Book, error) {
	book, err := c.Get(bookID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	book.Title = strings.TrimSpace(in.Title)
	book.Author = strings.TrimSpace(in.Author)
	book.ISBN = in.ISBN
	book.Category = in.Category
	book.Description = in.Description
	book.PublishedYear = in.PublishedYear
	book.Pages = in.Pages
	book.CoverURL = in.CoverURL
	book.Rating = in.Rating
	book.Review = in.Review
	book.Series = in.Series
	book.SeriesNumber = in.SeriesNumber
	if in.Status != "" {
		book.Status = in.Status
	}
	return book, nil
}
