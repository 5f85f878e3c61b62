package library

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justyntemme/shelfkeep/internal/models"
)

// FindOpenLoan returns the single borrowing record with no return date, or
// nil. The ledger invariant guarantees at most one exists.
func FindOpenLoan(b *models.Book) *models.BorrowRecord {
	for i := range b.BorrowingHistory {
		if b.BorrowingHistory[i].Open() {
			return &b.BorrowingHistory[i]
		}
	}
	return nil
}

// LoanDuration returns the length of a closed loan in whole days, rounded
// up. Open loans have no duration yet and report 0.
func LoanDuration(rec models.BorrowRecord) int {
	if rec.ReturnDate == nil {
		return 0
	}
	hours := rec.ReturnDate.Sub(rec.BorrowDate).Hours()
	return int(math.Ceil(hours / 24))
}

// Borrow opens a loan for the book and moves it to borrowed. The open-loan
// check runs against the ledger, not the status field, so a status that
// drifted through a raw edit cannot let a second loan through.
func (c *Catalog) Borrow(bookID, borrowerName, notes string) (*models.BorrowRecord, error) {
	book, err := c.Get(bookID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(borrowerName) == "" {
		return nil, invalidField("borrowerName", "required")
	}
	if FindOpenLoan(book) != nil {
		return nil, ErrAlreadyBorrowed
	}

	rec := models.BorrowRecord{
		ID:           uuid.New().String(),
		BorrowerName: strings.TrimSpace(borrowerName),
		BorrowDate:   time.Now(),
		Notes:        notes,
	}
	book.BorrowingHistory = append(book.BorrowingHistory, rec)
	book.Status = models.StatusBorrowed
	return &book.BorrowingHistory[len(book.BorrowingHistory)-1], nil
}

// Return closes the book's open loan and moves it back to available.
func (c *Catalog) Return(bookID string) (*models.BorrowRecord, error) {
	book, err := c.Get(bookID)
	if err != nil {
		return nil, err
	}
	rec := FindOpenLoan(book)
	if rec == nil {
		return nil, ErrNoOpenLoan
	}

	now := time.Now()
	rec.ReturnDate = &now
	book.Status = models.StatusAvailable
	return rec, nil
}

// StartReading moves the book to currently-reading from any state. An
// initial progress snapshot is attached when none exists; an existing one
// is kept so re-starting a paused book does not lose the page position.
func (c *Catalog) StartReading(bookID string) (*models.Book, error) {
	book, err := c.Get(bookID)
	if err != nil {
		return nil, err
	}

	book.Status = models.StatusCurrentlyReading
	if book.ReadingProgress == nil {
		now := time.Now()
		total := 0
		if book.Pages != nil {
			total = *book.Pages
		}
		book.ReadingProgress = &models.ReadingProgress{
			CurrentPage: 0,
			TotalPages:  total,
			StartDate:   &now,
			Percentage:  0,
			LastUpdated: now,
		}
	}
	return book, nil
}

// ProgressInput carries a progress update. TotalPages falls back to the
// book's page count, then to the previous snapshot, when not supplied.
type ProgressInput struct {
	CurrentPage int        `json:"currentPage"`
	TotalPages  *int       `json:"totalPages"`
	StartDate   *time.Time `json:"startDate"`
	TargetDate  *time.Time `json:"targetDate"`
	DailyGoal   int        `json:"dailyGoal"`
	Notes       string     `json:"notes"`
}

// Percentage derives the completion percentage from a page position,
// rounded to the nearest whole percent and clamped to [0,100]. Unknown
// total pages read as 0 percent.
func Percentage(currentPage, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	pct := int(math.Round(float64(currentPage) / float64(totalPages) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// UpdateProgress overwrites the book's reading progress. Percentage and
// lastUpdated are always recomputed here, never taken from the caller.
func (c *Catalog) UpdateProgress(bookID string, in ProgressInput) (*models.Book, error) {
	book, err := c.Get(bookID)
	if err != nil {
		return nil, err
	}
	if in.CurrentPage < 0 {
		return nil, invalidField("currentPage", "must not be negative")
	}
	if in.DailyGoal < 0 {
		return nil, invalidField("dailyGoal", "must not be negative")
	}

	total := 0
	switch {
	case in.TotalPages != nil:
		total = *in.TotalPages
	case book.Pages != nil:
		total = *book.Pages
	case book.ReadingProgress != nil:
		total = book.ReadingProgress.TotalPages
	}
	if total < 0 {
		return nil, invalidField("totalPages", "must not be negative")
	}
	if total > 0 && in.CurrentPage > total {
		return nil, invalidField("currentPage", "exceeds total pages")
	}

	start := in.StartDate
	if start == nil && book.ReadingProgress != nil {
		start = book.ReadingProgress.StartDate
	}

	book.ReadingProgress = &models.ReadingProgress{
		CurrentPage: in.CurrentPage,
		TotalPages:  total,
		StartDate:   start,
		TargetDate:  in.TargetDate,
		DailyGoal:   in.DailyGoal,
		Notes:       in.Notes,
		Percentage:  Percentage(in.CurrentPage, total),
		LastUpdated: time.Now(),
	}
	return book, nil
}

// Rate records a rating and optional review and moves the book to finished.
// Any state can be rated; a borrowed book that gets rated simply carries
// finished until the next lending event.
func (c *Catalog) Rate(bookID string, rating int, review string) (*models.Book, error) {
	book, err := c.Get(bookID)
	if err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, invalidField("rating", "must be between 1 and 5")
	}

	book.Rating = &rating
	book.Review = review
	book.Status = models.StatusFinished
	return book, nil
}
