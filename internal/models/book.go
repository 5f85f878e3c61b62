package models

import "time"

// User represents a registered user
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Status is the single lifecycle field on a Book. The lending states
// (available/borrowed) and the reading states (want-to-read/currently-reading/
// finished) share the one field; a book holds exactly one value at a time.
type Status string

const (
	StatusWantToRead       Status = "want-to-read"
	StatusCurrentlyReading Status = "currently-reading"
	StatusFinished         Status = "finished"
	StatusAvailable        Status = "available"
	StatusBorrowed         Status = "borrowed"
)

// Statuses lists every valid status value.
var Statuses = []Status{
	StatusWantToRead,
	StatusCurrentlyReading,
	StatusFinished,
	StatusAvailable,
	StatusBorrowed,
}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s Status) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Categories is the fixed genre set a book must belong to.
var Categories = []string{
	"Fiction",
	"Non-Fiction",
	"Science",
	"Technology",
	"Biography",
	"History",
	"Philosophy",
	"Art",
	"Religion",
	"Self-Help",
	"Romance",
	"Mystery",
	"Fantasy",
	"Science Fiction",
	"Horror",
	"Thriller",
	"Children",
	"Young Adult",
	"Poetry",
	"Drama",
	"Other",
}

// ValidCategory reports whether c is one of the known genres.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Book represents one catalog entry. Numeric fields that can legitimately be
// unknown are pointers so that "not recorded" is distinguishable from zero.
type Book struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn,omitempty"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	// PublishedYear may be negative for BCE works.
	PublishedYear *int   `json:"publishedYear,omitempty"`
	Pages         *int   `json:"pages,omitempty"`
	CoverURL      string `json:"coverUrl,omitempty"`

	Status Status `json:"status"`
	// Rating and Review are meaningful once the book is finished.
	Rating       *int   `json:"rating,omitempty"`
	Review       string `json:"review,omitempty"`
	Series       string `json:"series,omitempty"`
	SeriesNumber *int   `json:"seriesNumber,omitempty"`

	DateAdded        time.Time        `json:"dateAdded"`
	BorrowingHistory []BorrowRecord   `json:"borrowingHistory"`
	ReadingProgress  *ReadingProgress `json:"readingProgress,omitempty"`
}

// BorrowRecord is one entry in a book's append-only borrowing ledger.
// ReturnDate is nil while the loan is open.
type BorrowRecord struct {
	ID           string     `json:"id"`
	BorrowerName string     `json:"borrowerName"`
	BorrowDate   time.Time  `json:"borrowDate"`
	ReturnDate   *time.Time `json:"returnDate"`
	Notes        string     `json:"notes,omitempty"`
}

// Open reports whether the loan has not been returned yet.
func (r *BorrowRecord) Open() bool { return r.ReturnDate == nil }

// ReadingProgress is the per-book reading snapshot. Percentage and LastUpdated
// are derived on every save, never supplied by the caller.
type ReadingProgress struct {
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	TargetDate  *time.Time `json:"targetDate,omitempty"`
	DailyGoal   int        `json:"dailyGoal,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Percentage  int        `json:"percentage"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// ReadingGoals is the catalog-wide goal configuration, one per user.
type ReadingGoals struct {
	YearlyTarget  int `json:"yearlyTarget"`
	MonthlyTarget int `json:"monthlyTarget"`
	PagesTarget   int `json:"pagesTarget"`
	CurrentYear   int `json:"currentYear"`
}

// DefaultGoals returns the goal values used before a user has saved any.
func DefaultGoals(year int) ReadingGoals {
	return ReadingGoals{
		YearlyTarget:  12,
		MonthlyTarget: 1,
		PagesTarget:   1000,
		CurrentYear:   year,
	}
}
