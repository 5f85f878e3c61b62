package library

import (
	"sort"

	"github.com/justyntemme/shelfkeep/internal/models"
)

// Stats is the catalog-wide summary recomputed on every query.
type Stats struct {
	Total            int     `json:"total"`
	WantToRead       int     `json:"wantToRead"`
	CurrentlyReading int     `json:"currentlyReading"`
	Finished         int     `json:"finished"`
	Available        int     `json:"available"`
	Borrowed         int     `json:"borrowed"`
	TotalBorrowings  int     `json:"totalBorrowings"`
	FinishedThisYear int     `json:"finishedThisYear"`
	PagesThisYear    int     `json:"pagesThisYear"`
	AverageRating    float64 `json:"averageRating"`
}

// finishedInYear reports whether the book was finished with a reading start
// date inside the target year. Books finished without recorded progress do
// not count toward year-scoped totals.
func finishedInYear(b *models.Book, year int) bool {
	return b.Status == models.StatusFinished &&
		b.ReadingProgress != nil &&
		b.ReadingProgress.StartDate != nil &&
		b.ReadingProgress.StartDate.Year() == year
}

// ComputeStats derives the summary for one catalog. Year scopes the
// finished-count and page-sum fields. AverageRating is 0 when no book has a
// rating.
func ComputeStats(books []models.Book, year int) Stats {
	s := Stats{Total: len(books)}

	ratingSum, ratedCount := 0, 0
	for i := range books {
		b := &books[i]
		switch b.Status {
		case models.StatusWantToRead:
			s.WantToRead++
		case models.StatusCurrentlyReading:
			s.CurrentlyReading++
		case models.StatusFinished:
			s.Finished++
		case models.StatusAvailable:
			s.Available++
		case models.StatusBorrowed:
			s.Borrowed++
		}
		s.TotalBorrowings += len(b.BorrowingHistory)

		if finishedInYear(b, year) {
			s.FinishedThisYear++
			if b.Pages != nil {
				s.PagesThisYear += *b.Pages
			}
		}
		if b.Rating != nil {
			ratingSum += *b.Rating
			ratedCount++
		}
	}
	if ratedCount > 0 {
		s.AverageRating = float64(ratingSum) / float64(ratedCount)
	}
	return s
}

// CategoryCount is one row of the category histogram.
type CategoryCount struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoryBreakdown counts books per category, sorted by count descending
// with name as the tie-break. Percentage is of the whole catalog.
func CategoryBreakdown(books []models.Book) []CategoryCount {
	counts := make(map[string]int)
	for i := range books {
		counts[books[i].Category]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		pct := 0.0
		if len(books) > 0 {
			pct = float64(n) / float64(len(books)) * 100
		}
		out = append(out, CategoryCount{Category: cat, Count: n, Percentage: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// GoalProgress reports how the year's finished books and pages measure
// against the configured targets. The ratios are raw and may exceed 1; the
// percent fields are clamped to [0,100] for display.
type GoalProgress struct {
	Year          int     `json:"year"`
	BooksFinished int     `json:"booksFinished"`
	YearlyTarget  int     `json:"yearlyTarget"`
	PagesRead     int     `json:"pagesRead"`
	PagesTarget   int     `json:"pagesTarget"`
	BooksRatio    float64 `json:"booksRatio"`
	PagesRatio    float64 `json:"pagesRatio"`
	BooksPercent  float64 `json:"booksPercent"`
	PagesPercent  float64 `json:"pagesPercent"`
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ComputeGoalProgress measures the catalog against goals for
// goals.CurrentYear.
func ComputeGoalProgress(books []models.Book, goals models.ReadingGoals) GoalProgress {
	stats := ComputeStats(books, goals.CurrentYear)

	p := GoalProgress{
		Year:          goals.CurrentYear,
		BooksFinished: stats.FinishedThisYear,
		YearlyTarget:  goals.YearlyTarget,
		PagesRead:     stats.PagesThisYear,
		PagesTarget:   goals.PagesTarget,
	}
	if goals.YearlyTarget > 0 {
		p.BooksRatio = float64(p.BooksFinished) / float64(goals.YearlyTarget)
	}
	if goals.PagesTarget > 0 {
		p.PagesRatio = float64(p.PagesRead) / float64(goals.PagesTarget)
	}
	p.BooksPercent = clampPercent(p.BooksRatio * 100)
	p.PagesPercent = clampPercent(p.PagesRatio * 100)
	return p
}
