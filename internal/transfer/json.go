package transfer

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justyntemme/shelfkeep/internal/models"
)

// ExportJSON writes the catalog as an indented JSON array carrying the full
// entity shape, borrowing history and reading progress included.
func ExportJSON(w io.Writer, books []models.Book) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(books)
}

// ImportJSON reads a JSON array of books. Records missing a title or author
// are skipped and counted. Identifiers are re-assigned; every other field
// present in the file, including history and progress, is kept.
func ImportJSON(r io.Reader) ([]models.Book, int, error) {
	var raw []models.Book
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, err
	}

	var books []models.Book
	skipped := 0
	for _, b := range raw {
		if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" {
			skipped++
			continue
		}
		b.ID = uuid.New().String()
		b.Category = normalizeCategory(b.Category)
		b.Status = normalizeStatus(string(b.Status))
		b.Rating = normalizeRating(b.Rating)
		if b.DateAdded.IsZero() {
			b.DateAdded = time.Now()
		}
		if b.BorrowingHistory == nil {
			b.BorrowingHistory = []models.BorrowRecord{}
		}
		for i := range b.BorrowingHistory {
			if b.BorrowingHistory[i].ID == "" {
				b.BorrowingHistory[i].ID = uuid.New().String()
			}
		}
		books = append(books, b)
	}
	return books, skipped, nil
}

// Result summarizes an import batch for the caller.
type Result struct {
	Total    int `json:"total"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
