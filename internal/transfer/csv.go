package transfer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/justyntemme/shelfkeep/internal/models"
)

// CSVHeader is the canonical column set for catalog interchange. Title and
// Author are required on import; everything else is optional.
var CSVHeader = []string{
	"Title",
	"Author",
	"ISBN",
	"Category",
	"Description",
	"Published Year",
	"Pages",
	"Status",
	"Rating",
	"Review",
	"Date Added",
	"Series",
	"Series Number",
}

func intField(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

// ExportCSV writes the catalog as CSV with the canonical header.
func ExportCSV(w io.Writer, books []models.Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for i := range books {
		b := &books[i]
		row := []string{
			b.Title,
			b.Author,
			b.ISBN,
			b.Category,
			b.Description,
			intField(b.PublishedYear),
			intField(b.Pages),
			string(b.Status),
			intField(b.Rating),
			b.Review,
			b.DateAdded.Format(time.RFC3339),
			b.Series,
			intField(b.SeriesNumber),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseOptionalInt returns nil for empty or malformed values; a bad number
// in one column degrades that field to absent instead of failing the row.
func parseOptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ImportCSV reads a header-driven CSV export. Column names are matched
// case-insensitively. Rows missing a title or author are skipped and
// counted; they never abort the batch. Every imported book gets a fresh id,
// a dateAdded of now unless the file carries one, and an empty borrowing
// history.
func ImportCSV(r io.Reader) ([]models.Book, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var books []models.Book
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, not a malformed file: skip and keep going.
			skipped++
			continue
		}

		title := field(row, "title")
		author := field(row, "author")
		if title == "" || author == "" {
			skipped++
			continue
		}

		dateAdded := time.Now()
		if raw := field(row, "date added"); raw != "" {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				dateAdded = t
			}
		}

		books = append(books, models.Book{
			ID:               uuid.New().String(),
			Title:            title,
			Author:           author,
			ISBN:             field(row, "isbn"),
			Category:         normalizeCategory(field(row, "category")),
			Description:      field(row, "description"),
			PublishedYear:    parseOptionalInt(field(row, "published year")),
			Pages:            parseOptionalInt(field(row, "pages")),
			Status:           normalizeStatus(field(row, "status")),
			Rating:           normalizeRating(parseOptionalInt(field(row, "rating"))),
			Review:           field(row, "review"),
			Series:           field(row, "series"),
			SeriesNumber:     parseOptionalInt(field(row, "series number")),
			DateAdded:        dateAdded,
			BorrowingHistory: []models.BorrowRecord{},
		})
	}
	return books, skipped, nil
}

func normalizeCategory(c string) string {
	if models.ValidCategory(c) {
		return c
	}
	return "Other"
}

func normalizeStatus(s string) models.Status {
	st := models.Status(s)
	if models.ValidStatus(st) {
		return st
	}
	return models.StatusWantToRead
}

func normalizeRating(r *int) *int {
	if r == nil || *r < 1 || *r > 5 {
		return nil
	}
	return r
}
