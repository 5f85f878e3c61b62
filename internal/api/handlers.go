package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justyntemme/shelfkeep/internal/auth"
	"github.com/justyntemme/shelfkeep/internal/library"
	"github.com/justyntemme/shelfkeep/internal/models"
	"github.com/justyntemme/shelfkeep/internal/storage"
)

// Handler contains all HTTP handlers
type Handler struct {
	db *storage.Database
}

// NewHandler creates a new handler instance
func NewHandler(db *storage.Database) *Handler {
	return &Handler{db: db}
}

// HealthCheck reports server liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// APIInfo describes the API surface for CLI/TUI clients.
func (h *Handler) APIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "shelfkeep",
		"version": "1.0",
		"endpoints": gin.H{
			"auth":    "/api/auth/{register,login,refresh,me}",
			"books":   "/api/books",
			"stats":   "/api/stats",
			"goals":   "/api/goals",
			"export":  "/api/export?format=csv|json",
			"import":  "/api/import",
			"filters": "q, category, status, year_min, year_max, pages_min, pages_max, rating, sort",
		},
	})
}

// loadCatalog resolves the authenticated user and loads their catalog
// snapshot. It writes the error response itself when it returns false.
func (h *Handler) loadCatalog(c *gin.Context) (*library.Catalog, string, bool) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return nil, "", false
	}
	cat, err := h.db.LoadCatalog(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return nil, "", false
	}
	return cat, userID, true
}

// saveCatalog persists the mutated snapshot. The in-memory catalog is left
// untouched on failure; the caller just sees the error.
func (h *Handler) saveCatalog(c *gin.Context, userID string, cat *library.Catalog) bool {
	if err := h.db.SaveCatalog(userID, cat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save catalog"})
		return false
	}
	return true
}

func respondCoreError(c *gin.Context, err error) {
	var vErr *library.ValidationError
	switch {
	case errors.Is(err, library.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
	case errors.Is(err, library.ErrAlreadyBorrowed), errors.Is(err, library.ErrNoOpenLoan):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}

// queryInt parses an optional integer query parameter. The second return is
// false when the parameter was present but malformed.
func queryInt(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// ListBooks returns the catalog filtered, searched and sorted per query
// parameters. With no parameters it returns the whole catalog in insertion
// order.
func (h *Handler) ListBooks(c *gin.Context) {
	cat, _, ok := h.loadCatalog(c)
	if !ok {
		return
	}

	filters := library.Filters{
		Category: c.Query("category"),
		Status:   models.Status(c.Query("status")),
	}
	var parseOK bool
	if filters.YearRange.Min, parseOK = queryInt(c, "year_min"); !parseOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year_min"})
		return
	}
	if filters.YearRange.Max, parseOK = queryInt(c, "year_max"); !parseOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year_max"})
		return
	}
	if filters.PageRange.Min, parseOK = queryInt(c, "pages_min"); !parseOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pages_min"})
		return
	}
	if filters.PageRange.Max, parseOK = queryInt(c, "pages_max"); !parseOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pages_max"})
		return
	}
	if filters.Rating, parseOK = queryInt(c, "rating"); !parseOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rating"})
		return
	}
	if filters.Status != "" && !models.ValidStatus(filters.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	books := library.Filter(cat.Books, c.Query("q"), filters)
	if key := c.Query("sort"); key != "" {
		books = library.Sort(books, library.SortKey(key))
	}
	if books == nil {
		books = []models.Book{}
	}

	c.JSON(http.StatusOK, gin.H{"books": books, "total": len(books)})
}

// CreateBook adds a new book to the catalog.
func (h *Handler) CreateBook(c *gin.Context) {
	var in library.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}

	book, err := library.NewBook(in)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	cat.Add(book)
	if !h.saveCatalog(c, userID, cat) {
		return
	}
	c.JSON(http.StatusCreated, book)
}

// GetBook returns a single book by id.
func (h *Handler) GetBook(c *gin.Context) {
	cat, _, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	book, err := cat.Get(c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// UpdateBook merges an edit into the book. This is the raw-edit path:
// a status supplied here is applied without ledger side effects.
func (h *Handler) UpdateBook(c *gin.Context) {
	var in library.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	book, err := cat.ApplyEdit(c.Param("id"), in)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !h.saveCatalog(c, userID, cat) {
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBook removes a book from the catalog.
func (h *Handler) DeleteBook(c *gin.Context) {
	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	if err := cat.Remove(c.Param("id")); err != nil {
		respondCoreError(c, err)
		return
	}
	if !h.saveCatalog(c, userID, cat) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}

// BorrowBook opens a loan and moves the book to borrowed.
func (h *Handler) BorrowBook(c *gin.Context) {
	var req struct {
		BorrowerName string `json:"borrower_name"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	rec, err := cat.Borrow(c.Param("id"), req.BorrowerName, req.Notes)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !h.saveCatalog(c, userID, cat) {
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ReturnBook closes the open loan and moves the book back to available.
func (h *Handler) ReturnBook(c *gin.Context) {
	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	rec, err := cat.Return(c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !h.saveCatalog(c, userID, cat) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record":        rec,
		"duration_days": library.LoanDuration(*rec),
	})
}

// StartReading moves the book to currently-reading.
func (h *Handler) StartReading(c *gin.Context) {
	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	book, err := cat.StartReading(c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !h.saveCatalog(c, userID, cat) {
		return
	}
	c.JSON(http.StatusOK, book)
}

// UpdateProgress overwrites the book's reading progress snapshot.
func (h *Handler) UpdateProgress(c *gin.Context) {
	var in library.ProgressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	book, err := cat.UpdateProgress(c.Param("id"), in)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !h.saveCatalog(c, userID, cat) {
		return
	}
	c.JSON(http.StatusOK, book)
}

// RateBook records a rating and review and marks the book finished.
func (h *Handler) RateBook(c *gin.Context) {
	var req struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	book, err := cat.Rate(c.Param("id"), req.Rating, req.Review)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	if !h.saveCatalog(c, userID, cat) {
		return
	}
	c.JSON(http.StatusOK, book)
}
