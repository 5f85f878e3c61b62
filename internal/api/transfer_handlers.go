package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justyntemme/shelfkeep/internal/models"
	"github.com/justyntemme/shelfkeep/internal/transfer"
)

// ExportBooks streams the catalog as CSV or JSON for backup or spreadsheet
// use.
func (h *Handler) ExportBooks(c *gin.Context) {
	cat, _, ok := h.loadCatalog(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "json")
	stamp := time.Now().Format("2006-01-02")

	var buf bytes.Buffer
	switch format {
	case "csv":
		if err := transfer.ExportCSV(&buf, cat.Books); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export catalog"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="my-library-%s.csv"`, stamp))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "json":
		if err := transfer.ExportJSON(&buf, cat.Books); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export catalog"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="my-library-%s.json"`, stamp))
		c.Data(http.StatusOK, "application/json", buf.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format (use csv or json)"})
	}
}

// ImportBooks accepts a CSV or JSON file upload and appends the valid
// records to the catalog. Records missing title or author are skipped and
// counted, never fatal to the batch.
func (h *Handler) ImportBooks(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	var books []models.Book
	var skipped int
	filename := strings.ToLower(header.Filename)
	switch {
	case strings.HasSuffix(filename, ".csv"):
		books, skipped, err = transfer.ImportCSV(file)
	case strings.HasSuffix(filename, ".json"):
		books, skipped, err = transfer.ImportJSON(file)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file format. Please upload CSV or JSON files."})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse import file"})
		return
	}

	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	for _, b := range books {
		cat.Add(b)
	}
	if !h.saveCatalog(c, userID, cat) {
		return
	}

	c.JSON(http.StatusOK, transfer.Result{
		Total:    len(books) + skipped,
		Imported: len(books),
		Skipped:  skipped,
	})
}
