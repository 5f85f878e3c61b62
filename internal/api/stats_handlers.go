package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justyntemme/shelfkeep/internal/auth"
	"github.com/justyntemme/shelfkeep/internal/library"
	"github.com/justyntemme/shelfkeep/internal/models"
)

// GetStats returns the catalog summary. Year-scoped fields default to the
// current year; pass ?year= to scope them elsewhere.
func (h *Handler) GetStats(c *gin.Context) {
	cat, _, ok := h.loadCatalog(c)
	if !ok {
		return
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = y
	}

	c.JSON(http.StatusOK, library.ComputeStats(cat.Books, year))
}

// GetCategoryBreakdown returns the category histogram, largest first.
func (h *Handler) GetCategoryBreakdown(c *gin.Context) {
	cat, _, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": library.CategoryBreakdown(cat.Books)})
}

// GetGoals returns the user's reading goals, defaults included.
func (h *Handler) GetGoals(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	goals, err := h.db.LoadGoals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goals"})
		return
	}
	c.JSON(http.StatusOK, goals)
}

// SaveGoals overwrites the user's reading goals wholesale.
func (h *Handler) SaveGoals(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var goals models.ReadingGoals
	if err := c.ShouldBindJSON(&goals); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if goals.YearlyTarget < 1 || goals.MonthlyTarget < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Targets must be positive"})
		return
	}
	if goals.PagesTarget < 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pages target must be at least 100"})
		return
	}
	if goals.CurrentYear == 0 {
		goals.CurrentYear = time.Now().Year()
	}

	if err := h.db.SaveGoals(userID, goals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save goals"})
		return
	}
	c.JSON(http.StatusOK, goals)
}

// GetGoalProgress measures the catalog against the saved goals.
func (h *Handler) GetGoalProgress(c *gin.Context) {
	cat, userID, ok := h.loadCatalog(c)
	if !ok {
		return
	}

	goals, err := h.db.LoadGoals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goals"})
		return
	}
	c.JSON(http.StatusOK, library.ComputeGoalProgress(cat.Books, goals))
}
