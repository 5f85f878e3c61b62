package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/shelfkeep/internal/library"
	"github.com/justyntemme/shelfkeep/internal/models"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *Database) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "reader",
		Email:        "reader@example.com",
		PasswordHash: "hashed",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.CreateUser(user))
	return user
}

func TestLoadCatalogEmpty(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	cat, err := db.LoadCatalog(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, cat.Books)
	assert.Equal(t, 0, cat.Len())
}

func TestSaveAndLoadCatalog(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	book, err := library.NewBook(library.BookInput{
		Title:    "Dune",
		Author:   "Frank Herbert",
		Category: "Science Fiction",
	})
	require.NoError(t, err)

	cat := &library.Catalog{}
	cat.Add(book)
	_, err = cat.Borrow(book.ID, "Alice", "lent at book club")
	require.NoError(t, err)

	require.NoError(t, db.SaveCatalog(user.ID, cat))

	loaded, err := db.LoadCatalog(user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())

	got, err := loaded.Get(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, models.StatusBorrowed, got.Status)
	require.Len(t, got.BorrowingHistory, 1)
	assert.Equal(t, "Alice", got.BorrowingHistory[0].BorrowerName)
}

func TestSaveCatalogOverwrites(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	book, err := library.NewBook(library.BookInput{Title: "A", Author: "X", Category: "Fiction"})
	require.NoError(t, err)
	cat := &library.Catalog{}
	cat.Add(book)
	require.NoError(t, db.SaveCatalog(user.ID, cat))

	require.NoError(t, cat.Remove(book.ID))
	require.NoError(t, db.SaveCatalog(user.ID, cat))

	loaded, err := db.LoadCatalog(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestLoadGoalsDefaults(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	goals, err := db.LoadGoals(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, goals.YearlyTarget)
	assert.Equal(t, 1, goals.MonthlyTarget)
	assert.Equal(t, 1000, goals.PagesTarget)
	assert.Equal(t, time.Now().Year(), goals.CurrentYear)
}

func TestSaveAndLoadGoals(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	want := models.ReadingGoals{YearlyTarget: 24, MonthlyTarget: 2, PagesTarget: 6000, CurrentYear: 2026}
	require.NoError(t, db.SaveGoals(user.ID, want))

	got, err := db.LoadGoals(user.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Saving again replaces, not duplicates.
	want.YearlyTarget = 30
	require.NoError(t, db.SaveGoals(user.ID, want))
	got, err = db.LoadGoals(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.YearlyTarget)
}

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	byID, err := db.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, byID.Username)

	byName, err := db.GetUserByUsername("reader")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := db.GetUserByEmail("reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserExists(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db)

	exists, err := db.UserExists("reader", "other@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.UserExists("other", "reader@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = db.UserExists("other", "other@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDuplicateUserFails(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	dup := &models.User{
		ID:           uuid.New().String(),
		Username:     user.Username,
		Email:        "different@example.com",
		PasswordHash: "hashed",
		CreatedAt:    time.Now(),
	}
	err := db.CreateUser(dup)
	require.Error(t, err)

	var sErr *StorageError
	assert.ErrorAs(t, err, &sErr)
}
