package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/justyntemme/shelfkeep/internal/library"
	"github.com/justyntemme/shelfkeep/internal/models"
)

// StorageError wraps a persistence failure. Callers keep their in-memory
// catalog when one is returned; nothing here retries.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storeErr(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// Database handles all database operations. Catalogs and goals are stored
// whole per user; there are no partial-write paths.
type Database struct {
	db *sql.DB
}

// NewDatabase creates and initializes the SQLite database
func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, storeErr("open", err)
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS catalogs (
		user_id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS reading_goals (
		user_id TEXT PRIMARY KEY,
		yearly_target INTEGER NOT NULL,
		monthly_target INTEGER NOT NULL,
		pages_target INTEGER NOT NULL,
		current_year INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return storeErr("migrate", err)
	}
	return nil
}

// LoadCatalog reads the user's catalog snapshot. A missing row means "no
// books yet" and yields an empty catalog, not an error.
func (d *Database) LoadCatalog(userID string) (*library.Catalog, error) {
	var data string
	err := d.db.QueryRow(`SELECT data FROM catalogs WHERE user_id = ?`, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return &library.Catalog{Books: []models.Book{}}, nil
	}
	if err != nil {
		return nil, storeErr("load catalog", err)
	}

	var books []models.Book
	if err := json.Unmarshal([]byte(data), &books); err != nil {
		return nil, storeErr("decode catalog", err)
	}
	return &library.Catalog{Books: books}, nil
}

// SaveCatalog overwrites the user's catalog snapshot wholesale.
func (d *Database) SaveCatalog(userID string, cat *library.Catalog) error {
	data, err := json.Marshal(cat.Books)
	if err != nil {
		return storeErr("encode catalog", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO catalogs (user_id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`,
		userID, string(data), time.Now(),
	)
	if err != nil {
		return storeErr("save catalog", err)
	}
	return nil
}

// LoadGoals reads the user's reading goals, falling back to the defaults
// when none have been saved yet.
func (d *Database) LoadGoals(userID string) (models.ReadingGoals, error) {
	var g models.ReadingGoals
	err := d.db.QueryRow(`
		SELECT yearly_target, monthly_target, pages_target, current_year
		FROM reading_goals WHERE user_id = ?`, userID,
	).Scan(&g.YearlyTarget, &g.MonthlyTarget, &g.PagesTarget, &g.CurrentYear)
	if err == sql.ErrNoRows {
		return models.DefaultGoals(time.Now().Year()), nil
	}
	if err != nil {
		return models.ReadingGoals{}, storeErr("load goals", err)
	}
	return g, nil
}

// SaveGoals overwrites the user's reading goals wholesale.
func (d *Database) SaveGoals(userID string, g models.ReadingGoals) error {
	_, err := d.db.Exec(`
		INSERT INTO reading_goals (user_id, yearly_target, monthly_target, pages_target, current_year, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			yearly_target = excluded.yearly_target,
			monthly_target = excluded.monthly_target,
			pages_target = excluded.pages_target,
			current_year = excluded.current_year,
			updated_at = excluded.updated_at`,
		userID, g.YearlyTarget, g.MonthlyTarget, g.PagesTarget, g.CurrentYear, time.Now(),
	)
	if err != nil {
		return storeErr("save goals", err)
	}
	return nil
}

// CreateUser creates a new user
func (d *Database) CreateUser(user *models.User) error {
	_, err := d.db.Exec(`
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return storeErr("create user", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (d *Database) GetUserByID(id string) (*models.User, error) {
	user := &models.User{}
	err := d.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username
func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	err := d.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = ?`, username,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (d *Database) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := d.db.QueryRow(`
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UserExists checks if a username or email is already taken
func (d *Database) UserExists(username, email string) (bool, error) {
	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`,
		username, email,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}
