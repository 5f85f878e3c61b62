package library

import (
	"github.com/justyntemme/shelfkeep/internal/models"
)

// Catalog is the full ordered collection of books owned by one user.
// Insertion order is preserved and is the tie-break for every sort. The
// catalog is loaded whole, mutated in memory and saved whole; there is no
// partial update path.
type Catalog struct {
	Books []models.Book `json:"books"`
}

// Len returns the number of books in the catalog.
func (c *Catalog) Len() int { return len(c.Books) }

// Add appends a book, preserving insertion order.
func (c *Catalog) Add(b models.Book) {
	c.Books = append(c.Books, b)
}

// Get returns a pointer to the book with the given id, or ErrBookNotFound.
// The pointer aliases catalog storage, so mutations through it are visible
// on the next save.
func (c *Catalog) Get(id string) (*models.Book, error) {
	for i := range c.Books {
		if c.Books[i].ID == id {
			return &c.Books[i], nil
		}
	}
	return nil, ErrBookNotFound
}

// Remove deletes the book with the given id.
func (c *Catalog) Remove(id string) error {
	for i := range c.Books {
		if c.Books[i].ID == id {
			c.Books = append(c.Books[:i], c.Books[i+1:]...)
			return nil
		}
	}
	return ErrBookNotFound
}
