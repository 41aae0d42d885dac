package book

import (
	"time"

	"bookreview/internal/apperr"
	"bookreview/internal/review"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = apperr.New(apperr.ErrNotFound, "Book not found")

// Book represents a catalog entry. AverageRating is a cache of the mean of
// the book's review ratings.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Genre         string    `json:"genre"`
	Year          int       `json:"year"`
	AddedBy       string    `json:"added_by"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (b Book) OwnerID() string {
	return b.AddedBy
}

// Sort orders accepted by List.
const (
	SortNatural = ""
	SortYear    = "year"
	SortRating  = "rating"
)

// Query defines filters and the window for listing books. Search matches
// title or author as a case-insensitive substring.
type Query struct {
	Search string
	Genre  string
	Sort   string
	Limit  int
	Offset int
}

// Page is one window of the catalog.
type Page struct {
	Items []Book `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}

// Detail is a book with its reviews, newest first. AverageRating is
// computed from Reviews rather than read from the cache.
type Detail struct {
	Book
	Reviews []review.Review `json:"reviews"`
}

// Changes holds the fields of a partial update. Nil means unchanged.
type Changes struct {
	Title       *string
	Author      *string
	Description *string
	Genre       *string
	Year        *int
}

func (b *Book) apply(c Changes) {
	if c.Title != nil {
		b.Title = *c.Title
	}
	if c.Author != nil {
		b.Author = *c.Author
	}
	if c.Description != nil {
		b.Description = *c.Description
	}
	if c.Genre != nil {
		b.Genre = *c.Genre
	}
	if c.Year != nil {
		b.Year = *c.Year
	}
}
