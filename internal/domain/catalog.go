package domain

import (
	"errors"
	"time"
)

var (
	// ErrBookNotFound indicates that the book is not found.
	ErrBookNotFound = errors.New("book not found")
	// ErrAuthorNotFound indicates that the author is not found.
	ErrAuthorNotFound = errors.New("author not found")
	// ErrGenreNotFound indicates that the genre is not found.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrGenreAlreadyExists indicates that the genre with the given name already exists.
	ErrGenreAlreadyExists = errors.New("genre already exists")
	// ErrInvalidPrice indicates a negative or malformed book price.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrReferenced indicates that the entity is still referenced by books.
	ErrReferenced = errors.New("entity is referenced by books")
)

// Book is a catalog item that can be bought.
type Book struct {
	ID          int32     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	AuthorID    int32     `json:"author_id"`
	GenreID     int32     `json:"genre_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookParams is the input data to create or update a book.
type BookParams struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required,price"`
	AuthorID    int32  `json:"author_id" binding:"required,min=1"`
	GenreID     int32  `json:"genre_id" binding:"required,min=1"`
}

// Author writes books.
type Author struct {
	ID        int32     `json:"id"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorParams is the input data to create or update an author.
type AuthorParams struct {
	FullName string `json:"full_name" binding:"required"`
	Bio      string `json:"bio"`
}

// Genre groups books.
type Genre struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GenreParams is the input data to create or update a genre.
type GenreParams struct {
	Name string `json:"name" binding:"required"`
}

// CatalogCounts holds the numbers shown on the home page.
type CatalogCounts struct {
	Books   int64 `json:"books"`
	Authors int64 `json:"authors"`
	Genres  int64 `json:"genres"`
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Number      int32 `json:"number"`
	NumPages    int32 `json:"num_pages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}
