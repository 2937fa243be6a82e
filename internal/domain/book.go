package domain

import (
	"time"
)

// Book represents a book in the inventory. Nullable columns are pointers so
// a missing value round-trips as JSON null.
type Book struct {
	ID            int64      `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Author        string     `json:"author" db:"author"`
	GenreID       *int64     `json:"genre_id" db:"genre_id"`
	Price         float64    `json:"price" db:"price"`
	ISBN          *string    `json:"isbn" db:"isbn"`
	PublishedDate *time.Time `json:"published_date" db:"published_date"`
	Description   *string    `json:"description" db:"description"`
	CoverImage    *string    `json:"cover_image" db:"cover_image"`
	Stock         int        `json:"stock" db:"stock"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// BookWithGenre is a book joined with its genre's name. GenreName is null
// when the book has no genre.
type BookWithGenre struct {
	Book
	GenreName *string `json:"genre_name" db:"genre_name"`
}

// Genre represents a named category a book may optionally belong to
type Genre struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GenreWithBooks is a genre together with the books assigned to it
type GenreWithBooks struct {
	Genre
	Books []*Book `json:"books"`
}
