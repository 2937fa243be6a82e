package service

import (
	"context"
	"time"

	"bookstore/internal/domain"
	"bookstore/internal/repository"
)

// CreateBookParams carries the validated fields for a new book. Optional
// fields are pointers and default to NULL; stock defaults to 0.
type CreateBookParams struct {
	Title         string
	Author        string
	Price         float64
	GenreID       *int64
	ISBN          *string
	PublishedDate *time.Time
	Description   *string
	CoverImage    *string
	Stock         *int
}

// UpdateBookParams carries a partial update. A nil field was not provided
// and keeps the stored value; a non-nil field replaces it, including empty
// strings and zero numbers.
type UpdateBookParams struct {
	Title         *string
	Author        *string
	Price         *float64
	GenreID       *int64
	ISBN          *string
	PublishedDate *time.Time
	Description   *string
	CoverImage    *string
	Stock         *int
}

// BookService defines the interface for book business logic
type BookService interface {
	List(ctx context.Context) ([]*domain.BookWithGenre, error)
	Get(ctx context.Context, id int64) (*domain.BookWithGenre, error)
	Search(ctx context.Context, term string) ([]*domain.BookWithGenre, error)
	Create(ctx context.Context, params CreateBookParams) (*domain.Book, error)
	Update(ctx context.Context, id int64, params UpdateBookParams) (*domain.BookWithGenre, error)
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	bookRepo repository.BookRepository
}

// NewBookService creates a new instance of BookService
func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) List(ctx context.Context) ([]*domain.BookWithGenre, error) {
	return s.bookRepo.List(ctx)
}

func (s *bookService) Get(ctx context.Context, id int64) (*domain.BookWithGenre, error) {
	return s.bookRepo.FindByID(ctx, id)
}

func (s *bookService) Search(ctx context.Context, term string) ([]*domain.BookWithGenre, error) {
	return s.bookRepo.Search(ctx, term)
}

// Create stores a new book. The created row is returned without the joined
// genre name.
func (s *bookService) Create(ctx context.Context, params CreateBookParams) (*domain.Book, error) {
	book := &domain.Book{
		Title:         params.Title,
		Author:        params.Author,
		Price:         params.Price,
		GenreID:       params.GenreID,
		ISBN:          params.ISBN,
		PublishedDate: params.PublishedDate,
		Description:   params.Description,
		CoverImage:    params.CoverImage,
	}
	if params.Stock != nil {
		book.Stock = *params.Stock
	}

	return s.bookRepo.Create(ctx, book)
}

// Update merges the provided fields over the stored row and writes the
// result back, returning the updated book joined with its genre name.
func (s *bookService) Update(ctx context.Context, id int64, params UpdateBookParams) (*domain.BookWithGenre, error) {
	book, err := s.bookRepo.FindRowByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		book.Title = *params.Title
	}
	if params.Author != nil {
		book.Author = *params.Author
	}
	if params.Price != nil {
		book.Price = *params.Price
	}
	if params.GenreID != nil {
		book.GenreID = params.GenreID
	}
	if params.ISBN != nil {
		book.ISBN = params.ISBN
	}
	if params.PublishedDate != nil {
		book.PublishedDate = params.PublishedDate
	}
	if params.Description != nil {
		book.Description = params.Description
	}
	if params.CoverImage != nil {
		book.CoverImage = params.CoverImage
	}
	if params.Stock != nil {
		book.Stock = *params.Stock
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	return s.bookRepo.FindByID(ctx, id)
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	return s.bookRepo.Delete(ctx, id)
}
