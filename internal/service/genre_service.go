package service

import (
	"context"

	"bookstore/internal/domain"
	"bookstore/internal/repository"
)

// GenreService defines the interface for genre business logic
type GenreService interface {
	List(ctx context.Context) ([]*domain.Genre, error)
	Get(ctx context.Context, id int64) (*domain.GenreWithBooks, error)
	Create(ctx context.Context, name string) (*domain.Genre, error)
	Update(ctx context.Context, id int64, name string) (*domain.Genre, error)
	Delete(ctx context.Context, id int64) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

// NewGenreService creates a new instance of GenreService
func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context) ([]*domain.Genre, error) {
	return s.genreRepo.List(ctx)
}

// Get returns a genre together with the books assigned to it
func (s *genreService) Get(ctx context.Context, id int64) (*domain.GenreWithBooks, error) {
	genre, err := s.genreRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.genreRepo.ListBooks(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.GenreWithBooks{Genre: *genre, Books: books}, nil
}

func (s *genreService) Create(ctx context.Context, name string) (*domain.Genre, error) {
	return s.genreRepo.Create(ctx, name)
}

func (s *genreService) Update(ctx context.Context, id int64, name string) (*domain.Genre, error) {
	return s.genreRepo.Update(ctx, id, name)
}

// Delete removes a genre. Books referencing it are detached first so they
// outlive the genre with a NULL genre_id. The check and the two writes are
// not wrapped in a transaction; the window between them is accepted.
func (s *genreService) Delete(ctx context.Context, id int64) error {
	if _, err := s.genreRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.genreRepo.CountBooks(ctx, id)
	if err != nil {
		return err
	}

	if count > 0 {
		if err := s.genreRepo.ClearBookGenres(ctx, id); err != nil {
			return err
		}
	}

	return s.genreRepo.Delete(ctx, id)
}
