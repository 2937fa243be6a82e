package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookstore/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrGenreNotFound      = errors.New("genre not found")
	ErrGenreAlreadyExists = errors.New("genre with this name already exists")
)

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// GenreRepository defines the interface for genre data access
type GenreRepository interface {
	List(ctx context.Context) ([]*domain.Genre, error)
	FindByID(ctx context.Context, id int64) (*domain.Genre, error)
	ListBooks(ctx context.Context, genreID int64) ([]*domain.Book, error)
	CountBooks(ctx context.Context, genreID int64) (int64, error)
	Create(ctx context.Context, name string) (*domain.Genre, error)
	Update(ctx context.Context, id int64, name string) (*domain.Genre, error)
	ClearBookGenres(ctx context.Context, genreID int64) error
	Delete(ctx context.Context, id int64) error
}

type genreRepository struct {
	db *sql.DB
}

// NewGenreRepository creates a new instance of GenreRepository
func NewGenreRepository(db *sql.DB) GenreRepository {
	return &genreRepository{db: db}
}

// List retrieves all genres ordered by name
func (r *genreRepository) List(ctx context.Context) ([]*domain.Genre, error) {
	query := `
		SELECT id, name, created_at
		FROM genres
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := []*domain.Genre{}
	for rows.Next() {
		genre := &domain.Genre{}
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating genres: %w", err)
	}

	return genres, nil
}

// FindByID retrieves a genre by ID using parameterized queries
func (r *genreRepository) FindByID(ctx context.Context, id int64) (*domain.Genre, error) {
	query := `
		SELECT id, name, created_at
		FROM genres
		WHERE id = $1
	`

	genre := &domain.Genre{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&genre.ID,
		&genre.Name,
		&genre.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to find genre by ID: %w", err)
	}

	return genre, nil
}

// ListBooks retrieves the books assigned to a genre, ordered by title.
// No join is needed since the genre is known exactly.
func (r *genreRepository) ListBooks(ctx context.Context, genreID int64) ([]*domain.Book, error) {
	query := `
		SELECT id, title, author, genre_id, price, isbn, published_date,
		       description, cover_image, stock, created_at, updated_at
		FROM books
		WHERE genre_id = $1
		ORDER BY title ASC
	`

	rows, err := r.db.QueryContext(ctx, query, genreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books for genre: %w", err)
	}
	defer rows.Close()

	books := []*domain.Book{}
	for rows.Next() {
		book := &domain.Book{}
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.GenreID,
			&book.Price,
			&book.ISBN,
			&book.PublishedDate,
			&book.Description,
			&book.CoverImage,
			&book.Stock,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// CountBooks returns the number of books assigned to a genre
func (r *genreRepository) CountBooks(ctx context.Context, genreID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM books WHERE genre_id = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, genreID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count books for genre: %w", err)
	}

	return count, nil
}

// Create inserts a new genre into the database using parameterized queries
func (r *genreRepository) Create(ctx context.Context, name string) (*domain.Genre, error) {
	query := `
		INSERT INTO genres (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`

	genre := &domain.Genre{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&genre.ID,
		&genre.Name,
		&genre.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrGenreAlreadyExists
		}
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	return genre, nil
}

// Update renames an existing genre
func (r *genreRepository) Update(ctx context.Context, id int64, name string) (*domain.Genre, error) {
	query := `
		UPDATE genres
		SET name = $2
		WHERE id = $1
		RETURNING id, name, created_at
	`

	genre := &domain.Genre{}
	err := r.db.QueryRowContext(ctx, query, id, name).Scan(
		&genre.ID,
		&genre.Name,
		&genre.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGenreNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrGenreAlreadyExists
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	return genre, nil
}

// ClearBookGenres detaches all books from a genre by setting their genre_id
// to NULL. Books always outlive their genre.
func (r *genreRepository) ClearBookGenres(ctx context.Context, genreID int64) error {
	query := `UPDATE books SET genre_id = NULL WHERE genre_id = $1`

	if _, err := r.db.ExecContext(ctx, query, genreID); err != nil {
		return fmt.Errorf("failed to clear book genres: %w", err)
	}

	return nil
}

// Delete removes a genre from the database using parameterized queries
func (r *genreRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM genres WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrGenreNotFound
	}

	return nil
}
