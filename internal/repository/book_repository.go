package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookstore/internal/domain"
)

var (
	ErrBookNotFound = errors.New("book not found")
)

// BookRepository defines the interface for book data access
type BookRepository interface {
	List(ctx context.Context) ([]*domain.BookWithGenre, error)
	FindByID(ctx context.Context, id int64) (*domain.BookWithGenre, error)
	FindRowByID(ctx context.Context, id int64) (*domain.Book, error)
	Search(ctx context.Context, term string) ([]*domain.BookWithGenre, error)
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new instance of BookRepository
func NewBookRepository(db *sql.DB) BookRepository {
	return &bookRepository{db: db}
}

// joinedColumns is the select list shared by every query that returns books
// together with their genre name
const joinedColumns = `
	b.id, b.title, b.author, b.genre_id, b.price, b.isbn, b.published_date,
	b.description, b.cover_image, b.stock, b.created_at, b.updated_at,
	g.name AS genre_name
`

func scanBookWithGenre(rows *sql.Rows) (*domain.BookWithGenre, error) {
	book := &domain.BookWithGenre{}
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
		&book.GenreName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}
	return book, nil
}

// List retrieves all books with their genre name, newest first
func (r *bookRepository) List(ctx context.Context) ([]*domain.BookWithGenre, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN genres g ON b.genre_id = g.id
		ORDER BY b.created_at DESC, b.id DESC
	`, joinedColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []*domain.BookWithGenre{}
	for rows.Next() {
		book, err := scanBookWithGenre(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

// FindByID retrieves a book with its genre name using parameterized queries
func (r *bookRepository) FindByID(ctx context.Context, id int64) (*domain.BookWithGenre, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN genres g ON b.genre_id = g.id
		WHERE b.id = $1
	`, joinedColumns)

	book := &domain.BookWithGenre{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
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
		&book.GenreName,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to find book by ID: %w", err)
	}

	return book, nil
}

// FindRowByID retrieves a book without the genre join. Used when the stored
// row is needed as the merge base for a partial update.
func (r *bookRepository) FindRowByID(ctx context.Context, id int64) (*domain.Book, error) {
	query := `
		SELECT id, title, author, genre_id, price, isbn, published_date,
		       description, cover_image, stock, created_at, updated_at
		FROM books
		WHERE id = $1
	`

	book := &domain.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
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
		if err == sql.ErrNoRows {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to find book by ID: %w", err)
	}

	return book, nil
}

// Search finds books whose title, author, ISBN or genre name contains the
// term, case-insensitively. No match yields an empty slice, not an error.
func (r *bookRepository) Search(ctx context.Context, term string) ([]*domain.BookWithGenre, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM books b
		LEFT JOIN genres g ON b.genre_id = g.id
		WHERE b.title ILIKE $1
		   OR b.author ILIKE $1
		   OR b.isbn ILIKE $1
		   OR g.name ILIKE $1
		ORDER BY b.title ASC
	`, joinedColumns)

	searchPattern := "%" + term + "%"

	rows, err := r.db.QueryContext(ctx, query, searchPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	books := []*domain.BookWithGenre{}
	for rows.Next() {
		book, err := scanBookWithGenre(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return books, nil
}

// Create inserts a new book and returns the stored row with its generated
// id and timestamps
func (r *bookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	query := `
		INSERT INTO books (title, author, genre_id, price, isbn,
		                   published_date, description, cover_image, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	created := *book
	err := r.db.QueryRowContext(
		ctx,
		query,
		book.Title,
		book.Author,
		book.GenreID,
		book.Price,
		book.ISBN,
		book.PublishedDate,
		book.Description,
		book.CoverImage,
		book.Stock,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return &created, nil
}

// Update writes the full merged row. updated_at is refreshed by a trigger.
func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	query := `
		UPDATE books
		SET title = $2, author = $3, genre_id = $4, price = $5, isbn = $6,
		    published_date = $7, description = $8, cover_image = $9, stock = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		book.ID,
		book.Title,
		book.Author,
		book.GenreID,
		book.Price,
		book.ISBN,
		book.PublishedDate,
		book.Description,
		book.CoverImage,
		book.Stock,
	)

	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrBookNotFound
	}

	return nil
}

// Delete removes a book from the database using parameterized queries
func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM books WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrBookNotFound
	}

	return nil
}
