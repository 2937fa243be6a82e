package transport

import (
	"net/http"
	"strconv"
	"time"

	"bookstore/internal/middleware"
	"bookstore/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// publishedDateLayout is the wire format for the published_date field
const publishedDateLayout = "2006-01-02"

// CreateBookRequest represents the create-book request payload. Title,
// author and price are required; a zero price fails validation the same way
// a missing one does.
type CreateBookRequest struct {
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	Price         float64 `json:"price" validate:"required"`
	GenreID       *int64  `json:"genre_id"`
	ISBN          *string `json:"isbn"`
	PublishedDate *string `json:"published_date"`
	Description   *string `json:"description"`
	CoverImage    *string `json:"cover_image"`
	Stock         *int    `json:"stock"`
}

// UpdateBookRequest represents a partial update. Fields left out of the
// payload stay nil and keep the stored value.
type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Price         *float64 `json:"price"`
	GenreID       *int64   `json:"genre_id"`
	ISBN          *string  `json:"isbn"`
	PublishedDate *string  `json:"published_date"`
	Description   *string  `json:"description"`
	CoverImage    *string  `json:"cover_image"`
	Stock         *int     `json:"stock"`
}

// MessageResponse confirms a completed operation
type MessageResponse struct {
	Message string `json:"message"`
}

// BookHandler handles HTTP requests for book operations
type BookHandler struct {
	bookService service.BookService
	logger      *zap.Logger
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookService service.BookService, logger *zap.Logger) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		logger:      logger,
	}
}

// RegisterRoutes registers all book routes
func (h *BookHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search/{term}", h.Search)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// parseID extracts the numeric id from the URL. A non-numeric id cannot
// match any row, so callers treat the false return as not found.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// parsePublishedDate converts an optional YYYY-MM-DD string into a time
func parsePublishedDate(s *string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	t, err := time.Parse(publishedDateLayout, *s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// List handles listing all books with their genre name
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err, "Error fetching books")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, books)
}

// Get handles fetching a single book by id
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Book not found")
		return
	}

	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Error fetching book")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, book)
}

// Search handles case-insensitive substring search across title, author,
// ISBN and genre name. An empty result is 200 with an empty array.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")

	books, err := h.bookService.Search(r.Context(), term)
	if err != nil {
		respondDomainError(w, h.logger, err, "Error searching books")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, books)
}

// Create handles adding a new book
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Book validation failed", zap.Error(err))
		middleware.RespondWithErrorDetail(w, http.StatusBadRequest,
			"Title, author, and price are required", middleware.ValidationErrorDetail(err))
		return
	}

	publishedDate, ok := parsePublishedDate(req.PublishedDate)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid published_date, expected YYYY-MM-DD")
		return
	}

	book, err := h.bookService.Create(r.Context(), service.CreateBookParams{
		Title:         req.Title,
		Author:        req.Author,
		Price:         req.Price,
		GenreID:       req.GenreID,
		ISBN:          req.ISBN,
		PublishedDate: publishedDate,
		Description:   req.Description,
		CoverImage:    req.CoverImage,
		Stock:         req.Stock,
	})
	if err != nil {
		respondDomainError(w, h.logger, err, "Error creating book")
		return
	}

	h.logger.Info("Book created", zap.Int64("book_id", book.ID), zap.String("title", book.Title))
	middleware.RespondWithJSON(w, http.StatusCreated, book)
}

// Update handles a partial update of an existing book
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Book not found")
		return
	}

	var req UpdateBookRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Book update decode failed", zap.Error(err))
		middleware.RespondWithErrorDetail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	publishedDate, ok := parsePublishedDate(req.PublishedDate)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid published_date, expected YYYY-MM-DD")
		return
	}

	book, err := h.bookService.Update(r.Context(), id, service.UpdateBookParams{
		Title:         req.Title,
		Author:        req.Author,
		Price:         req.Price,
		GenreID:       req.GenreID,
		ISBN:          req.ISBN,
		PublishedDate: publishedDate,
		Description:   req.Description,
		CoverImage:    req.CoverImage,
		Stock:         req.Stock,
	})
	if err != nil {
		respondDomainError(w, h.logger, err, "Error updating book")
		return
	}

	h.logger.Info("Book updated", zap.Int64("book_id", book.ID))
	middleware.RespondWithJSON(w, http.StatusOK, book)
}

// Delete handles removing a book
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Book not found")
		return
	}

	if err := h.bookService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, h.logger, err, "Error deleting book")
		return
	}

	h.logger.Info("Book deleted", zap.Int64("book_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Book deleted successfully"})
}
