package transport

import (
	"net/http"

	"bookstore/internal/middleware"
	"bookstore/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GenreRequest represents the create/update genre payload
type GenreRequest struct {
	Name string `json:"name" validate:"required"`
}

// GenreHandler handles HTTP requests for genre operations
type GenreHandler struct {
	genreService service.GenreService
	logger       *zap.Logger
}

// NewGenreHandler creates a new GenreHandler
func NewGenreHandler(genreService service.GenreService, logger *zap.Logger) *GenreHandler {
	return &GenreHandler{
		genreService: genreService,
		logger:       logger,
	}
}

// RegisterRoutes registers all genre routes
func (h *GenreHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/genres", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles listing all genres ordered by name
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genreService.List(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err, "Error fetching genres")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, genres)
}

// Get handles fetching a single genre together with its books
func (h *GenreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Genre not found")
		return
	}

	genre, err := h.genreService.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Error fetching genre")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, genre)
}

// Create handles adding a new genre
func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req GenreRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Genre validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Genre name is required")
		return
	}

	genre, err := h.genreService.Create(r.Context(), req.Name)
	if err != nil {
		respondDomainError(w, h.logger, err, "Error creating genre")
		return
	}

	h.logger.Info("Genre created", zap.Int64("genre_id", genre.ID), zap.String("name", genre.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, genre)
}

// Update handles renaming an existing genre
func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Genre not found")
		return
	}

	var req GenreRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Genre validation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Genre name is required")
		return
	}

	genre, err := h.genreService.Update(r.Context(), id, req.Name)
	if err != nil {
		respondDomainError(w, h.logger, err, "Error updating genre")
		return
	}

	h.logger.Info("Genre updated", zap.Int64("genre_id", genre.ID))
	middleware.RespondWithJSON(w, http.StatusOK, genre)
}

// Delete handles removing a genre, detaching its books first
func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Genre not found")
		return
	}

	if err := h.genreService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, h.logger, err, "Error deleting genre")
		return
	}

	h.logger.Info("Genre deleted", zap.Int64("genre_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Genre deleted successfully"})
}
