package transport

import (
	"errors"
	"net/http"

	"bookstore/internal/middleware"
	"bookstore/internal/repository"

	"go.uber.org/zap"
)

// respondDomainError is the single translation step from error kind to HTTP
// status. Anything that is not a known kind is a data-access failure and
// surfaces as 500 with the handler's fallback message.
func respondDomainError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrBookNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "Book not found")
	case errors.Is(err, repository.ErrGenreNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "Genre not found")
	case errors.Is(err, repository.ErrGenreAlreadyExists):
		middleware.RespondWithError(w, http.StatusBadRequest, "Genre already exists")
	default:
		logger.Error(fallback, zap.Error(err))
		middleware.RespondWithErrorDetail(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
