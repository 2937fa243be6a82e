package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookstore/internal/domain"
	"bookstore/internal/repository"
	"bookstore/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type mockGenreService struct {
	genres map[int64]*domain.Genre
	nextID int64
}

func newMockGenreService() *mockGenreService {
	return &mockGenreService{genres: make(map[int64]*domain.Genre)}
}

func (m *mockGenreService) List(ctx context.Context) ([]*domain.Genre, error) {
	genres := []*domain.Genre{}
	for _, g := range m.genres {
		genres = append(genres, g)
	}
	return genres, nil
}

func (m *mockGenreService) Get(ctx context.Context, id int64) (*domain.GenreWithBooks, error) {
	genre, exists := m.genres[id]
	if !exists {
		return nil, repository.ErrGenreNotFound
	}
	return &domain.GenreWithBooks{Genre: *genre, Books: []*domain.Book{}}, nil
}

func (m *mockGenreService) Create(ctx context.Context, name string) (*domain.Genre, error) {
	for _, g := range m.genres {
		if g.Name == name {
			return nil, repository.ErrGenreAlreadyExists
		}
	}
	m.nextID++
	genre := &domain.Genre{ID: m.nextID, Name: name, CreatedAt: time.Now()}
	m.genres[genre.ID] = genre
	return genre, nil
}

func (m *mockGenreService) Update(ctx context.Context, id int64, name string) (*domain.Genre, error) {
	genre, exists := m.genres[id]
	if !exists {
		return nil, repository.ErrGenreNotFound
	}
	genre.Name = name
	return genre, nil
}

func (m *mockGenreService) Delete(ctx context.Context, id int64) error {
	if _, exists := m.genres[id]; !exists {
		return repository.ErrGenreNotFound
	}
	delete(m.genres, id)
	return nil
}

func newGenreRouter(svc service.GenreService) chi.Router {
	router := chi.NewRouter()
	NewGenreHandler(svc, zap.NewNop()).RegisterRoutes(router)
	return router
}

func TestGenreHandler_CreateReturns201(t *testing.T) {
	router := newGenreRouter(newMockGenreService())

	req := httptest.NewRequest("POST", "/api/genres", bytes.NewBufferString(`{"name":"Poetry"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var genre domain.Genre
	if err := json.Unmarshal(w.Body.Bytes(), &genre); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if genre.Name != "Poetry" || genre.ID == 0 {
		t.Errorf("Unexpected created genre: %+v", genre)
	}
}

func TestGenreHandler_CreateMissingNameReturns400(t *testing.T) {
	svc := newMockGenreService()
	router := newGenreRouter(svc)

	for _, payload := range []string{`{}`, `{"name":""}`} {
		req := httptest.NewRequest("POST", "/api/genres", bytes.NewBufferString(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("payload %s: status = %d, want 400", payload, w.Code)
		}
		if body := decodeErrorBody(t, w); body.Message != "Genre name is required" {
			t.Errorf("payload %s: message = %q", payload, body.Message)
		}
	}

	if len(svc.genres) != 0 {
		t.Error("No genre may be written on validation failure")
	}
}

func TestGenreHandler_CreateDuplicateReturns400(t *testing.T) {
	svc := newMockGenreService()
	router := newGenreRouter(svc)

	first := httptest.NewRequest("POST", "/api/genres", bytes.NewBufferString(`{"name":"Fiction"}`))
	router.ServeHTTP(httptest.NewRecorder(), first)

	req := httptest.NewRequest("POST", "/api/genres", bytes.NewBufferString(`{"name":"Fiction"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body := decodeErrorBody(t, w); body.Message != "Genre already exists" {
		t.Errorf("message = %q, want Genre already exists", body.Message)
	}
	if len(svc.genres) != 1 {
		t.Error("Rejected duplicate must not change the stored genres")
	}
}

func TestGenreHandler_GetMissingReturns404(t *testing.T) {
	router := newGenreRouter(newMockGenreService())

	req := httptest.NewRequest("GET", "/api/genres/424242", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body := decodeErrorBody(t, w); body.Message != "Genre not found" {
		t.Errorf("message = %q, want Genre not found", body.Message)
	}
}

func TestGenreHandler_GetReturnsEmbeddedBooks(t *testing.T) {
	svc := newMockGenreService()
	router := newGenreRouter(svc)

	create := httptest.NewRequest("POST", "/api/genres", bytes.NewBufferString(`{"name":"History"}`))
	router.ServeHTTP(httptest.NewRecorder(), create)

	req := httptest.NewRequest("GET", "/api/genres/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if _, ok := body["books"]; !ok {
		t.Error("Genre response must embed a books array")
	}
}

func TestGenreHandler_UpdateMissingReturns404(t *testing.T) {
	router := newGenreRouter(newMockGenreService())

	req := httptest.NewRequest("PUT", "/api/genres/424242", bytes.NewBufferString(`{"name":"X"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGenreHandler_DeleteReturnsConfirmation(t *testing.T) {
	svc := newMockGenreService()
	router := newGenreRouter(svc)

	create := httptest.NewRequest("POST", "/api/genres", bytes.NewBufferString(`{"name":"Children"}`))
	router.ServeHTTP(httptest.NewRecorder(), create)

	req := httptest.NewRequest("DELETE", "/api/genres/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Message != "Genre deleted successfully" {
		t.Errorf("message = %q, want Genre deleted successfully", resp.Message)
	}
}
