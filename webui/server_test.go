// nolint: funlen
package webui_test

import (
	"context"
	"errors"
	"moviecatalog/catalog"
	"moviecatalog/movie"
	"moviecatalog/webui"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListMovies(ctx context.Context) ([]movie.Movie, error) {
	args := m.Called(ctx)
	movies, _ := args.Get(0).([]movie.Movie)
	return movies, args.Error(1)
}

func (m *MockCatalogService) CreateMovie(ctx context.Context, d movie.Draft) (movie.Movie, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func strPtr(s string) *string { return &s }

var movies = []movie.Movie{
	{ID: 2, Title: "Dune", MovieLink: strPtr("https://watch.example.com/dune"), Genres: []string{"Sci-Fi", "Drama"}},
	{ID: 1, Title: "Heat", Genres: []string{"Crime"}},
}

func mustCreateServer(t *testing.T, svc catalog.Service) *webui.Server {
	t.Helper()
	s, err := webui.New(":0", svc)
	require.NoError(t, err)
	return s
}

func get(s *webui.Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	t.Run("should list movies with genre links", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("ListMovies", mock.Anything).Return(movies, nil).Once()
		s := mustCreateServer(t, svc)

		rec := get(s, "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `<a href="https://watch.example.com/dune">Dune</a>`)
		assert.Contains(t, body, "Heat")
		assert.Contains(t, body, `href="/?genre=Sci-Fi"`)
	})

	t.Run("should filter by genre", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("ListMovies", mock.Anything).Return(movies, nil).Once()
		s := mustCreateServer(t, svc)

		rec := get(s, "/?genre=crime")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Heat")
		assert.NotContains(t, body, "watch.example.com/dune")
	})

	t.Run("should render empty view when service fails", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("ListMovies", mock.Anything).Return(nil, errors.New("connection refused")).Once()
		s := mustCreateServer(t, svc)

		rec := get(s, "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "No movies found.")
	})
}

func TestAdmin(t *testing.T) {
	t.Run("should show form and movie count", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("ListMovies", mock.Anything).Return(movies, nil).Once()
		s := mustCreateServer(t, svc)

		rec := get(s, "/admin")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Movies (2)")
		assert.Contains(t, rec.Body.String(), `<form method="post" action="/admin">`)
	})

	t.Run("should create movie and clear form", func(t *testing.T) {
		svc := new(MockCatalogService)
		year := 2021
		draft := movie.Draft{Title: "Arrival", Year: &year, Genres: []string{"Sci-Fi", "Drama"}}
		created := movie.Movie{ID: 3, Title: "Arrival", Year: &year, Genres: draft.Genres}
		svc.On("CreateMovie", mock.Anything, draft).Return(created, nil).Once()
		svc.On("ListMovies", mock.Anything).Return(append([]movie.Movie{created}, movies...), nil).Once()
		s := mustCreateServer(t, svc)

		rec := postForm(s, url.Values{"title": {"Arrival"}, "year": {"2021"}, "genres": {"Sci-Fi, Drama"}})

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Added Arrival")
		assert.Contains(t, body, "Movies (3)")
		assert.Contains(t, body, `name="title" value=""`)
		svc.AssertExpectations(t)
	})

	t.Run("should keep form values and show server message on failure", func(t *testing.T) {
		svc := new(MockCatalogService)
		svc.On("CreateMovie", mock.Anything, mock.Anything).
			Return(movie.Movie{}, &catalog.APIError{Status: http.StatusBadRequest, Message: "title is required"}).Once()
		svc.On("ListMovies", mock.Anything).Return(movies, nil).Once()
		s := mustCreateServer(t, svc)

		rec := postForm(s, url.Values{"title": {" "}, "genres": {"Noir"}})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Failed to add movie: title is required")
		assert.Contains(t, body, `name="genres" value="Noir"`)
	})
}

func TestSignin(t *testing.T) {
	s := mustCreateServer(t, new(MockCatalogService))

	rec := get(s, "/signin")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign-in is not available.")
}

func postForm(s *webui.Server, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}
