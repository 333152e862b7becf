package httpserver_test

import (
	"encoding/json"
	"errors"
	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/postgres"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthcheck(t *testing.T) {
	t.Run("should report ok when storage answers", func(t *testing.T) {
		svc := new(MockMovieService)
		svc.On("Health", mock.Anything).Return(1, nil).Once()
		server := mustCreateServer(t, httpserver.WithMovieService(svc))

		rec := makeRequest(server, http.MethodGet, "/api/health", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true,"db":1}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("should report failure when storage is unreachable", func(t *testing.T) {
		svc := new(MockMovieService)
		svc.On("Health", mock.Anything).Return(0, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")).Once()
		server := mustCreateServer(t, httpserver.WithMovieService(svc))

		rec := makeRequest(server, http.MethodGet, "/api/health", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"ok":false,"error":"Internal error."}`, rec.Body.String())
	})

	t.Run("should return 501 without a movie service", func(t *testing.T) {
		server := mustCreateServer(t)

		rec := makeRequest(server, http.MethodGet, "/api/health", nil)

		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})
}

func TestHealthcheck_DatabaseDown(t *testing.T) {
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   "catalog",
		DBUser:   "catalog",
		Password: "catalog",
		Host:     "127.0.0.1",
		Port:     "1",
	})
	require.NoError(t, err)
	server := mustCreateServer(t, httpserver.WithMovieService(movie.NewUsecase(postgres.NewMovieRepository(db))))

	rec := makeRequest(server, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body httpserver.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.OK)
	assert.NotEmpty(t, body.Error)
}
