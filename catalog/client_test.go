// nolint: funlen
package catalog_test

import (
	"context"
	"encoding/json"
	"moviecatalog/catalog"
	"moviecatalog/movie"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListMovies(t *testing.T) {
	t.Run("should decode movies", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/movies", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":2,"title":"Dune","year":2021,"movie_link":null,"genres":["sci-fi","drama"]}]`))
		}))
		defer srv.Close()

		movies, err := catalog.NewClient(srv.URL + "/api/").ListMovies(context.Background())

		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Dune", movies[0].Title)
		assert.Equal(t, 2021, *movies[0].Year)
		assert.Nil(t, movies[0].MovieLink)
		assert.Equal(t, []string{"sci-fi", "drama"}, movies[0].Genres)
	})

	t.Run("should return APIError with status when body has no message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := catalog.NewClient(srv.URL).ListMovies(context.Background())

		var apiErr *catalog.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
		assert.Equal(t, "HTTP 502", apiErr.Error())
	})
}

func TestClient_CreateMovie(t *testing.T) {
	t.Run("should post draft and decode created movie", func(t *testing.T) {
		year := 2021
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var d movie.Draft
			require.NoError(t, json.NewDecoder(r.Body).Decode(&d))
			assert.Equal(t, "Dune", d.Title)
			assert.Equal(t, []string{"sci-fi", "drama"}, d.Genres)

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":9,"title":"Dune","year":2021,"genres":["sci-fi","drama"]}`))
		}))
		defer srv.Close()

		created, err := catalog.NewClient(srv.URL).CreateMovie(context.Background(), movie.Draft{
			Title:  "Dune",
			Year:   &year,
			Genres: []string{"sci-fi", "drama"},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(9), created.ID)
	})

	t.Run("should surface server message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"title is required"}`))
		}))
		defer srv.Close()

		_, err := catalog.NewClient(srv.URL).CreateMovie(context.Background(), movie.Draft{})

		assert.EqualError(t, err, "title is required")
	})

	t.Run("should surface server error and hint on 500", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"connection refused","hint":"Check server console for details"}`))
		}))
		defer srv.Close()

		_, err := catalog.NewClient(srv.URL).CreateMovie(context.Background(), movie.Draft{Title: "Dune"})

		var apiErr *catalog.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "connection refused", apiErr.Message)
		assert.Equal(t, "Check server console for details", apiErr.Hint)
	})
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true,"db":1}`))
	}))
	defer srv.Close()

	ok, err := catalog.NewClient(srv.URL).Health(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
}
