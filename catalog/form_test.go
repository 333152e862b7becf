package catalog_test

import (
	"context"
	"errors"
	"moviecatalog/catalog"
	"moviecatalog/movie"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminForm_Draft(t *testing.T) {
	form := catalog.AdminForm{
		Title:       " Dune ",
		Year:        "2021",
		Poster:      "",
		MovieLink:   "https://watch.example.com/dune",
		Description: "  ",
		Genres:      "sci-fi, drama,, ",
	}

	d := form.Draft()

	assert.Equal(t, " Dune ", d.Title)
	require.NotNil(t, d.Year)
	assert.Equal(t, 2021, *d.Year)
	assert.Nil(t, d.Poster)
	assert.Nil(t, d.Description)
	assert.Equal(t, "https://watch.example.com/dune", *d.MovieLink)
	assert.Equal(t, []string{"sci-fi", "drama"}, d.Genres)

	form.Year = "soon"
	assert.Nil(t, form.Draft().Year)
}

func TestAdminForm_Submit(t *testing.T) {
	t.Run("should clear form and reload on success", func(t *testing.T) {
		svc := new(MockCatalogService)
		form := &catalog.AdminForm{Title: "Dune", Genres: "sci-fi, drama"}
		draft := form.Draft()
		created := movie.Movie{ID: 4, Title: "Dune", Genres: []string{"sci-fi", "drama"}}
		svc.On("CreateMovie", mock.Anything, draft).Return(created, nil).Once()
		svc.On("ListMovies", mock.Anything).Return([]movie.Movie{created}, nil).Once()
		c := catalog.NewCollection()

		got, err := form.Submit(context.Background(), svc, c)

		require.NoError(t, err)
		assert.Equal(t, created, got)
		assert.Equal(t, catalog.AdminForm{}, *form)
		assert.Len(t, c.Movies(), 1)
		svc.AssertExpectations(t)
	})

	t.Run("should keep form intact on failure", func(t *testing.T) {
		svc := new(MockCatalogService)
		form := &catalog.AdminForm{Title: "  ", Year: "1999"}
		svc.On("CreateMovie", mock.Anything, mock.Anything).
			Return(movie.Movie{}, &catalog.APIError{Status: http.StatusBadRequest, Message: "title is required"}).Once()

		_, err := form.Submit(context.Background(), svc, catalog.NewCollection())

		assert.Error(t, err)
		assert.Equal(t, catalog.AdminForm{Title: "  ", Year: "1999"}, *form)
		svc.AssertNotCalled(t, "ListMovies", mock.Anything)
	})
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "", catalog.ErrorText(nil))
	assert.Equal(t, "Failed to add movie: title is required",
		catalog.ErrorText(&catalog.APIError{Status: 400, Message: "title is required"}))
	assert.Equal(t, "Failed to add movie: HTTP 502",
		catalog.ErrorText(&catalog.APIError{Status: 502}))
	assert.Equal(t, "Failed to add movie: boom (Check server console for details)",
		catalog.ErrorText(&catalog.APIError{Status: 500, Message: "boom", Hint: "Check server console for details"}))
	assert.Equal(t, "Failed to add movie: dial tcp: refused", catalog.ErrorText(errors.New("dial tcp: refused")))
}
