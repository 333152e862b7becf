package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"moviecatalog/errs"
	"moviecatalog/movie"

	"github.com/labstack/echo/v4"
)

var errInvalidGenres = errors.New("genres must be a list of strings or a comma separated string")

type CreateMovieRequest struct {
	Title       string    `json:"title" validate:"required,notblank,max=255"`
	Year        *int      `json:"year"`
	Poster      *string   `json:"poster" validate:"omitempty,max=500"`
	MovieLink   *string   `json:"movie_link" validate:"omitempty,max=500"`
	Description *string   `json:"description"`
	Genres      GenreList `json:"genres"`
}

func (r CreateMovieRequest) ToDraft() movie.Draft {
	return movie.Draft{
		Title:       r.Title,
		Year:        r.Year,
		Poster:      r.Poster,
		MovieLink:   r.MovieLink,
		Description: r.Description,
		Genres:      []string(r.Genres),
	}
}

// GenreList accepts either a JSON array of strings or a single comma
// separated string.
type GenreList []string

func (g *GenreList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*g = list
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*g = movie.SplitGenres(s)
		return nil
	}

	return errInvalidGenres
}

// bindStrict decodes a JSON body and rejects fields the request type does not declare.
func bindStrict(c echo.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.Errorf(errs.EINVALID, "request body is empty")
		}
		return errs.Errorf(errs.EINVALID, "invalid request body: %v", err)
	}
	// anything but whitespace after the object, a stray "}" included
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errs.Errorf(errs.EINVALID, "invalid request body: trailing data")
	}
	return nil
}
