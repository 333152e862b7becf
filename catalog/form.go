package catalog

import (
	"context"
	"errors"
	"moviecatalog/movie"
	"strconv"
	"strings"
)

// AdminForm mirrors the create-movie form fields as typed by the user.
type AdminForm struct {
	Title       string
	Year        string
	Poster      string
	MovieLink   string
	Description string
	Genres      string
}

func (f AdminForm) Draft() movie.Draft {
	d := movie.Draft{
		Title:  f.Title,
		Genres: movie.ParseGenreField(f.Genres),
	}
	if y, err := strconv.Atoi(strings.TrimSpace(f.Year)); err == nil {
		d.Year = &y
	}
	d.Poster = optional(f.Poster)
	d.MovieLink = optional(f.MovieLink)
	d.Description = optional(f.Description)
	return d.Normalize()
}

// Submit creates the movie. On success the form is cleared and the
// collection reloaded; on failure the form keeps its values.
func (f *AdminForm) Submit(ctx context.Context, svc Service, c *Collection) (movie.Movie, error) {
	created, err := svc.CreateMovie(ctx, f.Draft())
	if err != nil {
		return movie.Movie{}, err
	}
	*f = AdminForm{}
	if c != nil {
		_ = c.Load(ctx, svc)
	}
	return created, nil
}

// ErrorText is the message shown to the user after a failed submit.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := "Failed to add movie: " + apiErr.Error()
		if apiErr.Hint != "" {
			msg += " (" + apiErr.Hint + ")"
		}
		return msg
	}
	return "Failed to add movie: " + err.Error()
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
