package movie

import (
	"strings"
	"time"

	"moviecatalog/errs"
)

var ErrTitleRequired = errs.Errorf(errs.EINVALID, "title is required")

// Movie is a catalog record as exposed to clients.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Year        *int      `json:"year"`
	Poster      *string   `json:"poster"`
	MovieLink   *string   `json:"movie_link"`
	Description *string   `json:"description"`
	Genres      []string  `json:"genres"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasGenre reports whether any of the movie's genres matches token,
// ignoring case and surrounding whitespace.
func (m Movie) HasGenre(token string) bool {
	token = strings.TrimSpace(token)
	for _, g := range m.Genres {
		if strings.EqualFold(strings.TrimSpace(g), token) {
			return true
		}
	}
	return false
}

// Draft is the payload used to create a movie.
type Draft struct {
	Title       string   `json:"title"`
	Year        *int     `json:"year,omitempty"`
	Poster      *string  `json:"poster,omitempty"`
	MovieLink   *string  `json:"movie_link,omitempty"`
	Description *string  `json:"description,omitempty"`
	Genres      []string `json:"genres"`
}

// Normalize turns empty optional values into nil and cleans the genre
// list so that it survives a join/split round trip. The title is stored
// as submitted; only Validate looks at its trimmed form.
func (d Draft) Normalize() Draft {
	if d.Year != nil && *d.Year == 0 {
		d.Year = nil
	}
	d.Poster = nullable(d.Poster)
	d.MovieLink = nullable(d.MovieLink)
	d.Description = nullable(d.Description)
	d.Genres = SplitGenres(JoinGenres(d.Genres))
	return d
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

func nullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
