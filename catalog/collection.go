package catalog

import (
	"context"
	"log/slog"
	"moviecatalog/movie"
)

// Lister is the read side of the catalog service.
type Lister interface {
	ListMovies(ctx context.Context) ([]movie.Movie, error)
}

// Creator is the write side of the catalog service.
type Creator interface {
	CreateMovie(ctx context.Context, d movie.Draft) (movie.Movie, error)
}

type Service interface {
	Lister
	Creator
}

// Collection holds the movies of one page render and the genres they use.
type Collection struct {
	movies []movie.Movie
	genres []string
}

func NewCollection() *Collection {
	return &Collection{movies: []movie.Movie{}, genres: []string{}}
}

// Load fetches the movie list once. A failed fetch is logged and leaves the
// collection empty.
func (c *Collection) Load(ctx context.Context, l Lister) error {
	movies, err := l.ListMovies(ctx)
	if err != nil {
		slog.Error("failed to load movies", "error", err)
		c.movies = []movie.Movie{}
		c.genres = []string{}
		return err
	}
	if movies == nil {
		movies = []movie.Movie{}
	}
	c.movies = movies
	c.genres = movie.DistinctGenres(movies)
	return nil
}

func (c *Collection) Movies() []movie.Movie {
	return c.movies
}

func (c *Collection) Genres() []string {
	return c.genres
}

func (c *Collection) Filter(token string) []movie.Movie {
	return movie.FilterByGenre(c.movies, token)
}
