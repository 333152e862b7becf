package movie

import (
	"context"
	"errors"
	"strings"

	"moviecatalog/errs"
)

const (
	movieLinkHint = "Add the 'movie_link' column to your database: ALTER TABLE movies ADD COLUMN movie_link VARCHAR(500) NULL;"
	genericHint   = "Check server console for details"
)

type Service interface {
	ListMovies(ctx context.Context) ([]Movie, error)
	AddMovie(ctx context.Context, d Draft) (Movie, error)
	Health(ctx context.Context) (int, error)
}

type Repository interface {
	AllMovies(ctx context.Context) ([]Movie, error)
	CreateMovie(ctx context.Context, d Draft) (Movie, error)
	Ping(ctx context.Context) (int, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListMovies(ctx context.Context) ([]Movie, error) {
	movies, err := uc.r.AllMovies(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies, nil
}

func (uc *Usecase) AddMovie(ctx context.Context, d Draft) (Movie, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return Movie{}, err
	}

	created, err := uc.r.CreateMovie(ctx, d)
	if err != nil {
		e := storageError(err)
		if e.Code != errs.EINTERNAL {
			return Movie{}, e
		}
		if strings.Contains(e.Message, "movie_link") {
			return Movie{}, e.WithHint(movieLinkHint)
		}
		return Movie{}, e.WithHint(genericHint)
	}
	return created, nil
}

func (uc *Usecase) Health(ctx context.Context) (int, error) {
	ok, err := uc.r.Ping(ctx)
	if err != nil {
		return 0, storageError(err)
	}
	return ok, nil
}

// storageError keeps application errors raised by adapters and wraps
// everything else as an internal error carrying the raw driver text.
func storageError(err error) *errs.Error {
	var e *errs.Error
	if errors.As(err, &e) {
		return e
	}
	return errs.Wrap(errs.EINTERNAL, err)
}
