package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"moviecatalog/movie"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
)

// MovieModel represents the database model for movies.
// MovieLink stays nil when the column is missing on legacy schemas.
type MovieModel struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	Year        *int      `gorm:""`
	Poster      *string   `gorm:""`
	MovieLink   *string   `gorm:"column:movie_link"`
	Description *string   `gorm:""`
	Genres      *string   `gorm:""`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

func (m MovieModel) toMovie() movie.Movie {
	genres := ""
	if m.Genres != nil {
		genres = *m.Genres
	}
	return movie.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Year:        m.Year,
		Poster:      m.Poster,
		MovieLink:   m.MovieLink,
		Description: m.Description,
		Genres:      movie.SplitGenres(genres),
		CreatedAt:   m.CreatedAt,
	}
}

// MovieRepository implements movie.Repository on top of PostgreSQL.
type MovieRepository struct {
	db *gorm.DB

	// hasMovieLink is set by DetectSchema; it defaults to true.
	hasMovieLink atomic.Bool
	detected     atomic.Bool
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	r := &MovieRepository{db: db}
	r.hasMovieLink.Store(true)
	return r
}

// DetectSchema checks once whether the movies table carries the movie_link
// column. Inserts on a legacy schema then leave the link out.
func (r *MovieRepository) DetectSchema(ctx context.Context) (bool, error) {
	const sql = `
SELECT COUNT(*)
FROM information_schema.columns
WHERE table_schema = CURRENT_SCHEMA() AND table_name = ? AND column_name = ?`

	var count int64
	if err := r.db.WithContext(ctx).Raw(sql, MovieModel{}.TableName(), "movie_link").Scan(&count).Error; err != nil {
		return false, fmt.Errorf("detect movies schema: %w", err)
	}

	has := count > 0
	r.hasMovieLink.Store(has)
	r.detected.Store(true)
	if !has {
		slog.Warn("movies.movie_link column not found, links will not be stored")
	}
	return has, nil
}

// Detected reports whether a schema detection has succeeded.
func (r *MovieRepository) Detected() bool {
	return r.detected.Load()
}

// HasMovieLink reports the result of the last schema detection.
func (r *MovieRepository) HasMovieLink() bool {
	return r.hasMovieLink.Load()
}

func (r *MovieRepository) AllMovies(ctx context.Context) ([]movie.Movie, error) {
	const sql = `SELECT * FROM movies ORDER BY created_at DESC, id DESC`

	var models []MovieModel
	if err := r.db.WithContext(ctx).Raw(sql).Scan(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = model.toMovie()
	}
	return movies, nil
}

func (r *MovieRepository) CreateMovie(ctx context.Context, d movie.Draft) (movie.Movie, error) {
	// storage may have been down at startup
	if !r.Detected() {
		if _, err := r.DetectSchema(ctx); err != nil {
			slog.Warn("schema detection failed, assuming movie_link exists", "error", err)
		}
	}

	db := r.db.WithContext(ctx)
	genres := movie.JoinGenres(d.Genres)

	var id int64
	if r.HasMovieLink() {
		const sql = `
INSERT INTO movies (title, year, poster, movie_link, description, genres)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`
		if err := db.Raw(sql, d.Title, d.Year, d.Poster, d.MovieLink, d.Description, genres).Scan(&id).Error; err != nil {
			return movie.Movie{}, err
		}
	} else {
		if d.MovieLink != nil {
			slog.Info("movie_link column not found, inserting without movie_link", "title", d.Title)
		}
		const sql = `
INSERT INTO movies (title, year, poster, description, genres)
VALUES (?, ?, ?, ?, ?)
RETURNING id`
		if err := db.Raw(sql, d.Title, d.Year, d.Poster, d.Description, genres).Scan(&id).Error; err != nil {
			return movie.Movie{}, err
		}
	}

	return r.movieByID(ctx, id)
}

func (r *MovieRepository) movieByID(ctx context.Context, id int64) (movie.Movie, error) {
	const sql = `SELECT * FROM movies WHERE id = ?`

	var model MovieModel
	result := r.db.WithContext(ctx).Raw(sql, id).Scan(&model)
	if result.Error != nil {
		return movie.Movie{}, result.Error
	}
	if result.RowsAffected == 0 {
		return movie.Movie{}, fmt.Errorf("movie %d not found after insert", id)
	}
	return model.toMovie(), nil
}

// Ping issues a trivial round trip and returns its scalar result.
func (r *MovieRepository) Ping(ctx context.Context) (int, error) {
	var ok int
	if err := r.db.WithContext(ctx).Raw("SELECT 1 AS ok").Scan(&ok).Error; err != nil {
		return 0, err
	}
	return ok, nil
}
