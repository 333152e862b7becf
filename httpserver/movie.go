package httpserver

import (
	"moviecatalog/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.POST("/movies", s.handleCreateMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description All movies, newest first, with genres expanded to a list
// @Tags movies
// @Produce json
// @Success 200 {array} movie.Movie
// @Failure 500 {object} ErrorResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	movies, err := s.MovieService.ListMovies(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, movies)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Add a movie; genres may be a list or a comma separated string
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body CreateMovieRequest true "Movie"
// @Success 201 {object} movie.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req CreateMovieRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.MovieService.AddMovie(c.Request().Context(), req.ToDraft())
	if err != nil {
		return err
	}
	s.metrics.moviesCreated.Inc()

	return c.JSON(http.StatusCreated, created)
}
