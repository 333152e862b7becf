package httpserver

import (
	"moviecatalog/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes(g *echo.Group) {
	g.GET("/health", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Round-trips a trivial query against storage
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 500 {object} HealthResponse
// @Router /api/health [get]
func (s *Server) healthCheck(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	ok, err := s.MovieService.Health(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, HealthResponse{
			OK:    false,
			Error: errs.ErrorMessage(err),
		})
	}

	return c.JSON(http.StatusOK, HealthResponse{OK: true, DB: ok})
}
