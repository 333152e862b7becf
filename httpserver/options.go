package httpserver

import (
	"fmt"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
)

type Options func(s *Server) error

func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		s.Config = cfg
		s.AllowOrigins = cfg.Origins()
		if cfg.Port != 0 {
			s.Addr = fmt.Sprintf(":%d", cfg.Port)
		}
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}

// WithAllowOrigins overrides the CORS origins taken from the config.
func WithAllowOrigins(origins []string) Options {
	return func(s *Server) error {
		s.AllowOrigins = origins
		return nil
	}
}
