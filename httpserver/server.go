package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"moviecatalog/errs"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/sentry"
	"net/http"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Config *config.Config

	MovieService movie.Service

	metrics *metrics
}

func New(options ...Options) (*Server, error) {
	s := Server{
		Router:       echo.New(),
		Addr:         ":5000",
		AllowOrigins: []string{"*"},
		Config:       config.Empty,
		metrics:      newMetrics(),
	}

	for _, fn := range options {
		if err := fn(&s); err != nil {
			return nil, err
		}
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")
	s.RegisterHealthRoutes(api)
	s.RegisterMovieRoutes(api)
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()

	return &s, nil
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	s.Router.Use(s.metrics.middleware())
	s.Router.Use(requestLogger())

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleError maps application errors to HTTP status codes. Client errors
// carry a message; server errors carry the error text and an optional hint.
func (s *Server) handleError(err error, c echo.Context) {
	// already handled further down the chain
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	resp := ErrorResponse{Error: "Internal server error"}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg := http.StatusText(code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		resp = errorResponse(code, msg, "")
	} else {
		switch errs.ErrorCode(err) {
		case errs.EINVALID:
			code = http.StatusBadRequest
		case errs.ENOTFOUND:
			code = http.StatusNotFound
		case errs.ECONFLICT:
			code = http.StatusConflict
		case errs.EUNAUTHORIZED:
			code = http.StatusUnauthorized
		case errs.ENOTIMPLEMENTED:
			code = http.StatusNotImplemented
		}
		var appErr *errs.Error
		if errors.As(err, &appErr) {
			resp = errorResponse(code, appErr.Message, appErr.Hint)
		}
	}

	if code >= http.StatusInternalServerError {
		slog.Error(err.Error(), "request_id", requestID(c), "path", c.Path())
		sentry.WithContext(c).WithExtras(map[string]interface{}{"path": c.Path()}).Error(err)
	}

	if err := c.JSON(code, resp); err != nil {
		c.Logger().Error(err)
	}
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	})
}
