package webui

import (
	"context"
	"log/slog"
	"moviecatalog/catalog"
	"moviecatalog/movie"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	Router  *echo.Echo
	Addr    string
	Catalog catalog.Service
}

type indexPage struct {
	Genre  string
	Genres []string
	Movies []movie.Movie
}

type adminPage struct {
	Form   catalog.AdminForm
	Error  string
	Notice string
	Movies []movie.Movie
}

func New(addr string, svc catalog.Service) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Router:  echo.New(),
		Addr:    addr,
		Catalog: svc,
	}
	s.Router.HideBanner = true
	s.Router.Renderer = renderer

	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	s.Router.GET("/", s.handleIndex)
	s.Router.GET("/admin", s.handleAdmin)
	s.Router.POST("/admin", s.handleAdminSubmit)
	s.Router.GET("/signin", s.handleSignin)

	return s, nil
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) handleIndex(c echo.Context) error {
	collection := catalog.NewCollection()
	_ = collection.Load(c.Request().Context(), s.Catalog)

	genre := c.QueryParam("genre")
	return c.Render(http.StatusOK, "index", indexPage{
		Genre:  genre,
		Genres: collection.Genres(),
		Movies: collection.Filter(genre),
	})
}

func (s *Server) handleAdmin(c echo.Context) error {
	collection := catalog.NewCollection()
	_ = collection.Load(c.Request().Context(), s.Catalog)

	return c.Render(http.StatusOK, "admin", adminPage{Movies: collection.Movies()})
}

func (s *Server) handleAdminSubmit(c echo.Context) error {
	form := catalog.AdminForm{
		Title:       c.FormValue("title"),
		Year:        c.FormValue("year"),
		Poster:      c.FormValue("poster"),
		MovieLink:   c.FormValue("movie_link"),
		Description: c.FormValue("description"),
		Genres:      c.FormValue("genres"),
	}

	ctx := c.Request().Context()
	collection := catalog.NewCollection()
	created, err := form.Submit(ctx, s.Catalog, collection)
	if err != nil {
		_ = collection.Load(ctx, s.Catalog)
		return c.Render(http.StatusUnprocessableEntity, "admin", adminPage{
			Form:   form,
			Error:  catalog.ErrorText(err),
			Movies: collection.Movies(),
		})
	}

	return c.Render(http.StatusOK, "admin", adminPage{
		Form:   form,
		Notice: "Added " + created.Title,
		Movies: collection.Movies(),
	})
}

func (s *Server) handleSignin(c echo.Context) error {
	return c.Render(http.StatusOK, "signin", nil)
}
