// Package sentry wraps sentry-go with a small builder used to report
// server errors and degraded storage with request scope attached.
package sentry

import (
	"fmt"
	"sync/atomic"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long callers wait for buffered events on exit.
var FlushTime = 2 * time.Second

var active atomic.Bool

type Options struct {
	DSN         string
	Environment string

	// Transport overrides the HTTP transport, mostly for tests.
	Transport sentrygo.Transport
}

// Init configures the global client once at start. Reporting stays off for
// local runs and when no DSN is configured.
func Init(opts Options) error {
	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              opts.DSN,
		Environment:      opts.Environment,
		AttachStacktrace: true,
		Transport:        opts.Transport,
	})
	if err != nil {
		return err
	}
	active.Store(opts.Environment != "local" && opts.DSN != "")
	return nil
}

// Enabled reports whether events are sent.
func Enabled() bool {
	return active.Load()
}

func Flush() {
	sentrygo.Flush(FlushTime)
}

type Sentry struct {
	context echo.Context
	error   error
	message string
	level   sentrygo.Level
	extras  map[string]interface{}
	tags    map[string]string
}

func WithContext(c echo.Context) *Sentry {
	return new(Sentry).WithContext(c)
}

func WithTags(tags map[string]string) *Sentry {
	return new(Sentry).WithTags(tags)
}

func (s *Sentry) WithContext(c echo.Context) *Sentry {
	s.context = c
	return s
}

func (s *Sentry) WithExtras(extras map[string]interface{}) *Sentry {
	s.extras = extras
	return s
}

func (s *Sentry) WithTags(tags map[string]string) *Sentry {
	s.tags = tags
	return s
}

func (s *Sentry) Warning(msg string) {
	s.message = msg
	s.level = sentrygo.LevelWarning
	s.sendMessage()
}

func (s *Sentry) Warningf(format string, args ...interface{}) {
	s.Warning(fmt.Sprintf(format, args...))
}

func (s *Sentry) Error(err error) {
	s.error = err
	s.level = sentrygo.LevelError
	s.sendError()
}

func Warning(msg string) { new(Sentry).Warning(msg) }

func (s *Sentry) sendMessage() {
	if !Enabled() {
		return
	}
	hub := s.getHub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		hub.CaptureMessage(s.message)
	})
}

func (s *Sentry) sendError() {
	if !Enabled() || s.error == nil {
		return
	}
	hub := s.getHub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		s.configScope(scope)
		hub.CaptureException(s.error)
	})
}

// getHub prefers the request hub installed by the echo middleware.
func (s *Sentry) getHub() *sentrygo.Hub {
	if s.context != nil {
		if hub := sentryecho.GetHubFromContext(s.context); hub != nil {
			return hub
		}
	}
	return sentrygo.CurrentHub()
}

func (s *Sentry) configScope(scope *sentrygo.Scope) {
	if s.level != "" {
		scope.SetLevel(s.level)
	}
	if len(s.extras) > 0 {
		scope.SetExtras(s.extras)
	}
	if len(s.tags) > 0 {
		scope.SetTags(s.tags)
	}
	if s.context != nil && s.context.Response().Writer != nil {
		if id := s.context.Response().Header().Get(echo.HeaderXRequestID); id != "" {
			scope.SetTag("request_id", id)
		}
	}
}
