package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/text/message"

	"audio-briefing/src/briefing"
	"audio-briefing/src/i18n"
	"audio-briefing/src/render"
	"audio-briefing/src/validation"
	"audio-briefing/src/workflows"
)

// SessionCookie names the cookie holding the visitor's session id
const SessionCookie = "briefing_session"

// Options wires the server to its session store and catalogs
type Options struct {
	Definition      workflows.Definition
	Store           *briefing.Store
	Bundle          *i18n.Bundle
	Locale          string
	TransitionDelay time.Duration
	Logger          *slog.Logger
}

// Server is the HTTP surface of the briefing questionnaire
type Server struct {
	echo      *echo.Echo
	def       workflows.Definition
	store     *briefing.Store
	bundle    *i18n.Bundle
	locale    string
	validator *validation.AnswerValidator
	render    render.Options
	logger    *slog.Logger
}

// New validates the definition and registers all routes
func New(opts Options) (*Server, error) {
	if opts.Store == nil || opts.Bundle == nil {
		return nil, errors.New("server: store and bundle are required")
	}
	if err := validation.ValidateDefinition(opts.Definition); err != nil {
		return nil, fmt.Errorf("invalid step graph: %w", err)
	}
	validator, err := validation.NewAnswerValidator(opts.Definition)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		echo:      echo.New(),
		def:       opts.Definition,
		store:     opts.Store,
		bundle:    opts.Bundle,
		locale:    opts.Locale,
		validator: validator,
		render:    render.Options{TransitionDelay: opts.TransitionDelay},
		logger:    logger,
	}
	s.echo.HideBanner = true

	// Middleware
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())

	// Routes
	s.echo.GET("/", s.pageHandler)
	s.echo.POST(render.FormAction, s.formHandler)
	s.echo.GET("/healthz", s.healthHandler)

	api := s.echo.Group("/api")
	api.GET("/steps", s.stepsHandler)
	api.GET("/briefing", s.viewHandler)
	api.PUT("/briefing/answers", s.answersHandler)
	api.POST("/briefing/advance", s.advanceHandler)
	api.POST("/briefing/back", s.backHandler)
	api.POST("/briefing/retry", s.retryHandler)
	api.POST("/briefing/restart", s.restartHandler)

	return s, nil
}

// Handler exposes the router, used by tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	s.logger.Info("server starting", "addr", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// session returns the visitor's session, creating one and setting the cookie when needed
func (s *Server) session(c echo.Context) *briefing.Session {
	id := ""
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		id = cookie.Value
	}
	sess, created := s.store.GetOrCreate(id)
	if created {
		c.SetCookie(&http.Cookie{
			Name:     SessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// printer picks the ?lang= locale when the catalog has it
func (s *Server) printer(c echo.Context) (*message.Printer, string) {
	locale := s.locale
	if lang := c.QueryParam("lang"); lang != "" && s.bundle.Has(lang, i18n.StepTitleKey(s.def.StartStep)) {
		locale = lang
	}
	return s.bundle.Printer(locale), locale
}

func (s *Server) view(c echo.Context, sess *briefing.Session) render.StepView {
	p, _ := s.printer(c)
	return render.Build(s.def, sess.Snapshot(), p, s.render)
}

// statusFor maps session errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, briefing.ErrUnknownKey), errors.Is(err, briefing.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, briefing.ErrCannotAdvance),
		errors.Is(err, briefing.ErrSending),
		errors.Is(err, briefing.ErrTerminal),
		errors.Is(err, briefing.ErrNotRetryable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{
		"error": err.Error(),
	})
}
