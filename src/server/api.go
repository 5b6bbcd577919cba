package server

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"audio-briefing/src/briefing"
	"audio-briefing/src/core/domain"
)

func (s *Server) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// viewHandler handles GET requests for the current step view
func (s *Server) viewHandler(c echo.Context) error {
	sess := s.session(c)
	return c.JSON(http.StatusOK, s.view(c, sess))
}

// answersHandler handles PUT requests that set answers, body {"key": value}
func (s *Server) answersHandler(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}
	body, err := s.validator.Validate(raw)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err)
	}

	values := make(map[domain.Key]briefing.Value, len(body))
	for k, v := range body {
		key, err := domain.ParseKey(k)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err)
		}
		value, err := briefing.ValueFromJSON(v)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err)
		}
		values[key] = value
	}

	sess := s.session(c)
	if err := sess.SetAll(values); err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(http.StatusOK, s.view(c, sess))
}

// advanceHandler handles POST requests to move forward or submit
func (s *Server) advanceHandler(c echo.Context) error {
	sess := s.session(c)
	// The submission outlives the request
	ctx := context.WithoutCancel(c.Request().Context())
	if err := sess.Advance(ctx); err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(http.StatusOK, s.view(c, sess))
}

func (s *Server) backHandler(c echo.Context) error {
	return s.navigate(c, (*briefing.Session).Retreat)
}

func (s *Server) retryHandler(c echo.Context) error {
	return s.navigate(c, (*briefing.Session).Retry)
}

func (s *Server) restartHandler(c echo.Context) error {
	return s.navigate(c, (*briefing.Session).Restart)
}

func (s *Server) navigate(c echo.Context, op func(*briefing.Session) error) error {
	sess := s.session(c)
	if err := op(sess); err != nil {
		return errorJSON(c, statusFor(err), err)
	}
	return c.JSON(http.StatusOK, s.view(c, sess))
}
