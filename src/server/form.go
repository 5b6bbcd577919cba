package server

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"audio-briefing/src/briefing"
	"audio-briefing/src/core/domain"
	"audio-briefing/src/render"
)

// pageHandler handles GET requests for the HTML page of the current step
func (s *Server) pageHandler(c echo.Context) error {
	sess := s.session(c)
	p, locale := s.printer(c)
	view := render.Build(s.def, sess.Snapshot(), p, s.render)

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return render.Page(view, locale).Render(c.Request().Context(), c.Response())
}

// formHandler handles the HTML form post: store the step's answers, then run the action
func (s *Server) formHandler(c echo.Context) error {
	sess := s.session(c)
	form, err := c.FormParams()
	if err != nil {
		return c.String(http.StatusBadRequest, "invalid form")
	}

	redirect := "/"
	if lang := c.QueryParam("lang"); lang != "" {
		redirect += "?lang=" + url.QueryEscape(lang)
	}

	// A form rendered for another step (an older tab, a double post) is ignored
	current := sess.Snapshot().Step
	if posted := form.Get("step"); posted != "" {
		if step, ok := domain.ParseStepID(posted); !ok || step != current {
			s.logger.Debug("stale form post ignored", "session_id", sess.ID, "posted", posted, "current", current)
			return c.Redirect(http.StatusSeeOther, redirect)
		}
	}

	action := form.Get("action")
	if action == "next" || action == "back" {
		values := formAnswers(s.def.Steps[current].Fields, form)
		if err := sess.SetAll(values); err != nil {
			s.logger.Warn("form answers rejected", "session_id", sess.ID, "error", err)
		}
	}

	switch action {
	case "next":
		err = sess.Advance(context.WithoutCancel(c.Request().Context()))
	case "back":
		err = sess.Retreat()
	case "retry":
		err = sess.Retry()
	case "restart":
		err = sess.Restart()
	default:
		return c.String(http.StatusBadRequest, "unknown action")
	}
	// A closed gate keeps the visitor on the same step without a message
	if err != nil && !errors.Is(err, briefing.ErrCannotAdvance) {
		s.logger.Debug("form action refused", "session_id", sess.ID, "action", action, "error", err)
	}

	return c.Redirect(http.StatusSeeOther, redirect)
}

// formAnswers reads the posted values of one step. Unchecked toggles are absent
// from a form post, so every toggle of the step is written. Number fields are
// stored as numbers when the text parses; blank or malformed text stays text.
func formAnswers(fields []domain.Field, form url.Values) map[domain.Key]briefing.Value {
	values := make(map[domain.Key]briefing.Value)
	for _, f := range fields {
		if f.Kind == domain.KindMulti {
			for _, o := range f.Options {
				key := domain.OptionKey(f.ID, o)
				v := form.Get(key.String())
				values[key] = briefing.FlagValue(v == "on" || v == "true")
			}
			continue
		}
		key := domain.FieldKey(f.ID)
		if _, ok := form[key.String()]; !ok {
			continue
		}
		raw := form.Get(key.String())
		if f.Kind == domain.KindNumber {
			if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
				values[key] = briefing.NumberValue(n)
				continue
			}
		}
		values[key] = briefing.TextValue(raw)
	}
	return values
}
