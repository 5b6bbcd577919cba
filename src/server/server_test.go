package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"audio-briefing/src/briefing"
	"audio-briefing/src/core/domain"
	"audio-briefing/src/i18n"
	"audio-briefing/src/render"
	"audio-briefing/src/workflows"
)

type stubSubmitter struct {
	err   error
	calls int
}

func (s *stubSubmitter) Submit(ctx context.Context, sessionID string, answers domain.AnswerReader) error {
	s.calls++
	return s.err
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newClient(t *testing.T, sub briefing.Submitter) *client {
	t.Helper()
	def := workflows.BuildBriefingDefinition()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New(Options{
		Definition:      def,
		Store:           briefing.NewStore(def, sub, briefing.WithLogger(logger)),
		Bundle:          i18n.Default(),
		Locale:          "nl",
		TransitionDelay: 300 * time.Millisecond,
		Logger:          logger,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return &client{t: t, handler: srv.Handler()}
}

func (c *client) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) json(method, path, body string, wantStatus int) render.StepView {
	c.t.Helper()
	rec := c.do(method, path, "application/json", body)
	if rec.Code != wantStatus {
		c.t.Fatalf("%s %s = %d, want %d: %s", method, path, rec.Code, wantStatus, rec.Body.String())
	}
	var view render.StepView
	if wantStatus == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
			c.t.Fatalf("decode view: %v", err)
		}
	}
	return view
}

func TestAPIFlowToSuccess(t *testing.T) {
	sub := &stubSubmitter{}
	c := newClient(t, sub)

	view := c.json(http.MethodGet, "/api/briefing", "", http.StatusOK)
	if view.Step != domain.StepService || view.CanAdvance || view.TransitionDelayMS != 300 {
		t.Fatalf("initial view = %+v", view)
	}
	if c.cookie == nil {
		t.Fatal("session cookie not set")
	}

	c.json(http.MethodPost, "/api/briefing/advance", "", http.StatusConflict)

	steps := []struct {
		body string
		want domain.StepID
	}{
		{`{"service":"advice"}`, domain.StepAdviceWho},
		{`{"advice-who":"band"}`, domain.StepAdviceGoal},
		{`{"advice-goal":"purchase"}`, domain.StepAdviceUsage},
		{`{"advice-usage":"live"}`, domain.StepPurchaseDetails},
		{`{"purchase-details":"Budget 2k"}`, domain.StepPurchaseType},
		{`{"purchase-type":"buy"}`, domain.StepContact},
	}
	for _, step := range steps {
		view = c.json(http.MethodPut, "/api/briefing/answers", step.body, http.StatusOK)
		if !view.CanAdvance {
			t.Fatalf("gate closed after %s", step.body)
		}
		view = c.json(http.MethodPost, "/api/briefing/advance", "", http.StatusOK)
		if view.Step != step.want {
			t.Fatalf("step = %q, want %q", view.Step, step.want)
		}
	}
	if view.Progress != 95 || !view.Final {
		t.Fatalf("contact view = %+v", view)
	}

	c.json(http.MethodPut, "/api/briefing/answers",
		`{"contact-name":"Ann","contact-email":"ann@example.com","contact-phone":"+31 6 12345678","contact-pref":"whatsapp"}`, http.StatusOK)
	view = c.json(http.MethodPost, "/api/briefing/advance", "", http.StatusOK)
	if view.Step != domain.StepSuccess || view.Progress != 100 {
		t.Fatalf("after submit = %+v", view)
	}
	if sub.calls != 1 {
		t.Fatalf("submit calls = %d", sub.calls)
	}

	c.json(http.MethodPost, "/api/briefing/back", "", http.StatusConflict)
	view = c.json(http.MethodPost, "/api/briefing/restart", "", http.StatusOK)
	if view.Step != domain.StepService || len(view.History) != 1 {
		t.Fatalf("after restart = %+v", view)
	}
}

func TestAPISubmitFailureAndRetry(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("relay down")}
	c := newClient(t, sub)

	c.json(http.MethodPut, "/api/briefing/answers", `{"service":"other"}`, http.StatusOK)
	c.json(http.MethodPost, "/api/briefing/advance", "", http.StatusOK)
	c.json(http.MethodPut, "/api/briefing/answers", `{"other-description":"Sound for a wedding"}`, http.StatusOK)
	c.json(http.MethodPost, "/api/briefing/advance", "", http.StatusOK)
	c.json(http.MethodPut, "/api/briefing/answers",
		`{"contact-name":"Ann","contact-email":"ann@example.com","contact-phone":"0612345678"}`, http.StatusOK)

	view := c.json(http.MethodPost, "/api/briefing/advance", "", http.StatusOK)
	if view.Step != domain.StepError || view.Body == "" {
		t.Fatalf("after failed submit = %+v", view)
	}

	view = c.json(http.MethodPost, "/api/briefing/retry", "", http.StatusOK)
	if view.Step != domain.StepContact || !view.CanAdvance {
		t.Fatalf("after retry = %+v", view)
	}
	c.json(http.MethodPost, "/api/briefing/retry", "", http.StatusConflict)
}

func TestAPIRejectsBadAnswers(t *testing.T) {
	c := newClient(t, &stubSubmitter{})
	for _, body := range []string{
		`{"nope":"x"}`,
		`{"service":"karaoke"}`,
		`{"instruments.drums":"yes"}`,
		`not json`,
	} {
		rec := c.do(http.MethodPut, "/api/briefing/answers", "application/json", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("PUT %s = %d", body, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp["error"] == "" {
			t.Fatalf("error body = %s", rec.Body.String())
		}
	}
}

func TestAPIBackAtStartIsNoOp(t *testing.T) {
	c := newClient(t, &stubSubmitter{})
	view := c.json(http.MethodPost, "/api/briefing/back", "", http.StatusOK)
	if view.Step != domain.StepService || len(view.History) != 1 {
		t.Fatalf("view = %+v", view)
	}
}

func TestHTMLFormFlow(t *testing.T) {
	c := newClient(t, &stubSubmitter{})

	rec := c.do(http.MethodGet, "/", "", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("GET / = %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), `data-step="service"`) {
		t.Fatalf("page = %s", rec.Body.String())
	}

	form := url.Values{"service": {"live"}, "action": {"next"}}
	rec = c.do(http.MethodPost, "/briefing", "application/x-www-form-urlencoded", form.Encode())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /briefing = %d", rec.Code)
	}
	view := c.json(http.MethodGet, "/api/briefing", "", http.StatusOK)
	if view.Step != domain.StepLiveType {
		t.Fatalf("step = %q", view.Step)
	}

	form = url.Values{"action": {"back"}}
	c.do(http.MethodPost, "/briefing", "application/x-www-form-urlencoded", form.Encode())
	view = c.json(http.MethodGet, "/api/briefing", "", http.StatusOK)
	if view.Step != domain.StepService {
		t.Fatalf("step after back = %q", view.Step)
	}

	rec = c.do(http.MethodPost, "/briefing", "application/x-www-form-urlencoded", url.Values{"action": {"dance"}}.Encode())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown action = %d", rec.Code)
	}
}

func TestFormAnswersWritesEveryToggle(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	values := formAnswers(def.Steps[domain.StepInstruments].Fields, url.Values{"instruments.drums": {"on"}})
	if len(values) != 6 {
		t.Fatalf("values = %d", len(values))
	}
	if !values[domain.OptionKey(domain.FieldInstruments, "drums")].Flag {
		t.Fatal("drums not on")
	}
	if values[domain.OptionKey(domain.FieldInstruments, "bass")].Flag {
		t.Fatal("bass on")
	}
}

func TestStepsCatalog(t *testing.T) {
	c := newClient(t, &stubSubmitter{})
	rec := c.do(http.MethodGet, "/api/steps?lang=en", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/steps = %d", rec.Code)
	}
	var resp GetStepsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Steps) != len(domain.AllSteps()) || resp.StartStep != domain.StepService {
		t.Fatalf("steps = %d start = %q", len(resp.Steps), resp.StartStep)
	}
	if len(resp.Activities) != 2 || resp.Activities[0].RetryPolicy.MaximumAttempts != 1 {
		t.Fatalf("activities = %+v", resp.Activities)
	}
	if resp.ViewSchema == nil {
		t.Fatal("view schema missing")
	}
	for _, step := range resp.Steps {
		if step.ID == domain.StepService && step.Schema == nil {
			t.Fatal("service step schema missing")
		}
	}
}

func TestHealthz(t *testing.T) {
	c := newClient(t, &stubSubmitter{})
	rec := c.do(http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("healthz = %d %s", rec.Code, rec.Body.String())
	}
}

func TestFormAnswersStoresNumbers(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	fields := def.Steps[domain.StepPracticalDetails].Fields
	key := domain.FieldKey(domain.FieldExpectedVisitors)

	values := formAnswers(fields, url.Values{key.String(): {" 250 "}})
	if v := values[key]; v.Kind != briefing.ValueNumber || v.Number != 250 {
		t.Fatalf("visitors = %+v", v)
	}
	for _, raw := range []string{"", "veel", "NaN"} {
		values = formAnswers(fields, url.Values{key.String(): {raw}})
		if v := values[key]; v.Kind != briefing.ValueText || v.Text != raw {
			t.Fatalf("visitors from %q = %+v", raw, v)
		}
	}
}

func TestHTMLFormIgnoresStaleStep(t *testing.T) {
	c := newClient(t, &stubSubmitter{})
	c.do(http.MethodGet, "/", "", "")

	form := url.Values{"step": {"contact"}, "service": {"studio"}, "action": {"next"}}
	rec := c.do(http.MethodPost, "/briefing", "application/x-www-form-urlencoded", form.Encode())
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /briefing = %d", rec.Code)
	}
	view := c.json(http.MethodGet, "/api/briefing", "", http.StatusOK)
	if view.Step != domain.StepService || view.CanAdvance {
		t.Fatalf("stale post applied: %+v", view)
	}

	form.Set("step", "service")
	c.do(http.MethodPost, "/briefing", "application/x-www-form-urlencoded", form.Encode())
	view = c.json(http.MethodGet, "/api/briefing", "", http.StatusOK)
	if view.Step != domain.StepStudioType {
		t.Fatalf("step = %q", view.Step)
	}
}
