package render

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"audio-briefing/src/briefing"
	"audio-briefing/src/core/domain"
	"audio-briefing/src/i18n"
	"audio-briefing/src/workflows"
)

type okSubmitter struct{}

func (okSubmitter) Submit(ctx context.Context, sessionID string, answers domain.AnswerReader) error {
	return nil
}

func newSession(t *testing.T) *briefing.Session {
	t.Helper()
	store := briefing.NewStore(workflows.BuildBriefingDefinition(), okSubmitter{},
		briefing.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return store.Create()
}

func TestProgress(t *testing.T) {
	tests := []struct {
		step domain.StepID
		n    int
		want int
	}{
		{domain.StepService, 1, 18},
		{domain.StepHireRole, 3, 34},
		{domain.StepPracticalDetails, 10, 90},
		{domain.StepContact, 4, 95},
		{domain.StepSuccess, 5, 100},
	}
	for _, tt := range tests {
		if got := Progress(tt.step, tt.n); got != tt.want {
			t.Fatalf("Progress(%s, %d) = %d, want %d", tt.step, tt.n, got, tt.want)
		}
	}
}

func TestBuildServiceStep(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	s := newSession(t)
	p := i18n.Default().Printer("nl")

	view := Build(def, s.Snapshot(), p, Options{TransitionDelay: 300 * time.Millisecond})
	if view.Step != domain.StepService || view.CanAdvance || view.CanRetreat {
		t.Fatalf("view = %+v", view)
	}
	if view.TransitionDelayMS != 300 {
		t.Fatalf("delay = %d", view.TransitionDelayMS)
	}
	if len(view.Widgets) != 1 || len(view.Widgets[0].Options) != 5 {
		t.Fatalf("widgets = %+v", view.Widgets)
	}

	if err := s.Set(domain.FieldKey(domain.FieldService), briefing.TextValue("advice")); err != nil {
		t.Fatalf("set: %v", err)
	}
	view = Build(def, s.Snapshot(), p, Options{})
	if !view.CanAdvance {
		t.Fatal("gate closed after choosing a service")
	}
	for _, o := range view.Widgets[0].Options {
		if o.Selected != (o.Code == "advice") {
			t.Fatalf("option %s selected = %v", o.Code, o.Selected)
		}
	}
}

func TestBuildMultiWidgetKeys(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	s := newSession(t)
	for _, step := range []struct {
		key domain.Key
		val string
	}{
		{domain.FieldKey(domain.FieldService), "live"},
		{domain.FieldKey(domain.FieldLiveType), "organize"},
		{domain.FieldKey(domain.FieldEventType), "corporate"},
		{domain.FieldKey(domain.FieldLiveMusic), "no"},
	} {
		if err := s.Set(step.key, briefing.TextValue(step.val)); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := s.Advance(context.Background()); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if err := s.Set(domain.OptionKey(domain.FieldEquipment, "monitors"), briefing.FlagValue(true)); err != nil {
		t.Fatalf("set: %v", err)
	}

	view := Build(def, s.Snapshot(), i18n.Default().Printer("en"), Options{})
	if view.Step != domain.StepLocationEquipment {
		t.Fatalf("step = %q", view.Step)
	}
	w := view.Widgets[0]
	if w.Kind != domain.KindMulti || len(w.Options) != 6 {
		t.Fatalf("widget = %+v", w)
	}
	for _, o := range w.Options {
		if o.Key != "equipment."+o.Code {
			t.Fatalf("option key = %q", o.Key)
		}
		if o.Selected != (o.Code == "monitors") {
			t.Fatalf("option %s selected = %v", o.Code, o.Selected)
		}
	}
	if !view.CanAdvance || !view.CanRetreat {
		t.Fatalf("flags = %v %v", view.CanAdvance, view.CanRetreat)
	}
}

func TestPageRendersForm(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	s := newSession(t)
	view := Build(def, s.Snapshot(), i18n.Default().Printer("nl"), Options{TransitionDelay: 300 * time.Millisecond})

	var b strings.Builder
	if err := Page(view, "nl").Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := b.String()
	for _, want := range []string{
		`<html lang="nl">`,
		`action="/briefing"`,
		`data-step="service"`,
		`data-transition-delay-ms="300"`,
		`type="radio" name="service" value="live"`,
		`name="action" value="next"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in %s", want, html)
		}
	}
	if strings.Contains(html, `value="back"`) {
		t.Fatal("back button on first step")
	}
}

func TestPageTerminalActions(t *testing.T) {
	view := StepView{Step: domain.StepError, Title: "Oops", Body: "<failed>", Actions: Actions{Retry: "Retry", Restart: "Restart"}}
	var b strings.Builder
	if err := StepForm(view).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := b.String()
	if !strings.Contains(html, `value="retry"`) || !strings.Contains(html, `value="restart"`) {
		t.Fatalf("html = %s", html)
	}
	if !strings.Contains(html, "&lt;failed&gt;") {
		t.Fatalf("body not escaped: %s", html)
	}
}

func TestPracticalDetailsNumberWidget(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	s := newSession(t)
	for _, step := range []struct {
		key   domain.Key
		value briefing.Value
	}{
		{domain.FieldKey(domain.FieldService), briefing.TextValue("live")},
		{domain.FieldKey(domain.FieldLiveType), briefing.TextValue("organize")},
		{domain.FieldKey(domain.FieldEventType), briefing.TextValue("private")},
		{domain.FieldKey(domain.FieldLiveMusic), briefing.TextValue("no")},
	} {
		if err := s.Set(step.key, step.value); err != nil {
			t.Fatalf("set %s: %v", step.key, err)
		}
		if err := s.Advance(context.Background()); err != nil {
			t.Fatalf("advance after %s: %v", step.key, err)
		}
	}
	// location-equipment with nothing selected goes on to practical-details
	if err := s.Advance(context.Background()); err != nil {
		t.Fatalf("advance past equipment: %v", err)
	}
	if err := s.Set(domain.FieldKey(domain.FieldExpectedVisitors), briefing.NumberValue(120)); err != nil {
		t.Fatalf("set visitors: %v", err)
	}

	view := Build(def, s.Snapshot(), i18n.Default().Printer("nl"), Options{})
	if view.Step != domain.StepPracticalDetails {
		t.Fatalf("step = %q", view.Step)
	}
	var found bool
	for _, w := range view.Widgets {
		if w.Field == domain.FieldExpectedVisitors {
			found = true
			if w.Kind != domain.KindNumber || w.Value != "120" || w.Required {
				t.Fatalf("widget = %+v", w)
			}
		}
	}
	if !found {
		t.Fatalf("no visitors widget in %+v", view.Widgets)
	}

	var b strings.Builder
	if err := StepForm(view).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `type="number" name="expected-visitors" value="120"`; !strings.Contains(b.String(), want) {
		t.Fatalf("missing %q in %s", want, b.String())
	}
}

func TestNextButtonMarksClosedGate(t *testing.T) {
	view := StepView{Step: domain.StepContact, Final: true, CanRetreat: true, Actions: Actions{Next: "Next", Submit: "Send", Back: "Back"}}
	var b strings.Builder
	if err := StepForm(view).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := b.String()
	if !strings.Contains(html, `value="next" aria-disabled="true">Send</button>`) {
		t.Fatalf("closed gate not marked: %s", html)
	}

	view.CanAdvance = true
	b.Reset()
	if err := StepForm(view).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(b.String(), "aria-disabled") {
		t.Fatalf("open gate marked: %s", b.String())
	}

	view.Sending = true
	b.Reset()
	if err := StepForm(view).Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(b.String(), `value="next" disabled>`) {
		t.Fatalf("next enabled while sending: %s", b.String())
	}
}

func TestElEscapesAttributesAndText(t *testing.T) {
	var b strings.Builder
	c := El("p", Attrs{Attr("title", `"><script>`), Attr("hidden", false)}, Text("<b>&</b>"))
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<p title="&#34;&gt;&lt;script&gt;">&lt;b&gt;&amp;&lt;/b&gt;</p>`; b.String() != want {
		t.Fatalf("html = %s, want %s", b.String(), want)
	}
}
