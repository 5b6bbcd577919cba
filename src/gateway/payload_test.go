package gateway

import (
	"strings"
	"testing"

	"audio-briefing/src/briefing"
	"audio-briefing/src/core/domain"
	"audio-briefing/src/i18n"
	"audio-briefing/src/workflows"
)

func liveAnswers() *briefing.Answers {
	a := briefing.NewAnswers(map[domain.FieldID]string{domain.FieldContactPref: domain.ContactPrefEmail})
	a.Set(domain.FieldKey(domain.FieldService), briefing.TextValue("live"))
	a.Set(domain.FieldKey(domain.FieldLiveType), briefing.TextValue("organize"))
	a.Set(domain.FieldKey(domain.FieldEventType), briefing.TextValue("concert-festival"))
	a.Set(domain.FieldKey(domain.FieldPerformers), briefing.TextValue("band-small"))
	a.Set(domain.OptionKey(domain.FieldInstruments, "drums"), briefing.FlagValue(true))
	a.Set(domain.OptionKey(domain.FieldInstruments, "bass"), briefing.FlagValue(true))
	a.Set(domain.OptionKey(domain.FieldInstruments, "vocals"), briefing.FlagValue(false))
	a.Set(domain.FieldKey(domain.FieldContactName), briefing.TextValue(" Ann "))
	a.Set(domain.FieldKey(domain.FieldContactEmail), briefing.TextValue("ann@example.com"))
	a.Set(domain.FieldKey(domain.FieldContactPhone), briefing.TextValue("0612345678"))
	return a
}

func TestBuildPayloadLabelsAndJoins(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	p := i18n.Default().Printer("nl")

	payload := BuildPayload(def, liveAnswers(), p)

	if payload.Name != "Ann" || payload.Email != "ann@example.com" || payload.Phone != "0612345678" {
		t.Fatalf("contact = %+v", payload)
	}
	if payload.ContactPreference != domain.ContactPrefEmail {
		t.Fatalf("contact preference = %q", payload.ContactPreference)
	}
	if want := i18n.OptionLabel(p, domain.FieldService, "live"); payload.ProjectType != want {
		t.Fatalf("project type = %q, want %q", payload.ProjectType, want)
	}

	wantInstruments := i18n.OptionLabel(p, domain.FieldInstruments, "drums") + ", " + i18n.OptionLabel(p, domain.FieldInstruments, "bass")
	found := false
	for _, row := range payload.Rows {
		if row.Question == i18n.FieldLabel(p, domain.FieldInstruments) {
			found = true
			if row.Answer != wantInstruments {
				t.Fatalf("instruments = %q, want %q", row.Answer, wantInstruments)
			}
		}
		if row.Question == i18n.FieldLabel(p, domain.FieldContactEmail) {
			t.Fatal("contact fields must not be in the answers table")
		}
	}
	if !found {
		t.Fatal("instruments row missing")
	}

	if payload.Message != p.Sprintf("email.placeholder.empty") {
		t.Fatalf("message = %q, want placeholder", payload.Message)
	}
}

func TestBuildPayloadMessageCollectsFreeText(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	p := i18n.Default().Printer("en")
	a := briefing.NewAnswers(nil)
	a.Set(domain.FieldKey(domain.FieldService), briefing.TextValue("studio"))
	a.Set(domain.FieldKey(domain.FieldStudioDetails), briefing.TextValue("Three songs, May"))

	payload := BuildPayload(def, a, p)
	if !strings.Contains(payload.Message, "Three songs, May") {
		t.Fatalf("message = %q", payload.Message)
	}
	if payload.ContactPreference != domain.ContactPrefEmail {
		t.Fatalf("contact preference = %q", payload.ContactPreference)
	}
}

func TestBuildPayloadUnknownCodeFallsBackToRaw(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	a := briefing.NewAnswers(nil)
	a.Set(domain.FieldKey(domain.FieldService), briefing.TextValue("karaoke"))
	payload := BuildPayload(def, a, i18n.Default().Printer("nl"))
	if payload.ProjectType != "karaoke" {
		t.Fatalf("project type = %q", payload.ProjectType)
	}
}

func TestAnswersTableEscapes(t *testing.T) {
	html, err := renderToString(t.Context(), AnswersTable("Q", "A", []Row{{Question: "Notes", Answer: "<b>loud</b>\nline two"}}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<b>loud</b>") {
		t.Fatalf("answer not escaped: %s", html)
	}
	if !strings.Contains(html, "&lt;b&gt;loud&lt;/b&gt;<br>line two") {
		t.Fatalf("unexpected html: %s", html)
	}
	if !strings.HasPrefix(html, "<table") {
		t.Fatalf("unexpected html: %s", html)
	}
}

func TestBuildPayloadIncludesExpectedVisitors(t *testing.T) {
	def := workflows.BuildBriefingDefinition()
	p := i18n.Default().Printer("en")
	a := liveAnswers()
	a.Set(domain.FieldKey(domain.FieldExpectedVisitors), briefing.NumberValue(250))

	payload := BuildPayload(def, a, p)
	label := i18n.FieldLabel(p, domain.FieldExpectedVisitors)
	for _, row := range payload.Rows {
		if row.Question == label {
			if row.Answer != "250" {
				t.Fatalf("visitors answer = %q", row.Answer)
			}
			return
		}
	}
	t.Fatalf("no %q row in %+v", label, payload.Rows)
}
