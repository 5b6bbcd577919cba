package gateway

import (
	"strings"

	"golang.org/x/text/message"

	"audio-briefing/src/core/domain"
	"audio-briefing/src/i18n"
	"audio-briefing/src/workflows"
)

// Row is one line of the answers table
type Row struct {
	Question string
	Answer   string
}

// Payload is the projection of the answers sent with both emails.
// It is built at submission time and never stored.
type Payload struct {
	Name              string
	Email             string
	Phone             string
	ContactPreference string // option code, not a label
	ProjectType       string
	Rows              []Row
	Message           string
}

var contactFields = map[domain.FieldID]bool{
	domain.FieldContactName:  true,
	domain.FieldContactEmail: true,
	domain.FieldContactPhone: true,
	domain.FieldContactPref:  true,
}

// BuildPayload maps the answers to labels in the printer's language.
// Multi-select toggles of one field are joined with ", " and free text
// falls back to a placeholder in the message.
func BuildPayload(def workflows.Definition, answers domain.AnswerReader, p *message.Printer) Payload {
	empty := p.Sprintf("email.placeholder.empty")

	payload := Payload{
		Name:              text(answers, domain.FieldContactName),
		Email:             text(answers, domain.FieldContactEmail),
		Phone:             text(answers, domain.FieldContactPhone),
		ContactPreference: text(answers, domain.FieldContactPref),
		ProjectType:       empty,
	}
	if payload.ContactPreference == "" {
		payload.ContactPreference = domain.ContactPrefEmail
	}
	if service, ok := answers.Text(domain.FieldService); ok {
		payload.ProjectType = optionLabel(def, p, domain.FieldService, service)
	}

	var notes []string
	for _, f := range def.Fields() {
		if contactFields[f.ID] {
			continue
		}
		answer, ok := displayValue(def, p, f, answers)
		if !ok {
			continue
		}
		payload.Rows = append(payload.Rows, Row{Question: i18n.FieldLabel(p, f.ID), Answer: answer})
		if f.Kind == domain.KindTextarea {
			notes = append(notes, i18n.FieldLabel(p, f.ID)+":\n"+answer)
		}
	}

	payload.Message = strings.Join(notes, "\n\n")
	if payload.Message == "" {
		payload.Message = empty
	}
	return payload
}

// displayValue renders one field, reporting false when it was not answered
func displayValue(def workflows.Definition, p *message.Printer, f domain.Field, answers domain.AnswerReader) (string, bool) {
	switch f.Kind {
	case domain.KindMulti:
		var labels []string
		for _, o := range f.Options {
			if answers.Selected(f.ID, o) {
				labels = append(labels, i18n.OptionLabel(p, f.ID, o))
			}
		}
		if len(labels) == 0 {
			return "", false
		}
		return strings.Join(labels, ", "), true
	case domain.KindSingle:
		v, ok := answers.Text(f.ID)
		if !ok {
			return "", false
		}
		return optionLabel(def, p, f.ID, v), true
	default:
		v, ok := answers.Text(f.ID)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(v), true
	}
}

// optionLabel falls back to the raw value for codes the field does not define
func optionLabel(def workflows.Definition, p *message.Printer, field domain.FieldID, code string) string {
	if f, _, ok := def.Field(field); ok && f.HasOption(code) {
		return i18n.OptionLabel(p, field, code)
	}
	return code
}

func text(answers domain.AnswerReader, field domain.FieldID) string {
	v, _ := answers.Text(field)
	return strings.TrimSpace(v)
}
