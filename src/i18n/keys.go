package i18n

import (
	"golang.org/x/text/message"

	"audio-briefing/src/core/domain"
)

// StepTitleKey is the catalog key of a step heading
func StepTitleKey(step domain.StepID) string {
	return "step." + string(step) + ".title"
}

// FieldLabelKey is the catalog key of a field label
func FieldLabelKey(field domain.FieldID) string {
	return "field." + string(field) + ".label"
}

// OptionLabelKey is the catalog key of an option label
func OptionLabelKey(field domain.FieldID, option string) string {
	return "option." + string(field) + "." + option
}

// StepTitle returns the translated heading of a step
func StepTitle(p *message.Printer, step domain.StepID) string {
	return p.Sprintf(StepTitleKey(step))
}

// FieldLabel returns the translated label of a field
func FieldLabel(p *message.Printer, field domain.FieldID) string {
	return p.Sprintf(FieldLabelKey(field))
}

// OptionLabel returns the translated label of an option code
func OptionLabel(p *message.Printer, field domain.FieldID, option string) string {
	return p.Sprintf(OptionLabelKey(field, option))
}
