package domain

import (
	"fmt"
	"strings"
)

// FieldID is a stable identifier of one questionnaire input.
// Display labels are looked up in the i18n catalog and never used as keys.
type FieldID string

func (f FieldID) String() string {
	return string(f)
}

const (
	FieldService          FieldID = "service"
	FieldLiveType         FieldID = "live-type"
	FieldHireRole         FieldID = "hire-role"
	FieldHireDetails      FieldID = "hire-details"
	FieldEventType        FieldID = "event-type"
	FieldLiveMusic        FieldID = "live-music"
	FieldPerformers       FieldID = "performers"
	FieldInstruments      FieldID = "instruments"
	FieldEquipment        FieldID = "equipment"
	FieldLocationName     FieldID = "location-name"
	FieldEventDate        FieldID = "event-date"
	FieldEventLocation    FieldID = "event-location"
	FieldExpectedVisitors FieldID = "expected-visitors"
	FieldEventDetails     FieldID = "event-details"
	FieldStudioType       FieldID = "studio-type"
	FieldStudioDetails    FieldID = "studio-details"
	FieldPostType         FieldID = "post-type"
	FieldPostDetails      FieldID = "post-details"
	FieldAdviceWho        FieldID = "advice-who"
	FieldAdviceGoal       FieldID = "advice-goal"
	FieldAdviceRoom       FieldID = "advice-room"
	FieldAdviceAim        FieldID = "advice-aim"
	FieldAdviceAimDetails FieldID = "advice-aim-details"
	FieldAdviceMethod     FieldID = "advice-method"
	FieldAdviceUsage      FieldID = "advice-usage"
	FieldPurchaseDetails  FieldID = "purchase-details"
	FieldPurchaseType     FieldID = "purchase-type"
	FieldOtherDescription FieldID = "other-description"
	FieldContactName      FieldID = "contact-name"
	FieldContactEmail     FieldID = "contact-email"
	FieldContactPhone     FieldID = "contact-phone"
	FieldContactPref      FieldID = "contact-pref"
)

// FieldKind selects the input widget used for a field
type FieldKind string

const (
	KindSingle   FieldKind = "single"
	KindMulti    FieldKind = "multi"
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindDate     FieldKind = "date"
	KindNumber   FieldKind = "number"
	KindEmail    FieldKind = "email"
	KindPhone    FieldKind = "tel"
)

// Field describes one input of a step
type Field struct {
	ID       FieldID   `json:"id"`
	Kind     FieldKind `json:"kind"`
	Options  []string  `json:"options,omitempty"` // stable option codes for single and multi fields
	Required bool      `json:"required"`
}

// HasOption reports whether code is one of the field's option codes
func (f Field) HasOption(code string) bool {
	for _, o := range f.Options {
		if o == code {
			return true
		}
	}
	return false
}

// Service codes chosen on the first step
const (
	ServiceLive   = "live"
	ServiceStudio = "studio"
	ServicePost   = "post-production"
	ServiceAdvice = "advice"
	ServiceOther  = "other"
)

// Contact preference codes
const (
	ContactPrefEmail    = "email"
	ContactPrefPhone    = "phone"
	ContactPrefWhatsApp = "whatsapp"
)

// Key addresses one value in the answer store.
// Multi-select toggles use the option code, single-value fields leave Option empty.
type Key struct {
	Field  FieldID
	Option string
}

// FieldKey returns the key of a single-value field
func FieldKey(f FieldID) Key {
	return Key{Field: f}
}

// OptionKey returns the key of one toggle of a multi-select field
func OptionKey(f FieldID, option string) Key {
	return Key{Field: f, Option: option}
}

// String renders the wire form: "field" or "field.option"
func (k Key) String() string {
	if k.Option == "" {
		return string(k.Field)
	}
	return string(k.Field) + "." + k.Option
}

// ParseKey splits the wire form of a key
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}, fmt.Errorf("empty answer key")
	}
	field, option, _ := strings.Cut(s, ".")
	if field == "" {
		return Key{}, fmt.Errorf("invalid answer key %q", s)
	}
	return Key{Field: FieldID(field), Option: option}, nil
}

// AnswerReader is the read side of the answer store used by the step graph
type AnswerReader interface {
	// Text returns the non-blank text value of a single-value field
	Text(field FieldID) (string, bool)
	// Selected reports whether a multi-select toggle is switched on
	Selected(field FieldID, option string) bool
}
