package briefing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"audio-briefing/src/core/domain"
)

// ValueKind tags the scalar held by a Value
type ValueKind int

const (
	ValueText ValueKind = iota + 1
	ValueFlag
	ValueNumber
)

// Value is one answer: free text or an option code, a toggle, or a number
type Value struct {
	Kind   ValueKind
	Text   string
	Flag   bool
	Number float64
}

func TextValue(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

func FlagValue(b bool) Value {
	return Value{Kind: ValueFlag, Flag: b}
}

func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Number: n}
}

// String renders the value the way it is shown in forms and emails
func (v Value) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueFlag:
		return strconv.FormatBool(v.Flag)
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueFlag:
		return json.Marshal(v.Flag)
	case ValueNumber:
		return json.Marshal(v.Number)
	default:
		return json.Marshal(v.Text)
	}
}

// ValueFromJSON converts a decoded JSON scalar into a Value
func ValueFromJSON(raw any) (Value, error) {
	switch x := raw.(type) {
	case string:
		return TextValue(x), nil
	case bool:
		return FlagValue(x), nil
	case float64:
		return NumberValue(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return NumberValue(f), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, raw)
	}
}

// Answers is the answer store of one session. Writes are last-write-wins
// and reads never fail; a missing key is simply absent.
// Answers is not safe for concurrent use; Session serializes access.
type Answers struct {
	values map[domain.Key]Value
}

// NewAnswers creates a store holding the given defaults
func NewAnswers(defaults map[domain.FieldID]string) *Answers {
	a := &Answers{}
	a.Reset(defaults)
	return a
}

// Reset drops every answer and restores the defaults
func (a *Answers) Reset(defaults map[domain.FieldID]string) {
	a.values = make(map[domain.Key]Value, len(defaults))
	for field, v := range defaults {
		a.values[domain.FieldKey(field)] = TextValue(v)
	}
}

func (a *Answers) Set(key domain.Key, v Value) {
	a.values[key] = v
}

func (a *Answers) Get(key domain.Key) (Value, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Text returns the text of a single-value field when it is present and not blank
func (a *Answers) Text(field domain.FieldID) (string, bool) {
	v, ok := a.values[domain.FieldKey(field)]
	if !ok {
		return "", false
	}
	s := v.String()
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Raw returns the text of a single-value field even when blank
func (a *Answers) Raw(field domain.FieldID) string {
	return a.values[domain.FieldKey(field)].String()
}

// Selected reports whether a toggle is on; an unset toggle is off
func (a *Answers) Selected(field domain.FieldID, option string) bool {
	v, ok := a.values[domain.OptionKey(field, option)]
	return ok && v.Kind == ValueFlag && v.Flag
}

func (a *Answers) Len() int {
	return len(a.values)
}

// Clone returns an independent copy
func (a *Answers) Clone() *Answers {
	out := &Answers{values: make(map[domain.Key]Value, len(a.values))}
	for k, v := range a.values {
		out.values[k] = v
	}
	return out
}

// MarshalJSON renders the store keyed by wire form
func (a *Answers) MarshalJSON() ([]byte, error) {
	out := make(map[string]Value, len(a.values))
	for k, v := range a.values {
		out[k.String()] = v
	}
	return json.Marshal(out)
}
