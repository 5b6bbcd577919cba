package render

import (
	"time"

	"golang.org/x/text/message"

	"audio-briefing/src/briefing"
	"audio-briefing/src/core/domain"
	"audio-briefing/src/i18n"
	"audio-briefing/src/workflows"
)

// Option is one choice of a single- or multi-select widget
type Option struct {
	Code     string `json:"code"`
	Key      string `json:"key"` // answer key the choice writes to
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Widget is one input bound to an answer key
type Widget struct {
	Key      string           `json:"key"`
	Field    domain.FieldID   `json:"field"`
	Kind     domain.FieldKind `json:"kind"`
	Label    string           `json:"label"`
	Required bool             `json:"required"`
	Value    string           `json:"value,omitempty"`
	Options  []Option         `json:"options,omitempty"`
}

// Actions holds the button captions of the current view
type Actions struct {
	Next    string `json:"next"`
	Back    string `json:"back"`
	Submit  string `json:"submit"`
	Sending string `json:"sending"`
	Restart string `json:"restart"`
	Retry   string `json:"retry"`
}

// StepView is everything a client needs to draw the current step
type StepView struct {
	Step              domain.StepID   `json:"step"`
	Title             string          `json:"title"`
	Body              string          `json:"body,omitempty"`
	Widgets           []Widget        `json:"widgets"`
	History           []domain.StepID `json:"history"`
	CanAdvance        bool            `json:"can_advance"`
	CanRetreat        bool            `json:"can_retreat"`
	Sending           bool            `json:"sending"`
	Final             bool            `json:"final"`
	Terminal          bool            `json:"terminal"`
	Progress          int             `json:"progress"`
	TransitionDelayMS int64           `json:"transition_delay_ms"`
	Actions           Actions         `json:"actions"`
}

// Options tunes presentation details that are not part of the session
type Options struct {
	TransitionDelay time.Duration
}

// Build renders the view model of a session snapshot
func Build(def workflows.Definition, snap briefing.Snapshot, p *message.Printer, opts Options) StepView {
	view := StepView{
		Step:              snap.Step,
		Title:             i18n.StepTitle(p, snap.Step),
		Widgets:           []Widget{},
		History:           snap.History,
		CanAdvance:        snap.CanAdvance,
		CanRetreat:        snap.CanRetreat,
		Sending:           snap.Sending,
		Final:             def.IsFinal(snap.Step),
		Terminal:          snap.Step.IsTerminal(),
		Progress:          Progress(snap.Step, len(snap.History)),
		TransitionDelayMS: opts.TransitionDelay.Milliseconds(),
		Actions: Actions{
			Next:    p.Sprintf("action.next"),
			Back:    p.Sprintf("action.back"),
			Submit:  p.Sprintf("action.submit"),
			Sending: p.Sprintf("action.sending"),
			Restart: p.Sprintf("action.restart"),
			Retry:   p.Sprintf("action.retry"),
		},
	}

	switch snap.Step {
	case domain.StepSuccess:
		view.Body = p.Sprintf("state.success.body")
	case domain.StepError:
		view.Body = p.Sprintf("state.error.body")
	}

	for _, f := range def.Steps[snap.Step].Fields {
		view.Widgets = append(view.Widgets, buildWidget(f, snap.Answers, p))
	}
	return view
}

func buildWidget(f domain.Field, answers *briefing.Answers, p *message.Printer) Widget {
	w := Widget{
		Key:      domain.FieldKey(f.ID).String(),
		Field:    f.ID,
		Kind:     f.Kind,
		Label:    i18n.FieldLabel(p, f.ID),
		Required: f.Required,
	}

	switch f.Kind {
	case domain.KindMulti:
		for _, o := range f.Options {
			w.Options = append(w.Options, Option{
				Code:     o,
				Key:      domain.OptionKey(f.ID, o).String(),
				Label:    i18n.OptionLabel(p, f.ID, o),
				Selected: answers.Selected(f.ID, o),
			})
		}
	case domain.KindSingle:
		w.Value = answers.Raw(f.ID)
		for _, o := range f.Options {
			w.Options = append(w.Options, Option{
				Code:     o,
				Key:      w.Key,
				Label:    i18n.OptionLabel(p, f.ID, o),
				Selected: w.Value == o,
			})
		}
	default:
		w.Value = answers.Raw(f.ID)
	}
	return w
}

// Progress is the completion percentage shown above the form
func Progress(step domain.StepID, historyLen int) int {
	switch step {
	case domain.StepSuccess:
		return 100
	case domain.StepContact:
		return 95
	}
	return min(10+8*historyLen, 90)
}
