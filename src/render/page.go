package render

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"audio-briefing/src/core/domain"
)

// FormAction is the path the HTML form posts to
const FormAction = "/briefing"

// Page renders a full HTML document around the step form
func Page(view StepView, lang string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
			return err
		}
		return El("html", Attrs{Attr("lang", lang)},
			El("head", nil,
				El("meta", Attrs{Attr("charset", "utf-8")}),
				El("meta", Attrs{Attr("name", "viewport"), Attr("content", "width=device-width, initial-scale=1")}),
				El("title", nil, Text(view.Title)),
			),
			El("body", nil, StepForm(view)),
		).Render(ctx, w)
	})
}

// StepForm renders the current step as a form with its navigation buttons.
// The hidden step input lets the handler drop posts of a page that is no longer current.
func StepForm(view StepView) templ.Component {
	progress := strconv.Itoa(view.Progress)
	children := []templ.Component{
		El("input", Attrs{Attr("type", "hidden"), Attr("name", "step"), Attr("value", string(view.Step))}),
		El("progress", Attrs{Attr("max", "100"), Attr("value", progress)}, Text(progress+"%")),
		El("h2", nil, Text(view.Title)),
	}
	if view.Body != "" {
		children = append(children, El("p", nil, Text(view.Body)))
	}
	for _, widget := range view.Widgets {
		children = append(children, widgetMarkup(widget, view.Sending))
	}
	children = append(children, actionsMarkup(view))

	return El("form", Attrs{
		Attr("method", "post"),
		Attr("action", FormAction),
		Attr("class", "briefing"),
		Attr("data-step", string(view.Step)),
		Attr("data-transition-delay-ms", strconv.FormatInt(view.TransitionDelayMS, 10)),
		Attr("data-can-advance", strconv.FormatBool(view.CanAdvance)),
	}, children...)
}

func widgetMarkup(widget Widget, disabled bool) templ.Component {
	switch widget.Kind {
	case domain.KindSingle, domain.KindMulti:
		choices := []templ.Component{El("legend", nil, Text(widget.Label))}
		for _, o := range widget.Options {
			attrs := Attrs{Attr("type", "checkbox"), Attr("name", o.Key), Attr("value", "on")}
			if widget.Kind == domain.KindSingle {
				attrs = Attrs{Attr("type", "radio"), Attr("name", o.Key), Attr("value", o.Code)}
			}
			attrs = append(attrs, Attr("checked", o.Selected), Attr("disabled", disabled))
			choices = append(choices, El("label", nil, El("input", attrs), Text(" "+o.Label)))
		}
		return El("fieldset", Attrs{Attr("data-field", string(widget.Field))}, choices...)
	case domain.KindTextarea:
		return El("label", nil,
			Text(widget.Label),
			El("textarea", Attrs{Attr("name", widget.Key), Attr("disabled", disabled)}, Text(widget.Value)),
		)
	default:
		return El("label", nil,
			Text(widget.Label),
			El("input", Attrs{
				Attr("type", inputType(widget.Kind)),
				Attr("name", widget.Key),
				Attr("value", widget.Value),
				Attr("disabled", disabled),
			}),
		)
	}
}

func inputType(kind domain.FieldKind) string {
	switch kind {
	case domain.KindDate, domain.KindNumber, domain.KindEmail, domain.KindPhone:
		return string(kind)
	default:
		return "text"
	}
}

// actionsMarkup renders the buttons of the step. The next button is only
// disabled while sending: a closed gate posts the answers and the handler
// keeps the step, so aria-disabled marks it for scripts and assistive tech.
func actionsMarkup(view StepView) templ.Component {
	var buttons []templ.Component
	switch view.Step {
	case domain.StepSuccess:
		buttons = append(buttons, button("restart", view.Actions.Restart, Attrs{}))
	case domain.StepError:
		buttons = append(buttons,
			button("retry", view.Actions.Retry, Attrs{}),
			button("restart", view.Actions.Restart, Attrs{}))
	default:
		if view.CanRetreat {
			buttons = append(buttons, button("back", view.Actions.Back, Attrs{Attr("disabled", view.Sending)}))
		}
		caption := view.Actions.Next
		if view.Sending {
			caption = view.Actions.Sending
		} else if view.Final {
			caption = view.Actions.Submit
		}
		state := Attrs{Attr("disabled", view.Sending)}
		if !view.CanAdvance {
			state = append(state, Attr("aria-disabled", "true"))
		}
		buttons = append(buttons, button("next", caption, state))
	}
	return El("div", Attrs{Attr("class", "actions")}, buttons...)
}

func button(action, caption string, extra Attrs) templ.Component {
	attrs := append(Attrs{Attr("type", "submit"), Attr("name", "action"), Attr("value", action)}, extra...)
	return El("button", attrs, Text(caption))
}
