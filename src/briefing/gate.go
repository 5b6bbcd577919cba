package briefing

import (
	"audio-briefing/src/core/domain"
	"audio-briefing/src/validation"
	"audio-briefing/src/workflows"
)

// CanAdvance evaluates the advance gate of a step for the current answers.
// Steps with a decision also need a defined transition.
func CanAdvance(def workflows.Definition, step domain.StepID, answers *Answers) bool {
	stepDef, ok := def.Steps[step]
	if !ok || step.IsTerminal() {
		return false
	}

	var open bool
	switch stepDef.Gate {
	case domain.GateNone:
		open = true
	case domain.GateContact:
		open = validation.ContactValid(
			answers.Raw(domain.FieldContactName),
			answers.Raw(domain.FieldContactEmail),
			answers.Raw(domain.FieldContactPhone),
		)
	default:
		open = requiredPresent(stepDef.Fields, answers)
	}
	if !open {
		return false
	}
	return def.IsFinal(step) || def.Next(step, answers) != domain.StepNone
}

func requiredPresent(fields []domain.Field, answers *Answers) bool {
	for _, f := range fields {
		if !f.Required {
			continue
		}
		if f.Kind == domain.KindMulti {
			selected := false
			for _, o := range f.Options {
				if answers.Selected(f.ID, o) {
					selected = true
					break
				}
			}
			if !selected {
				return false
			}
			continue
		}
		if _, ok := answers.Text(f.ID); !ok {
			return false
		}
	}
	return true
}
