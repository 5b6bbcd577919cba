package domain

import "sort"

// DecisionKind tags which branching rule a Decision applies
type DecisionKind int

const (
	// DecisionMatch routes on the value of a single-select field
	DecisionMatch DecisionKind = iota + 1
	// DecisionAnyFlag routes on whether any listed toggle of a multi-select field is on
	DecisionAnyFlag
)

// Decision defines conditional branching on the accumulated answers
type Decision struct {
	Kind  DecisionKind `json:"kind"`
	Field FieldID      `json:"field"` // The field the decision reads

	// DecisionMatch
	Outcomes  map[string]StepID `json:"outcomes,omitempty"`  // option code -> next step
	Otherwise StepID            `json:"otherwise,omitempty"` // next step for a present value without an outcome

	// DecisionAnyFlag
	Flags        []string `json:"flags,omitempty"`
	Satisfied    StepID   `json:"satisfied,omitempty"`     // Next step when any flag is on
	NotSatisfied StepID   `json:"not_satisfied,omitempty"` // Next step when none is on
}

// GetNextStep evaluates the decision. An absent decision key yields StepNone.
func (d *Decision) GetNextStep(answers AnswerReader) StepID {
	switch d.Kind {
	case DecisionMatch:
		value, ok := answers.Text(d.Field)
		if !ok {
			return StepNone
		}
		if next, ok := d.Outcomes[value]; ok {
			return next
		}
		return d.Otherwise
	case DecisionAnyFlag:
		for _, flag := range d.Flags {
			if answers.Selected(d.Field, flag) {
				return d.Satisfied
			}
		}
		return d.NotSatisfied
	default:
		return StepNone
	}
}

// Targets lists every step the decision can route to
func (d *Decision) Targets() []StepID {
	var out []StepID
	seen := make(map[StepID]bool)
	add := func(s StepID) {
		if s != StepNone && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	switch d.Kind {
	case DecisionMatch:
		for _, s := range d.Outcomes {
			add(s)
		}
		add(d.Otherwise)
	case DecisionAnyFlag:
		add(d.Satisfied)
		add(d.NotSatisfied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
