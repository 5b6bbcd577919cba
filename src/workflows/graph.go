package workflows

import (
	"audio-briefing/src/core/domain"
)

// Next determines the step that follows current for the given answers.
// It is pure: the answers are only read. StepNone means no transition is defined,
// which covers terminal steps, the final step and absent decision keys.
func (d Definition) Next(current domain.StepID, answers domain.AnswerReader) domain.StepID {
	stepDef, ok := d.Steps[current]
	if !ok || stepDef.Submit || current.IsTerminal() {
		return domain.StepNone
	}

	// Decision takes precedence over GoTo
	if stepDef.Decision != nil {
		return stepDef.Decision.GetNextStep(answers)
	}
	return stepDef.GoTo
}

// Successors lists every step reachable in one transition from the step
func (d Definition) Successors(step domain.StepID) []domain.StepID {
	stepDef, ok := d.Steps[step]
	if !ok {
		return nil
	}
	if stepDef.Decision != nil {
		return stepDef.Decision.Targets()
	}
	if stepDef.GoTo != domain.StepNone {
		return []domain.StepID{stepDef.GoTo}
	}
	return nil
}

// IsFinal reports whether advancing from step submits the answers
func (d Definition) IsFinal(step domain.StepID) bool {
	stepDef, ok := d.Steps[step]
	return ok && stepDef.Submit
}

// Field finds the definition of a field and the step that asks for it
func (d Definition) Field(id domain.FieldID) (domain.Field, domain.StepID, bool) {
	for _, step := range domain.AllSteps() {
		for _, f := range d.Steps[step].Fields {
			if f.ID == id {
				return f, step, true
			}
		}
	}
	return domain.Field{}, domain.StepNone, false
}

// Fields returns every field in questionnaire order
func (d Definition) Fields() []domain.Field {
	var out []domain.Field
	for _, step := range domain.AllSteps() {
		out = append(out, d.Steps[step].Fields...)
	}
	return out
}
