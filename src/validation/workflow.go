package validation

import (
	"fmt"

	"audio-briefing/src/core/domain"
	"audio-briefing/src/workflows"
)

// ValidateDefinition validates the step graph before it is served.
// It checks that every transition targets a defined step, that no path loops,
// that every non-terminal path ends in the final step and that no step is unreachable.
func ValidateDefinition(def workflows.Definition) error {
	if _, exists := def.Steps[def.StartStep]; !exists {
		return fmt.Errorf("start step not found in definition: %s", def.StartStep)
	}
	if !def.IsFinal(def.FinalStep) {
		return fmt.Errorf("final step %s is missing or does not submit", def.FinalStep)
	}
	for _, step := range domain.AllSteps() {
		if _, exists := def.Steps[step]; !exists {
			return fmt.Errorf("step definition not found: %s", step)
		}
	}
	for step, stepDef := range def.Steps {
		if err := validateDecision(step, stepDef); err != nil {
			return err
		}
	}

	// visited tracks the current path, globallyVisited the fully checked steps
	visited := make(map[domain.StepID]bool)
	globallyVisited := make(map[domain.StepID]bool)

	var dfs func(step domain.StepID) error
	dfs = func(step domain.StepID) error {
		if globallyVisited[step] {
			return nil
		}
		if visited[step] {
			return fmt.Errorf("circular step graph detected at step: %s", step)
		}
		if _, exists := def.Steps[step]; !exists {
			return fmt.Errorf("step definition not found: %s", step)
		}

		visited[step] = true
		defer func() {
			delete(visited, step)
			globallyVisited[step] = true
		}()

		nextSteps := def.Successors(step)
		if len(nextSteps) == 0 && step != def.FinalStep {
			return fmt.Errorf("step %s has no transition and is not the final step", step)
		}
		for _, next := range nextSteps {
			if err := dfs(next); err != nil {
				return fmt.Errorf("%s -> %w", step, err)
			}
		}
		return nil
	}

	if err := dfs(def.StartStep); err != nil {
		return err
	}

	for step := range def.Steps {
		if !globallyVisited[step] && !step.IsTerminal() {
			return fmt.Errorf("step %s is unreachable from %s", step, def.StartStep)
		}
	}
	return nil
}

// validateDecision checks that a decision reads a field of its own step using known option codes
func validateDecision(step domain.StepID, stepDef workflows.StepConfig) error {
	if stepDef.Decision == nil {
		return nil
	}
	var field *domain.Field
	for i := range stepDef.Fields {
		if stepDef.Fields[i].ID == stepDef.Decision.Field {
			field = &stepDef.Fields[i]
		}
	}
	if field == nil {
		return fmt.Errorf("step %s decides on field %s it does not ask for", step, stepDef.Decision.Field)
	}

	switch stepDef.Decision.Kind {
	case domain.DecisionMatch:
		if field.Kind != domain.KindSingle {
			return fmt.Errorf("step %s matches on non single-select field %s", step, field.ID)
		}
		for code := range stepDef.Decision.Outcomes {
			if !field.HasOption(code) {
				return fmt.Errorf("step %s routes unknown option %s", step, code)
			}
		}
	case domain.DecisionAnyFlag:
		if field.Kind != domain.KindMulti {
			return fmt.Errorf("step %s checks flags of non multi-select field %s", step, field.ID)
		}
		for _, code := range stepDef.Decision.Flags {
			if !field.HasOption(code) {
				return fmt.Errorf("step %s checks unknown flag %s", step, code)
			}
		}
	default:
		return fmt.Errorf("step %s has an unknown decision kind %d", step, stepDef.Decision.Kind)
	}
	return nil
}

// ReachableSteps lists the steps reachable from the start step, in questionnaire order
func ReachableSteps(def workflows.Definition) []domain.StepID {
	seen := map[domain.StepID]bool{def.StartStep: true}
	queue := []domain.StepID{def.StartStep}
	for len(queue) > 0 {
		step := queue[0]
		queue = queue[1:]
		for _, next := range def.Successors(step) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	var out []domain.StepID
	for _, step := range domain.AllSteps() {
		if seen[step] {
			out = append(out, step)
		}
	}
	return out
}
