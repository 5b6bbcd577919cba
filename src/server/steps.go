package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"audio-briefing/src/core/domain"
	"audio-briefing/src/i18n"
	"audio-briefing/src/nodes/activities"
	"audio-briefing/src/render"
	"audio-briefing/src/validation"
)

// StepResponse represents one step of the catalog
type StepResponse struct {
	ID         domain.StepID          `json:"id"`
	Title      string                 `json:"title"`
	Gate       domain.Gate            `json:"gate"`
	Final      bool                   `json:"final,omitempty"`
	Terminal   bool                   `json:"terminal,omitempty"`
	Reachable  bool                   `json:"reachable"`
	Fields     []domain.Field         `json:"fields"`
	Decision   *domain.Decision       `json:"decision,omitempty"`
	Successors []domain.StepID        `json:"successors"`
	Schema     map[string]interface{} `json:"schema,omitempty"` // JSON Schema of the step's answers
}

// RetryPolicyResponse represents the retry policy of a submission activity
type RetryPolicyResponse struct {
	MaximumAttempts int32 `json:"maximum_attempts"`
}

// ActivityResponse describes one email activity of the submission workflow
type ActivityResponse struct {
	Name        string               `json:"name"`
	RetryPolicy *RetryPolicyResponse `json:"retry_policy,omitempty"`
}

// GetStepsResponse represents the response from the step catalog endpoint
type GetStepsResponse struct {
	StartStep  domain.StepID          `json:"start_step"`
	FinalStep  domain.StepID          `json:"final_step"`
	Steps      []StepResponse         `json:"steps"`
	Activities []ActivityResponse     `json:"activities"`
	ViewSchema map[string]interface{} `json:"view_schema,omitempty"` // JSON Schema of /api/briefing responses
}

// stepsHandler handles GET requests for the step catalog
func (s *Server) stepsHandler(c echo.Context) error {
	p, _ := s.printer(c)

	reachable := make(map[domain.StepID]bool)
	for _, step := range validation.ReachableSteps(s.def) {
		reachable[step] = true
	}

	response := GetStepsResponse{
		StartStep: s.def.StartStep,
		FinalStep: s.def.FinalStep,
	}
	for _, step := range domain.AllSteps() {
		stepDef := s.def.Steps[step]
		stepResponse := StepResponse{
			ID:         step,
			Title:      i18n.StepTitle(p, step),
			Gate:       stepDef.Gate,
			Final:      stepDef.Submit,
			Terminal:   step.IsTerminal(),
			Reachable:  reachable[step],
			Fields:     stepDef.Fields,
			Decision:   stepDef.Decision,
			Successors: s.def.Successors(step),
		}
		if stepResponse.Fields == nil {
			stepResponse.Fields = []domain.Field{}
		}
		if stepResponse.Successors == nil {
			stepResponse.Successors = []domain.StepID{}
		}

		if len(stepDef.Fields) > 0 {
			if schemaBytes, err := json.Marshal(validation.StepSchema(s.def, step)); err != nil {
				s.logger.Warn("failed to marshal step schema", "step", step, "error", err)
			} else {
				var schema map[string]interface{}
				if err := json.Unmarshal(schemaBytes, &schema); err == nil {
					stepResponse.Schema = schema
				}
			}
		}
		response.Steps = append(response.Steps, stepResponse)
	}

	for _, name := range activities.GetAllActivityNames() {
		activityResponse := ActivityResponse{Name: name}
		if policy := activities.GetRetryPolicy(name); policy != nil {
			activityResponse.RetryPolicy = &RetryPolicyResponse{MaximumAttempts: policy.MaximumAttempts}
		}
		response.Activities = append(response.Activities, activityResponse)
	}

	if viewSchema, err := validation.ConvertStructToJSONSchema(render.StepView{}); err != nil {
		s.logger.Warn("failed to reflect view schema", "error", err)
	} else {
		var schema map[string]interface{}
		if err := json.Unmarshal(viewSchema, &schema); err == nil {
			response.ViewSchema = schema
		}
	}

	return c.JSON(http.StatusOK, response)
}
