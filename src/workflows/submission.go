package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"audio-briefing/src/core"
	"audio-briefing/src/core/domain"
	"audio-briefing/src/nodes/activities"
	"audio-briefing/src/services"
)

const BriefingSubmissionWorkflowName = "BriefingSubmission"

// DefaultActivityTimeout bounds one relay call when the input does not set a timeout
const DefaultActivityTimeout = 30 * time.Second

// SubmissionActivityNames lists the activities BriefingSubmissionWorkflow executes, in order
func SubmissionActivityNames() []string {
	return []string{
		activities.SendOperatorNotificationActivityName,
		activities.SendCustomerConfirmationActivityName,
	}
}

// SubmissionInput carries both prepared emails of one briefing
type SubmissionInput struct {
	SessionID       string                `json:"session_id"`
	ProjectType     string                `json:"project_type"`
	Operator        services.EmailRequest `json:"operator"`
	Confirmation    services.EmailRequest `json:"confirmation"`
	ActivityTimeout time.Duration         `json:"activity_timeout,omitempty"`
}

// BriefingSubmissionWorkflow sends the operator notification and then the customer confirmation.
// Neither send is retried; the first failure ends the workflow with an error.
func BriefingSubmissionWorkflow(ctx workflow.Context, input SubmissionInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Briefing submission started", "session_id", input.SessionID, "project_type", input.ProjectType)

	if input.ProjectType != "" {
		if err := workflow.UpsertTypedSearchAttributes(ctx, core.ProjectTypeField.ValueSet(input.ProjectType)); err != nil {
			// Visibility only; the emails still go out
			logger.Warn("Failed to upsert project type search attribute", "error", err)
		}
	}

	timeout := input.ActivityTimeout
	if timeout <= 0 {
		timeout = DefaultActivityTimeout
	}

	sends := []struct {
		name  string
		req   services.EmailRequest
		event domain.EventType
	}{
		{activities.SendOperatorNotificationActivityName, input.Operator, domain.EventTypeOperatorNotified},
		{activities.SendCustomerConfirmationActivityName, input.Confirmation, domain.EventTypeCustomerConfirmed},
	}
	for _, send := range sends {
		actCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
			StartToCloseTimeout: timeout,
			RetryPolicy:         activities.GetRetryPolicy(send.name),
		})
		if err := workflow.ExecuteActivity(actCtx, send.name, send.req).Get(ctx, nil); err != nil {
			logger.Error("Briefing email failed", "activity", send.name, "error", err)
			return err
		}
		logger.Info("Briefing email sent", "activity", send.name, "event", send.event)
	}

	logger.Info("Briefing submission completed", "session_id", input.SessionID)
	return nil
}
