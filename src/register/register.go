package register

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/workflow"

	"audio-briefing/src/core"
	"audio-briefing/src/nodes/activities"
	"audio-briefing/src/services"
	"audio-briefing/src/workflows"
)

// Registry is the part of worker.Worker used for registration; the test environment satisfies it too
type Registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// RegisterWorker registers the submission workflow and every container activity.
// Activities are bound to deps here so the container stays free of process state.
func RegisterWorker(w Registry, deps *core.Deps) error {
	if deps == nil || deps.Relay == nil {
		return fmt.Errorf("register worker: email relay is required")
	}
	for _, name := range workflows.SubmissionActivityNames() {
		if !activities.HasActivity(name) {
			return fmt.Errorf("register worker: activity %q is not in the container", name)
		}
	}

	w.RegisterWorkflowWithOptions(workflows.BriefingSubmissionWorkflow, workflow.RegisterOptions{
		Name: workflows.BriefingSubmissionWorkflowName,
	})

	for _, name := range activities.GetAllActivityNames() {
		info, _ := activities.GetActivity(name)
		fn := info.Function
		w.RegisterActivityWithOptions(func(ctx context.Context, req services.EmailRequest) error {
			return fn(ctx, deps, req)
		}, activity.RegisterOptions{Name: name})
		deps.Logger.Info("registered activity", "name", name)
	}
	return nil
}
