package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"audio-briefing/src/core"
	"audio-briefing/src/core/domain"
	"audio-briefing/src/workflows"
)

// Dispatcher delivers a prepared submission
type Dispatcher interface {
	Dispatch(ctx context.Context, input workflows.SubmissionInput) error
}

// DirectDispatcher sends both emails in-process, operator first
type DirectDispatcher struct {
	deps *core.Deps
}

func NewDirectDispatcher(deps *core.Deps) *DirectDispatcher {
	return &DirectDispatcher{deps: deps}
}

func (d *DirectDispatcher) Dispatch(ctx context.Context, input workflows.SubmissionInput) error {
	logger := d.deps.Logger.With("session_id", input.SessionID)

	resp, err := d.deps.Relay.Send(ctx, input.Operator)
	if err != nil {
		return fmt.Errorf("send operator notification: %w", err)
	}
	logger.Info("operator notification sent", "event", domain.EventTypeOperatorNotified, "status", resp.Status)

	resp, err = d.deps.Relay.Send(ctx, input.Confirmation)
	if err != nil {
		return fmt.Errorf("send customer confirmation: %w", err)
	}
	logger.Info("customer confirmation sent", "event", domain.EventTypeCustomerConfirmed, "status", resp.Status)
	return nil
}

// TemporalDispatcher runs the submission as a workflow and waits for its outcome
type TemporalDispatcher struct {
	client    client.Client
	taskQueue string
	logger    *slog.Logger
}

func NewTemporalDispatcher(c client.Client, taskQueue string, logger *slog.Logger) *TemporalDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if taskQueue == "" {
		taskQueue = domain.PrimaryWorkflowTaskQueue
	}
	return &TemporalDispatcher{client: c, taskQueue: taskQueue, logger: logger}
}

func (d *TemporalDispatcher) Dispatch(ctx context.Context, input workflows.SubmissionInput) error {
	// Every attempt gets its own workflow; resubmissions are not deduplicated
	workflowID := "briefing-" + input.SessionID + "-" + uuid.NewString()
	options := client.StartWorkflowOptions{
		ID:          workflowID,
		TaskQueue:   d.taskQueue,
		RetryPolicy: &temporal.RetryPolicy{MaximumAttempts: 1},
	}

	run, err := d.client.ExecuteWorkflow(ctx, options, workflows.BriefingSubmissionWorkflowName, input)
	if err != nil {
		return fmt.Errorf("start submission workflow: %w", err)
	}
	d.logger.Info("submission workflow started", "workflow_id", run.GetID(), "run_id", run.GetRunID())

	if err := run.Get(ctx, nil); err != nil {
		return fmt.Errorf("submission workflow %s: %w", run.GetID(), err)
	}
	return nil
}
