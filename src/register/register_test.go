package register

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go.temporal.io/sdk/testsuite"

	"audio-briefing/src/core"
	"audio-briefing/src/nodes/activities"
	"audio-briefing/src/services"
	"audio-briefing/src/workflows"
)

type countingRelay struct {
	to   []string
	fail bool
}

func (r *countingRelay) Send(ctx context.Context, req services.EmailRequest) (*services.EmailResponse, error) {
	r.to = append(r.to, req.Params.ToEmail)
	if r.fail {
		return nil, &services.RelayError{Status: 500, Body: "down"}
	}
	return &services.EmailResponse{Status: 200}, nil
}

func testDeps(relay services.EmailRelay) *core.Deps {
	return core.NewDeps(relay, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func input() workflows.SubmissionInput {
	return workflows.SubmissionInput{
		SessionID:    "s-1",
		ProjectType:  "Studio",
		Operator:     services.EmailRequest{Params: services.TemplateParams{ToEmail: "op@example.com"}},
		Confirmation: services.EmailRequest{Params: services.TemplateParams{ToEmail: "ann@example.com"}},
	}
}

func TestRegisteredWorkflowUsesRelay(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	relay := &countingRelay{}
	if err := RegisterWorker(env, testDeps(relay)); err != nil {
		t.Fatalf("register: %v", err)
	}

	env.ExecuteWorkflow(workflows.BriefingSubmissionWorkflowName, input())
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow: %v", err)
	}
	if len(relay.to) != 2 || relay.to[0] != "op@example.com" || relay.to[1] != "ann@example.com" {
		t.Fatalf("sent to %v", relay.to)
	}
}

func TestRegisteredWorkflowDoesNotRetryRelayErrors(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	relay := &countingRelay{fail: true}
	if err := RegisterWorker(env, testDeps(relay)); err != nil {
		t.Fatalf("register: %v", err)
	}

	env.ExecuteWorkflow(workflows.BriefingSubmissionWorkflowName, input())
	if env.GetWorkflowError() == nil {
		t.Fatal("expected workflow error")
	}
	if len(relay.to) != 1 {
		t.Fatalf("relay calls = %d", len(relay.to))
	}
}

func TestRegisterWorkerRequiresRelay(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	if err := RegisterWorker(env, nil); err == nil {
		t.Fatal("expected error")
	}
	if err := RegisterWorker(env, testDeps(nil)); err == nil {
		t.Fatal("expected error")
	}
}

func TestSubmissionActivitiesAreInContainer(t *testing.T) {
	for _, name := range workflows.SubmissionActivityNames() {
		if !activities.HasActivity(name) {
			t.Fatalf("activity %q missing from container", name)
		}
	}
}
