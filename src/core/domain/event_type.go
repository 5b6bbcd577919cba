package domain

type EventType string

func (e EventType) String() string {
	return string(e)
}

// Submission outcomes, attached to log records as "event"
const (
	EventTypeSubmitted         EventType = "submitted"
	EventTypeSubmitFailed      EventType = "submit_failed"
	EventTypeOperatorNotified  EventType = "operator_notified"
	EventTypeCustomerConfirmed EventType = "customer_confirmed"
)

// Gate selects the predicate that enables "advance" on a step
type Gate string

const (
	// GateRequired requires every required field of the step to be present
	GateRequired Gate = "required"
	// GateNone always allows advancing
	GateNone Gate = "none"
	// GateContact requires valid name, email and phone together
	GateContact Gate = "contact"
)

const (
	PrimaryWorkflowTaskQueue = "briefing-task-queue"
)
