package activities

import (
	"context"

	"audio-briefing/src/core"
	"audio-briefing/src/services"
)

const SendOperatorNotificationActivityName = "send_operator_notification"

func init() {
	RegisterActivity(SendOperatorNotificationActivityName, SendOperatorNotificationActivity, WithRetryPolicy(NoRetry()))
}

// SendOperatorNotificationActivity emails the briefing to the operator, reply-to set to the customer
func SendOperatorNotificationActivity(ctx context.Context, deps *core.Deps, req services.EmailRequest) error {
	return sendEmail(ctx, deps, "operator notification", req)
}
