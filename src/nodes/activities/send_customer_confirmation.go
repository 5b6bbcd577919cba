package activities

import (
	"context"

	"audio-briefing/src/core"
	"audio-briefing/src/services"
)

const SendCustomerConfirmationActivityName = "send_customer_confirmation"

func init() {
	RegisterActivity(SendCustomerConfirmationActivityName, SendCustomerConfirmationActivity, WithRetryPolicy(NoRetry()))
}

// SendCustomerConfirmationActivity emails the confirmation copy to the customer
func SendCustomerConfirmationActivity(ctx context.Context, deps *core.Deps, req services.EmailRequest) error {
	return sendEmail(ctx, deps, "customer confirmation", req)
}
