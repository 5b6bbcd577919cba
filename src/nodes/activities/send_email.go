package activities

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"audio-briefing/src/core"
	"audio-briefing/src/services"
)

// RelayErrorType is the application error type of a failed relay call
const RelayErrorType = "RelayError"

// sendEmail posts one request to the relay and converts failures to application errors
func sendEmail(ctx context.Context, deps *core.Deps, kind string, req services.EmailRequest) error {
	logger := activity.GetLogger(ctx)
	if deps == nil || deps.Relay == nil {
		return temporal.NewNonRetryableApplicationError("email relay not wired", RelayErrorType, services.ErrRelayNotConfigured)
	}

	logger.Info("sending email", "kind", kind, "template_id", req.TemplateID, "to", req.Params.ToEmail)
	resp, err := deps.Relay.Send(ctx, req)
	if err != nil {
		var relayErr *services.RelayError
		if errors.As(err, &relayErr) {
			logger.Error("relay rejected email", "kind", kind, "status", relayErr.Status)
		} else {
			logger.Error("relay call failed", "kind", kind, "error", err)
		}
		return temporal.NewApplicationError(fmt.Sprintf("send %s: %v", kind, err), RelayErrorType)
	}

	logger.Info("email accepted", "kind", kind, "status", resp.Status)
	return nil
}
