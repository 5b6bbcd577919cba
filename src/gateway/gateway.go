package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/message"

	"audio-briefing/src/config"
	"audio-briefing/src/core/domain"
	"audio-briefing/src/services"
	"audio-briefing/src/workflows"
)

// ErrOperatorNotConfigured is returned when no operator address is set
var ErrOperatorNotConfigured = errors.New("operator email is not configured")

// Options holds the relay account and the operator identity used for both sends
type Options struct {
	Relay           config.RelayConfig
	Operator        config.OperatorConfig
	ActivityTimeout time.Duration
}

// Gateway turns the answers of a finished briefing into two emails and hands them to a Dispatcher
type Gateway struct {
	def        workflows.Definition
	printer    *message.Printer
	dispatcher Dispatcher
	opts       Options
	logger     *slog.Logger
}

func New(def workflows.Definition, printer *message.Printer, dispatcher Dispatcher, opts Options, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		def:        def,
		printer:    printer,
		dispatcher: dispatcher,
		opts:       opts,
		logger:     logger,
	}
}

// Prepare builds the operator notification and the customer confirmation.
// Both share one parameter set and differ in recipient, subject and reply-to.
func (g *Gateway) Prepare(ctx context.Context, sessionID string, answers domain.AnswerReader) (workflows.SubmissionInput, error) {
	if g.opts.Operator.Email == "" {
		return workflows.SubmissionInput{}, ErrOperatorNotConfigured
	}

	payload := BuildPayload(g.def, answers, g.printer)
	table := AnswersTable(g.printer.Sprintf("email.table.question"), g.printer.Sprintf("email.table.answer"), payload.Rows)
	answersHTML, err := renderToString(ctx, table)
	if err != nil {
		return workflows.SubmissionInput{}, fmt.Errorf("render answers table: %w", err)
	}

	params := services.TemplateParams{
		FromName:          payload.Name,
		FromEmail:         payload.Email,
		Phone:             payload.Phone,
		ContactPreference: payload.ContactPreference,
		ProjectType:       payload.ProjectType,
		AnswersHTML:       answersHTML,
		Message:           payload.Message,
	}

	operator := params
	operator.ToEmail = g.opts.Operator.Email
	operator.Subject = g.printer.Sprintf("email.subject.operator", payload.ProjectType, payload.Name)
	operator.ReplyTo = payload.Email

	confirmation := params
	confirmation.ToEmail = payload.Email
	confirmation.Subject = g.printer.Sprintf("email.subject.confirmation", g.opts.Operator.Name)
	confirmation.ReplyTo = g.opts.Operator.Email

	return workflows.SubmissionInput{
		SessionID:   sessionID,
		ProjectType: payload.ProjectType,
		Operator: services.EmailRequest{
			ServiceID:  g.opts.Relay.ServiceID,
			TemplateID: g.opts.Relay.TemplateID,
			Params:     operator,
		},
		Confirmation: services.EmailRequest{
			ServiceID:  g.opts.Relay.ServiceID,
			TemplateID: g.opts.Relay.ConfirmationTemplate(),
			Params:     confirmation,
		},
		ActivityTimeout: g.opts.ActivityTimeout,
	}, nil
}

// Submit prepares and dispatches both emails. Any failure fails the whole submission.
func (g *Gateway) Submit(ctx context.Context, sessionID string, answers domain.AnswerReader) error {
	input, err := g.Prepare(ctx, sessionID, answers)
	if err != nil {
		return fmt.Errorf("prepare submission: %w", err)
	}
	g.logger.Info("dispatching briefing", "session_id", sessionID, "project_type", input.ProjectType)
	if err := g.dispatcher.Dispatch(ctx, input); err != nil {
		return fmt.Errorf("dispatch submission: %w", err)
	}
	return nil
}
