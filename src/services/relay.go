package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultRelayEndpoint is the public EmailJS send endpoint
const DefaultRelayEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// TemplateParams is the parameter set rendered by the relay template
type TemplateParams struct {
	FromName          string `json:"from_name"`
	FromEmail         string `json:"from_email"`
	Phone             string `json:"phone"`
	ContactPreference string `json:"contact_preference"`
	ProjectType       string `json:"project_type"`
	AnswersHTML       string `json:"answers_html"`
	Message           string `json:"message"`
	ToEmail           string `json:"to_email"`
	Subject           string `json:"subject"`
	ReplyTo           string `json:"reply_to"`
}

// EmailRequest is one outbound send through the relay
type EmailRequest struct {
	ServiceID  string         `json:"service_id"`
	TemplateID string         `json:"template_id"`
	Params     TemplateParams `json:"template_params"`
}

// EmailResponse represents the relay's answer to a successful send
type EmailResponse struct {
	Status    int       `json:"status"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// RelayError is returned when the relay answers with a non-2xx status
type RelayError struct {
	Status int
	Body   string
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("email relay returned status %d: %s", e.Status, e.Body)
}

// ErrRelayNotConfigured is returned when no credential or service is set
var ErrRelayNotConfigured = errors.New("email relay is not configured")

// EmailRelay sends transactional email through a third-party relay
type EmailRelay interface {
	Send(ctx context.Context, req EmailRequest) (*EmailResponse, error)
}

// RelayOptions configures the HTTP relay client
type RelayOptions struct {
	Endpoint   string
	PublicKey  string // user_id of the relay account
	PrivateKey string // accessToken, optional
	Timeout    time.Duration
	HTTPClient *http.Client
}

// httpRelay implements EmailRelay against an EmailJS-compatible REST endpoint
type httpRelay struct {
	endpoint   string
	publicKey  string
	privateKey string
	client     *http.Client
}

// NewEmailRelay creates a new EmailRelay posting JSON to the configured endpoint
func NewEmailRelay(opts RelayOptions) EmailRelay {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultRelayEndpoint
	}
	return &httpRelay{
		endpoint:   endpoint,
		publicKey:  opts.PublicKey,
		privateKey: opts.PrivateKey,
		client:     client,
	}
}

type sendBody struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams TemplateParams `json:"template_params"`
}

// Send issues a single best-effort send. There is no retry and no idempotency key.
func (r *httpRelay) Send(ctx context.Context, req EmailRequest) (*EmailResponse, error) {
	if r.publicKey == "" || req.ServiceID == "" || req.TemplateID == "" {
		return nil, ErrRelayNotConfigured
	}

	payload, err := json.Marshal(sendBody{
		ServiceID:      req.ServiceID,
		TemplateID:     req.TemplateID,
		UserID:         r.publicKey,
		AccessToken:    r.privateKey,
		TemplateParams: req.Params,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal relay request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send relay request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RelayError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return &EmailResponse{
		Status:    resp.StatusCode,
		Body:      strings.TrimSpace(string(body)),
		Timestamp: time.Now(),
	}, nil
}
