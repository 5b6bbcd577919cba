package activities

import (
	"go.temporal.io/sdk/temporal"
)

// ActivityOptions holds optional configuration for activity registration
type ActivityOptions struct {
	RetryPolicy *temporal.RetryPolicy
}

// WithRetryPolicy sets the retry policy option
func WithRetryPolicy(retryPolicy *temporal.RetryPolicy) func(*ActivityOptions) {
	return func(opts *ActivityOptions) {
		opts.RetryPolicy = retryPolicy
	}
}

// NoRetry is the policy of every email send: a failed send fails the submission
// and the visitor decides whether to try again.
func NoRetry() *temporal.RetryPolicy {
	return &temporal.RetryPolicy{MaximumAttempts: 1}
}
