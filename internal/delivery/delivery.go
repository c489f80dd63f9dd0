// Package delivery relays validated, sanitized contact submissions to a
// downstream provider. Exactly one strategy is active per deployment,
// chosen at startup: direct SMTP or an HTTP forms relay.
package delivery

import (
	"context"
	"errors"

	"github.com/foliokit/backend/internal/model"
)

// Sender is the single capability a delivery strategy exposes.
type Sender interface {
	// Send delivers a submission. The submission must already be validated
	// and sanitized; Send performs no input checks beyond configuration.
	Send(ctx context.Context, sub model.Submission, meta model.SubmissionMeta) error
}

// Error categories. Handlers map these onto HTTP statuses and never leak
// the wrapped detail to clients; the detail is for server logs only.
var (
	// ErrNotConfigured means required credentials or keys are absent.
	// Strategies fail closed on it without contacting any downstream service.
	ErrNotConfigured = errors.New("delivery: not configured")

	// ErrUnavailable means the transport could not be established or
	// verified (connect, STARTTLS, auth). Worth retrying later.
	ErrUnavailable = errors.New("delivery: transport unavailable")

	// ErrSendFailed means the provider rejected or failed the delivery.
	ErrSendFailed = errors.New("delivery: send failed")
)
