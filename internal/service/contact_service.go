package service

import (
	"context"

	"github.com/foliokit/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates and sanitizes a raw submission, then relays it to the
	// configured delivery strategy. It returns *ValidationError for input
	// failures and the delivery package's sentinel errors for the rest.
	Submit(ctx context.Context, sub model.Submission, meta model.SubmissionMeta) error
}
