package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/foliokit/backend/internal/delivery"
	"github.com/foliokit/backend/internal/model"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	sender delivery.Sender
	limits Limits
}

// NewContactService creates a ContactService that relays through the given
// delivery strategy.
func NewContactService(sender delivery.Sender, limits Limits) ContactService {
	return &contactServiceImpl{sender: sender, limits: limits}
}

// Submit runs the pipeline stages in order: validate, sanitize, deliver.
// Each stage short-circuits the rest on failure. Nothing is persisted; the
// submission is gone once the sender returns.
func (s *contactServiceImpl) Submit(ctx context.Context, sub model.Submission, meta model.SubmissionMeta) error {
	if errs := Validate(sub.Name, sub.Email, sub.Message, s.limits); len(errs) > 0 {
		return &ValidationError{Errs: errs}
	}

	clean := model.Submission{
		Name:    Sanitize(sub.Name),
		Email:   Sanitize(sub.Email),
		Message: Sanitize(sub.Message),
	}
	if meta.ReceivedAt.IsZero() {
		meta.ReceivedAt = time.Now().UTC()
	}

	if err := s.sender.Send(ctx, clean, meta); err != nil {
		return err
	}

	// Message content stays out of the logs.
	slog.Info("contact submission delivered", "client_ip", meta.ClientIP)
	return nil
}
