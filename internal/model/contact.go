package model

import "time"

// Submission represents a message submitted via the contact form.
// It is transient: it lives for the duration of one request and is
// discarded once delivered downstream. Nothing persists it.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmissionMeta carries request-scoped context that accompanies a
// submission into the delivery layer but is not part of the form payload.
type SubmissionMeta struct {
	// ClientIP is the best-effort client address, included in the delivery
	// notification footer and used as the rate-limit identifier.
	ClientIP string

	// ReceivedAt is the UTC time the server accepted the request.
	ReceivedAt time.Time
}
