package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/foliokit/backend/internal/delivery"
	"github.com/foliokit/backend/internal/model"
	"github.com/foliokit/backend/internal/service"
)

// User-facing messages are deliberately generic for server-side failures;
// detail goes to the logs only.
const (
	msgSuccess       = "Thank you for your message! I will get back to you soon."
	msgInvalidJSON   = "Invalid request format"
	msgNotConfigured = "Email service is not configured. Please try again later."
	msgUnavailable   = "Email service is temporarily unavailable"
	msgSendFailed    = "Failed to send message. Please try again later."
)

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService    service.ContactService
	trustedProxyCount int
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService, trustedProxyCount int) *ContactHandler {
	return &ContactHandler{contactService: contactService, trustedProxyCount: trustedProxyCount}
}

// Submit handles POST /api/contact. Stages run strictly in order and
// short-circuit: parse, validate+sanitize+deliver (in the service), respond.
// Rate limiting happens before this handler, in the RateLimit middleware.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub model.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msgInvalidJSON})
		return
	}

	meta := model.SubmissionMeta{
		ClientIP:   clientIP(r, h.trustedProxyCount),
		ReceivedAt: time.Now().UTC(),
	}

	err := h.contactService.Submit(r.Context(), sub, meta)
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": msgSuccess,
		})
		return
	}

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		// Validation messages are written for the user; show them verbatim.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": verr.Error()})

	case errors.Is(err, delivery.ErrNotConfigured):
		slog.Error("contact delivery misconfigured", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msgNotConfigured})

	case errors.Is(err, delivery.ErrUnavailable):
		slog.Error("contact delivery transport unavailable", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msgUnavailable})

	default:
		slog.Error("contact delivery failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msgSendFailed})
	}
}
