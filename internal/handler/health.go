package handler

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status   string `json:"status"`
	Delivery string `json:"delivery"`
}

// Health handles GET /api/health. It reports which delivery strategy is
// active and whether it is configured, without leaking any credential.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if !h.configured {
		status = "unconfigured"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:   status,
		Delivery: h.deliveryMode,
	})
}
