package handler

import (
	"net/http"
)

// Handler holds cross-cutting HTTP concerns: CORS and health.
type Handler struct {
	siteOrigin   string
	deliveryMode string // "smtp" | "forms"
	configured   bool   // whether the active strategy has credentials
}

// New creates a Handler. siteOrigin is the origin allowed to call the API;
// deliveryMode and configured feed the health report.
func New(siteOrigin, deliveryMode string, configured bool) *Handler {
	return &Handler{siteOrigin: siteOrigin, deliveryMode: deliveryMode, configured: configured}
}

// CORS restricts cross-origin access to the portfolio site's origin.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.siteOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
