package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/foliokit/backend/internal/model"
)

const maxProviderBody = 64 << 10

// FormsConfig carries the forms-relay settings. AccessKey is required.
type FormsConfig struct {
	Endpoint  string // default "https://api.web3forms.com/submit"
	AccessKey string
}

// FormsSender delivers submissions by POSTing JSON to a third-party
// forms-as-a-service endpoint.
type FormsSender struct {
	cfg    FormsConfig
	client *http.Client
}

// NewFormsSender creates a FormsSender, filling in defaults.
func NewFormsSender(cfg FormsConfig) *FormsSender {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://api.web3forms.com/submit"
	}
	return &FormsSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type formsRequest struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

type formsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send implements Sender. Success requires both HTTP 200 and a success flag
// in the provider's JSON body. On failure the most specific provider message
// is kept in the wrapped error for logging; an unparseable body falls back
// to the HTTP status text.
func (s *FormsSender) Send(ctx context.Context, sub model.Submission, meta model.SubmissionMeta) error {
	if s.cfg.AccessKey == "" {
		return fmt.Errorf("%w: FORMS_ACCESS_KEY is required for forms delivery", ErrNotConfigured)
	}

	payload, err := json.Marshal(formsRequest{
		AccessKey: s.cfg.AccessKey,
		Subject:   "New Contact from " + sub.Name,
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrSendFailed, err)
	}

	var fr formsResponse
	parseErr := json.Unmarshal(body, &fr)
	if resp.StatusCode == http.StatusOK && parseErr == nil && fr.Success {
		return nil
	}

	detail := fr.Message
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("%w: provider responded %d: %s", ErrSendFailed, resp.StatusCode, detail)
}
