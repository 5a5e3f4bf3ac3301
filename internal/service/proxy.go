package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wafadentalclinics/wafa-dental-clinic/internal/domain"
)

// ProxyResult is the booking service's reply, passed through to the
// browser unchanged.
type ProxyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ProxyService forwards booking form submissions to the spreadsheet-backed
// booking web app. The browser cannot call it directly because the web app
// does not answer CORS preflights.
type ProxyService struct {
	webAppURL string
	client    *http.Client
	logger    *slog.Logger
}

// NewProxyService creates a proxy for the given booking web app URL.
func NewProxyService(webAppURL string, logger *slog.Logger) *ProxyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProxyService{
		webAppURL: webAppURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

// Forward posts the form fields to the booking web app and decodes its
// JSON reply. Connectivity and decode failures are reported as errors;
// an upstream success:false reply is a valid result, not an error.
func (s *ProxyService) Forward(ctx context.Context, form url.Values) (*ProxyResult, error) {
	if s.webAppURL == "" {
		s.logger.Error("booking web app URL is not configured")
		return nil, &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "Server configuration error.",
			Op:      "booking.forward",
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webAppURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "Could not connect to the booking service.",
			Op:      "booking.forward",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("failed to reach booking web app", "error", err)
		return nil, &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "Could not connect to the booking service.",
			Op:      "booking.forward",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "Could not connect to the booking service.",
			Op:      "booking.forward",
			Err:     err,
		}
	}

	// The web app replies 200 with a JSON body even on booking failures.
	var result ProxyResult
	if err := json.Unmarshal(body, &result); err != nil {
		s.logger.Error("unexpected reply from booking web app", "status", resp.StatusCode, "error", err)
		return nil, &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "Could not connect to the booking service.",
			Op:      "booking.forward",
			Err:     err,
		}
	}

	return &result, nil
}
