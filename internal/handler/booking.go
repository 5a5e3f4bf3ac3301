// Package handler exposes the booking endpoints over HTTP. Handlers map
// domain error codes to status codes and keep caller-visible messages
// generic; causes are logged, never returned.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/wafadentalclinics/wafa-dental-clinic/internal/domain"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/middleware"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/service"
)

// BookingConfirmer runs the confirmation pipeline for one record.
type BookingConfirmer interface {
	ConfirmBooking(ctx context.Context, rec domain.BookingRecord) error
}

// AppointmentForwarder relays a booking form to the booking service.
type AppointmentForwarder interface {
	Forward(ctx context.Context, form url.Values) (*service.ProxyResult, error)
}

// BookingHandler serves the booking confirmation and proxy endpoints.
type BookingHandler struct {
	confirmations BookingConfirmer
	proxy         AppointmentForwarder
	logger        *slog.Logger
}

// NewBookingHandler creates a booking handler.
func NewBookingHandler(confirmations BookingConfirmer, proxy AppointmentForwarder, logger *slog.Logger) *BookingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingHandler{
		confirmations: confirmations,
		proxy:         proxy,
		logger:        logger,
	}
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendConfirmation handles POST /send-confirmation.
//
// Request body: JSON BookingRecord. Response: {success, message} with
// 400 for validation failures and 500 for render/delivery failures.
func (h *BookingHandler) SendConfirmation(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	var rec domain.BookingRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		logger.Error("invalid confirmation payload", "error", err)
		respondJSON(w, http.StatusBadRequest, response{Message: "Missing required booking information."})
		return
	}

	if err := h.confirmations.ConfirmBooking(r.Context(), rec); err != nil {
		logger.Error("booking confirmation failed", "op", domain.ErrorOp(err), "error", err)
		respondJSON(w, statusFromCode(domain.ErrorCode(err)), response{Message: domain.ErrorMessage(err)})
		return
	}

	respondJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Booking confirmation email with PDF sent successfully!",
	})
}

// BookAppointment handles POST /book-appointment.
//
// Forwards the submitted form to the booking web app and passes its
// reply through: upstream success maps to 200, upstream rejection to
// 400, connectivity problems to 500.
func (h *BookingHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context(), h.logger)

	if err := r.ParseForm(); err != nil {
		logger.Error("invalid booking form", "error", err)
		respondJSON(w, http.StatusBadRequest, response{Message: "Invalid booking form."})
		return
	}

	result, err := h.proxy.Forward(r.Context(), r.PostForm)
	if err != nil {
		logger.Error("booking forward failed", "op", domain.ErrorOp(err), "error", err)
		respondJSON(w, statusFromCode(domain.ErrorCode(err)), response{Message: domain.ErrorMessage(err)})
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	respondJSON(w, status, result)
}

// statusFromCode maps domain error codes to HTTP status codes.
func statusFromCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
