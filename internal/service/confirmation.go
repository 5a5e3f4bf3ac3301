// Package service holds the booking confirmation pipeline and the
// booking-form proxy that the HTTP handlers drive.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wafadentalclinics/wafa-dental-clinic/internal/domain"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/email"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/receipt"
)

// confirmationSubject matches the booking site's transactional email.
const confirmationSubject = "Your Appointment Confirmation with WAFA Dental Clinic"

// DocumentRenderer produces the PDF receipt and HTML email body.
type DocumentRenderer interface {
	Render(rec domain.BookingRecord) (*receipt.Document, error)
}

// Dispatcher sends one email and reports a terminal result.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipient, subject, htmlBody string, attachments []email.Attachment) email.Result
}

// ConfirmationService runs the confirmation pipeline: validate the
// record, render both artifacts, then make a single delivery attempt.
type ConfirmationService struct {
	renderer   DocumentRenderer
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewConfirmationService creates the confirmation pipeline.
func NewConfirmationService(renderer DocumentRenderer, dispatcher Dispatcher, logger *slog.Logger) *ConfirmationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfirmationService{
		renderer:   renderer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ConfirmBooking validates rec, renders the e-receipt, and emails it to
// the client with the PDF attached. An invalid record is rejected before
// the renderer or dispatcher is touched. The returned error carries a
// user-safe message; causes go to the logs only.
func (s *ConfirmationService) ConfirmBooking(ctx context.Context, rec domain.BookingRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	doc, err := s.renderer.Render(rec)
	if err != nil {
		s.logger.Error("failed to render booking receipt", "op", domain.ErrorOp(err), "error", err)
		return err
	}

	result := s.dispatcher.Dispatch(ctx, rec.ClientEmail, confirmationSubject, doc.HTML, []email.Attachment{
		{
			Filename:    receiptFilename(rec),
			ContentType: "application/pdf",
			Content:     doc.PDF,
		},
	})
	if !result.Sent {
		s.logger.Error("failed to send confirmation email", "to", rec.ClientEmail, "reason", result.Reason)
		return &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "An error occurred while sending the confirmation email.",
			Op:      "confirmation.send",
		}
	}

	s.logger.Info("booking confirmation sent", "to", rec.ClientEmail, "message_id", result.MessageID)
	return nil
}

// receiptFilename derives the attachment name from the booking ID,
// falling back to a generic label when none was assigned.
func receiptFilename(rec domain.BookingRecord) string {
	id := rec.BookingID
	if id == "" {
		id = "CONFIRMATION"
	}
	return fmt.Sprintf("WAFA_Dental_Clinic_Receipt_%s.pdf", id)
}
