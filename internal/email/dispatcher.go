package email

import (
	"context"
	"log/slog"
)

// Dispatcher sends exactly one email per call through a Sender and maps
// the outcome to a Result. It never retries and never panics; a failed
// send is a value, not a fault.
type Dispatcher struct {
	sender      Sender
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

// NewDispatcher creates a new dispatcher over the given transport.
func NewDispatcher(sender Sender, fromAddress, fromName string, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		sender:      sender,
		fromAddress: fromAddress,
		fromName:    fromName,
		logger:      logger,
	}
}

// Dispatch sends one email to one recipient. An empty recipient, subject,
// or body is rejected locally before any transport call is made, so a
// malformed request never burns a billed provider call.
func (d *Dispatcher) Dispatch(ctx context.Context, recipient, subject, htmlBody string, attachments []Attachment) Result {
	if recipient == "" || subject == "" || htmlBody == "" {
		d.logger.Error("dispatch rejected: missing recipient, subject, or body")
		return Result{Reason: "missing recipient, subject, or body"}
	}

	id, err := d.sender.Send(ctx, &Email{
		To:          []string{recipient},
		From:        Recipient(d.fromName, d.fromAddress),
		Subject:     subject,
		HTMLBody:    htmlBody,
		Attachments: attachments,
	})
	if err != nil {
		// The cause stays in the logs; callers only see a generic reason.
		d.logger.Error("failed to send email", "to", recipient, "error", err)
		return Result{Reason: "transport failure"}
	}

	d.logger.Info("email sent", "to", recipient, "message_id", id)
	return Result{Sent: true, MessageID: id}
}
