package email

import (
	"context"
	"fmt"
)

// Email represents an email message to be sent.
type Email struct {
	To          []string     // Recipient email addresses
	From        string       // Sender email address
	Subject     string       // Email subject
	HTMLBody    string       // HTML body
	Attachments []Attachment // File attachments (optional)
}

// Attachment represents a file attachment for an email.
type Attachment struct {
	Filename    string // Name of the file
	ContentType string // MIME type
	Content     []byte // File content
}

// Sender defines the interface for a mail transport.
// Implementations can use the Resend API, SMTP, etc.
type Sender interface {
	// Send sends an email message exactly once.
	// Returns the message ID reported by the transport.
	Send(ctx context.Context, email *Email) (string, error)
}

// Result is the terminal outcome of a single dispatch attempt.
// There is no retry state; one dispatch yields one Result.
type Result struct {
	Sent      bool
	MessageID string // set when Sent
	Reason    string // set when not Sent
}

// Recipient formats a name and address into RFC 5322 form.
// Returns "Name <address>" if name is provided, otherwise just address.
func Recipient(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}
