package email_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/email"
)

// stubSender counts invocations and returns a canned outcome.
type stubSender struct {
	calls int
	last  *email.Email
	id    string
	err   error
}

func (s *stubSender) Send(ctx context.Context, e *email.Email) (string, error) {
	s.calls++
	s.last = e
	return s.id, s.err
}

func TestDispatcher_RejectsLocally(t *testing.T) {
	tests := []struct {
		name      string
		recipient string
		subject   string
		body      string
	}{
		{"empty recipient", "", "Subject", "<p>body</p>"},
		{"empty subject", "jane@example.com", "", "<p>body</p>"},
		{"empty body", "jane@example.com", "Subject", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &stubSender{id: "should-not-be-used"}
			d := email.NewDispatcher(sender, "management@wafadentalclinic.com", "Wafa Dental Clinic", nil)

			result := d.Dispatch(context.Background(), tt.recipient, tt.subject, tt.body, nil)

			assert.False(t, result.Sent)
			assert.NotEmpty(t, result.Reason)
			assert.Equal(t, 0, sender.calls, "guard must not make any transport call")
		})
	}
}

func TestDispatcher_Success(t *testing.T) {
	sender := &stubSender{id: "abc123"}
	d := email.NewDispatcher(sender, "management@wafadentalclinic.com", "Wafa Dental Clinic", nil)

	result := d.Dispatch(context.Background(), "jane@example.com", "Your Appointment", "<p>confirmed</p>", []email.Attachment{
		{Filename: "receipt.pdf", ContentType: "application/pdf", Content: []byte("%PDF-")},
	})

	assert.True(t, result.Sent)
	assert.Equal(t, "abc123", result.MessageID)
	assert.Equal(t, 1, sender.calls)

	require.NotNil(t, sender.last)
	assert.Equal(t, []string{"jane@example.com"}, sender.last.To)
	assert.Equal(t, "Wafa Dental Clinic <management@wafadentalclinic.com>", sender.last.From)
	require.Len(t, sender.last.Attachments, 1)
	assert.Equal(t, "receipt.pdf", sender.last.Attachments[0].Filename)
}

func TestDispatcher_TransportFailure(t *testing.T) {
	sender := &stubSender{err: errors.New("bounced")}
	d := email.NewDispatcher(sender, "management@wafadentalclinic.com", "Wafa Dental Clinic", nil)

	result := d.Dispatch(context.Background(), "jane@example.com", "Your Appointment", "<p>confirmed</p>", nil)

	assert.False(t, result.Sent)
	assert.Empty(t, result.MessageID)
	assert.NotEmpty(t, result.Reason)
	assert.NotContains(t, result.Reason, "bounced", "provider error bodies must not leak to callers")
	assert.Equal(t, 1, sender.calls, "exactly one attempt, no retry")
}

func TestRecipient(t *testing.T) {
	assert.Equal(t, "jane@example.com", email.Recipient("", "jane@example.com"))
	assert.Equal(t, "Jane Doe <jane@example.com>", email.Recipient("Jane Doe", "jane@example.com"))
}
