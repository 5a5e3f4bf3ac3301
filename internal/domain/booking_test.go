package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wafadentalclinics/wafa-dental-clinic/internal/domain"
)

func validRecord() domain.BookingRecord {
	return domain.BookingRecord{
		ClientName:  "Jane Doe",
		ClientEmail: "jane@example.com",
		Service:     "Cleaning",
		Date:        "2025-01-10",
		Time:        "09:00 AM",
	}
}

func TestBookingRecord_Validate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		assert.NoError(t, validRecord().Validate())
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		r := validRecord()
		r.AdditionalInfo = ""
		r.BookingID = ""
		r.ClientID = ""
		assert.NoError(t, r.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*domain.BookingRecord)
	}{
		{"missing client name", func(r *domain.BookingRecord) { r.ClientName = "" }},
		{"missing client email", func(r *domain.BookingRecord) { r.ClientEmail = "" }},
		{"malformed client email", func(r *domain.BookingRecord) { r.ClientEmail = "not-an-email" }},
		{"missing service", func(r *domain.BookingRecord) { r.Service = "" }},
		{"missing date", func(r *domain.BookingRecord) { r.Date = "" }},
		{"missing time", func(r *domain.BookingRecord) { r.Time = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			err := r.Validate()

			assert.Error(t, err)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
			assert.Equal(t, "Missing required booking information.", domain.ErrorMessage(err))
		})
	}
}

func TestErrorCode_NonDomainError(t *testing.T) {
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(assert.AnError))
	assert.Equal(t, "An internal error occurred. Please try again later.", domain.ErrorMessage(assert.AnError))
}
