package domain

import "github.com/go-playground/validator/v10"

// validate is shared across requests; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()

// BookingRecord is a booking form submission as received from the
// marketing site. It is immutable once received; nothing in the
// confirmation pipeline persists it.
type BookingRecord struct {
	ClientName     string `json:"clientName" validate:"required"`
	ClientEmail    string `json:"clientEmail" validate:"required,email"`
	Service        string `json:"service" validate:"required"`
	Date           string `json:"date" validate:"required"`
	Time           string `json:"time" validate:"required"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
	BookingID      string `json:"bookingId,omitempty"`
	ClientID       string `json:"clientId,omitempty"`
}

// Validate checks that all required fields are present. Date and time
// are free-form display strings and are intentionally not parsed.
func (b BookingRecord) Validate() error {
	if err := validate.Struct(b); err != nil {
		return &Error{
			Code:    EINVALID,
			Message: "Missing required booking information.",
			Op:      "booking.validate",
			Err:     err,
		}
	}
	return nil
}
