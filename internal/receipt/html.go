package receipt

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wafadentalclinics/wafa-dental-clinic/internal/domain"
)

// confirmationData feeds the confirmation email template. All values pass
// through html/template's contextual escaping, so user-supplied booking
// fields cannot inject markup into the email body.
type confirmationData struct {
	Name           string
	Service        string
	Date           string
	Time           string
	BookingID      string
	ClientID       string
	AdditionalInfo string
	Year           int
	ClinicName     string
	LogoURL        string
	SiteURL        string
	MapsURL        string
	ContactEmail   string
}

func (r *Renderer) renderHTML(rec domain.BookingRecord) (string, error) {
	data := confirmationData{
		Name:           rec.ClientName,
		Service:        rec.Service,
		Date:           rec.Date,
		Time:           rec.Time,
		BookingID:      rec.BookingID,
		ClientID:       rec.ClientID,
		AdditionalInfo: strings.TrimSpace(rec.AdditionalInfo),
		Year:           r.now().Year(),
		ClinicName:     clinicName,
		LogoURL:        clinicLogoURL,
		SiteURL:        clinicSite,
		MapsURL:        clinicMapsURL,
		ContactEmail:   clinicEmail,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "confirmation.html", data); err != nil {
		return "", fmt.Errorf("failed to render confirmation template: %w", err)
	}
	return buf.String(), nil
}
