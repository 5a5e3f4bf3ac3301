// Package receipt renders a validated booking record into a branded PDF
// e-receipt and a matching self-contained HTML email body.
package receipt

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/wafadentalclinics/wafa-dental-clinic/internal/domain"
)

// Clinic branding shared by the PDF and the email body.
const (
	clinicName    = "Wafa Dental Clinic"
	clinicAddress = "Office #7, 3rd Floor, The Ark Building, I-8 Markaz, Islamabad, 44000, Pakistan"
	clinicPhone   = "+92 51 8448877"
	clinicEmail   = "management@wafadentalclinic.com"
	clinicSite    = "https://www.wafadentalclinic.com"
	clinicMapsURL = "https://www.google.com/maps/place/WAFA+Dental+Clinic/@33.6673337,73.0747596,17z"
	clinicLogoURL = "https://www.wafadentalclinic.com/images/logo.png"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LogoLoader supplies the logo asset bytes. A load failure of any kind
// means "no logo"; rendering falls back to a text title and never fails
// on a missing asset.
type LogoLoader func() ([]byte, error)

// FileLogo returns a LogoLoader reading from a local file path.
func FileLogo(path string) LogoLoader {
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}

// Document is the rendered output consumed by the delivery dispatcher.
// Both artifacts carry the same booking details.
type Document struct {
	PDF  []byte // finalized PDF byte stream
	HTML string // self-contained email body
}

// Renderer transforms booking records into Documents. It holds no
// per-request state and is safe for concurrent use.
type Renderer struct {
	logo LogoLoader
	now  func() time.Time
	tmpl *template.Template
}

// NewRenderer creates a renderer. logo may be nil (text fallback only).
// now may be nil, defaulting to time.Now; it feeds the copyright year
// and the PDF metadata dates, so a fixed clock yields byte-identical
// output for the same record.
func NewRenderer(logo LogoLoader, now func() time.Time) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	if now == nil {
		now = time.Now
	}

	return &Renderer{
		logo: logo,
		now:  now,
		tmpl: tmpl,
	}, nil
}

// Render produces the PDF receipt and HTML email body for a validated
// booking record.
func (r *Renderer) Render(rec domain.BookingRecord) (*Document, error) {
	htmlBody, err := r.renderHTML(rec)
	if err != nil {
		return nil, &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "An error occurred while sending the confirmation email.",
			Op:      "receipt.render",
			Err:     err,
		}
	}

	pdfBytes, err := r.renderPDF(rec)
	if err != nil {
		return nil, &domain.Error{
			Code:    domain.EINTERNAL,
			Message: "An error occurred while sending the confirmation email.",
			Op:      "receipt.render",
			Err:     err,
		}
	}

	return &Document{PDF: pdfBytes, HTML: htmlBody}, nil
}

// cursor tracks the running vertical offset on the page so optional
// sections never overlap whatever follows them. Only the closing line is
// pinned to an absolute page coordinate.
type cursor struct {
	y float64
}

func (c *cursor) advance(h float64) {
	c.y += h
}

func (r *Renderer) renderPDF(rec domain.BookingRecord) ([]byte, error) {
	now := r.now()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle("Booking Confirmation", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Core fonts are cp1252; translate user-supplied UTF-8 values.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.drawHeader(pdf)

	cur := &cursor{y: 52}

	// Title
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(18, cur.y)
	pdf.CellFormat(174, 10, "Your Booking is Confirmed!", "", 0, "C", false, 0, "")
	cur.advance(18)

	// Greeting
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(18, cur.y)
	pdf.MultiCell(174, 6, tr(fmt.Sprintf(
		"Dear %s, we are pleased to confirm your appointment with us. Please review the details below.",
		rec.ClientName)), "", "L", false)
	cur.y = pdf.GetY() + 10

	// Booking details; rows with empty values are skipped, the cursor
	// keeps the remaining rows packed.
	rows := []struct {
		label string
		value string
	}{
		{"Service:", rec.Service},
		{"Date:", rec.Date},
		{"Time:", rec.Time},
		{"Booking ID:", rec.BookingID},
		{"Client ID:", rec.ClientID},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(18, cur.y, row.label)
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(55, cur.y, tr(row.value))
		cur.advance(8)
	}

	if notes := strings.TrimSpace(rec.AdditionalInfo); notes != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(18, cur.y, "Additional Info:")
		pdf.SetFont("Helvetica", "", 12)
		pdf.SetXY(55, cur.y-5)
		pdf.MultiCell(137, 6, tr(notes), "", "L", false)
		cur.y = pdf.GetY() + 8
	}

	cur.advance(4)

	// Clinic contact block
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(18, cur.y, "Clinic Information")
	cur.advance(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{clinicAddress, "Phone: " + clinicPhone, "Email: " + clinicEmail} {
		pdf.Text(18, cur.y, line)
		cur.advance(6)
	}

	r.drawLink(pdf, cur, "Website:", "www.wafadentalclinic.com", clinicSite)
	r.drawLink(pdf, cur, "Location:", "Directions on Google Maps", clinicMapsURL)

	// Closing line pinned near the page bottom regardless of which
	// optional sections were rendered above.
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(18, 272)
	pdf.CellFormat(174, 5, "Thank you for choosing Wafa Dental Clinic. We look forward to seeing you!", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to finalize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawHeader places the logo image when the asset loads, or a text
// fallback title when it does not.
func (r *Renderer) drawHeader(pdf *fpdf.Fpdf) {
	if img, kind := r.loadLogo(); img != nil {
		opts := fpdf.ImageOptions{ImageType: kind}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(img))
		pdf.ImageOptions("logo", 18, 14, 42, 0, false, opts, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 20)
		pdf.Text(18, 24, clinicName)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(120, 20)
	pdf.CellFormat(72, 5, "Booking Confirmation", "", 0, "R", false, 0, "")
}

// loadLogo attempts the asset read and treats any failure as absent in a
// single step; there is no separate existence check to race against.
func (r *Renderer) loadLogo() ([]byte, string) {
	if r.logo == nil {
		return nil, ""
	}
	data, err := r.logo()
	if err != nil || len(data) == 0 {
		return nil, ""
	}
	switch http.DetectContentType(data) {
	case "image/png":
		return data, "PNG"
	case "image/jpeg":
		return data, "JPG"
	}
	return nil, ""
}

// drawLink renders a label and a blue hyperlinked value on one line.
func (r *Renderer) drawLink(pdf *fpdf.Fpdf, cur *cursor, label, text, url string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(18, cur.y, label)
	pdf.SetTextColor(0, 0, 255)
	pdf.SetXY(38, cur.y-4.5)
	pdf.CellFormat(100, 6, text, "", 0, "L", false, 0, url)
	pdf.SetTextColor(0, 0, 0)
	cur.advance(6)
}
