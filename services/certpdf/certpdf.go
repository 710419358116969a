package certpdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core/certificate"
	"github.com/SotorivaXL/academic-event-manag-main/core/event"
	"github.com/SotorivaXL/academic-event-manag-main/core/student"
)

const hoursPerSession = 2

// Document is everything printed on a certificate.
type Document struct {
	Certificate    certificate.Certificate
	Student        student.Student
	Event          event.Event
	AttendanceRate int
	Issuer         string // client name, optional
}

// WorkloadHours is the event's declared workload, else two hours per session.
func (d Document) WorkloadHours() int {
	if d.Event.WorkloadHours > 0 {
		return d.Event.WorkloadHours
	}
	return len(d.Event.Days) * hoursPerSession
}

func formatDate(s string) string {
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return s
}

func build(d Document) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Certificado - "+d.Student.Name), false)
	pdf.AddPage()

	w, h := pdf.GetPageSize()
	pdf.SetDrawColor(40, 70, 140)
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, w-20, h-20, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(14, 14, w-28, h-28, "D")

	center := func(size float64, style string, height float64, text string) {
		pdf.SetFont("Helvetica", style, size)
		pdf.CellFormat(0, height, tr(text), "", 1, "C", false, 0, "")
	}

	pdf.SetY(32)
	if d.Issuer != "" {
		center(12, "", 8, d.Issuer)
	}
	pdf.SetTextColor(40, 70, 140)
	center(26, "B", 14, "CERTIFICADO DE PARTICIPAÇÃO")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)

	center(14, "", 9, "Certificamos que")
	center(22, "B", 12, d.Student.Name)
	center(14, "", 9, "participou do evento acadêmico")
	center(18, "B", 11, d.Event.Title)
	pdf.Ln(6)

	if d.Event.StartDate != "" {
		period := formatDate(d.Event.StartDate)
		if d.Event.EndDate != "" {
			period += " a " + formatDate(d.Event.EndDate)
		}
		center(12, "", 7, "Realizado no período de "+period)
	}
	center(12, "", 7, fmt.Sprintf("Com %d%% de presença", d.AttendanceRate))
	center(12, "", 7, fmt.Sprintf("Carga horária: %dh", d.WorkloadHours()))

	pdf.SetY(h - 40)
	center(10, "", 6, "Emitido em: "+d.Certificate.IssuedAt.Format("02/01/2006"))
	center(9, "I", 6, "Código de verificação: "+d.Certificate.VerificationCode)
	return pdf
}

// Render writes the certificate PDF to w.
func Render(w io.Writer, d Document) error {
	pdf := build(d)
	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "rendering certificate pdf")
	}
	return nil
}

// WriteFile renders the certificate into dir/<certificate id>.pdf and returns the path.
func WriteFile(dir string, d Document) (string, error) {
	if d.Certificate.ID == "" {
		return "", errors.New("certificate has no id")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating certificates dir")
	}
	path := filepath.Join(dir, d.Certificate.ID+".pdf")
	if err := build(d).OutputFileAndClose(path); err != nil {
		return "", errors.Wrap(err, "writing certificate pdf")
	}
	return path, nil
}
