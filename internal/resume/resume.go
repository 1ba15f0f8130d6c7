package resume

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/hr-records-api/internal/models"
)

const (
	fontFamily = "Helvetica"
	labelWidth = 55.0
	lineHeight = 7.0
)

// Renderer draws employee resumes as PDF documents
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// Render writes the resume of e to w
func (r *Renderer) Render(w io.Writer, e *models.Employee) error {
	now := r.now()

	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(tr("Resume - "+e.FullName()), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Generated on %s - page %d", now.Format("2006-01-02 15:04"), pdf.PageNo())),
			"", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Header
	pdf.SetFont(fontFamily, "B", 22)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 12, tr(e.FullName()), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 8, tr(e.PositionName()), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	section(pdf, tr, "PERSONAL INFORMATION")
	field(pdf, tr, "Document", fmt.Sprintf("%d", e.Documento))
	field(pdf, tr, "Birth date", e.BirthDate.Format("2006-01-02"))
	field(pdf, tr, "Age", fmt.Sprintf("%d years", Age(e.BirthDate, now)))
	field(pdf, tr, "Address", orDash(e.Address))
	field(pdf, tr, "Phone", orDash(e.Phone))
	field(pdf, tr, "Email", orDash(e.EmailValue()))

	section(pdf, tr, "EMPLOYMENT INFORMATION")
	field(pdf, tr, "Position", orDash(e.PositionName()))
	field(pdf, tr, "Department", orDash(e.DepartmentName()))
	field(pdf, tr, "Status", orDash(e.StatusName()))
	field(pdf, tr, "Hire date", e.HireDate.Format("2006-01-02"))
	field(pdf, tr, "Seniority", Seniority(e.HireDate, now))
	salary := "-"
	if e.Salary.Valid {
		salary = "$ " + e.Salary.Decimal.StringFixed(2)
	}
	field(pdf, tr, "Salary", salary)

	section(pdf, tr, "EDUCATION LEVEL")
	paragraph(pdf, tr, orDash(e.EducationLevelName()))

	section(pdf, tr, "PROFESSIONAL PROFILE")
	profile := "-"
	if e.ProfessionalProfile != nil && *e.ProfessionalProfile != "" {
		profile = *e.ProfessionalProfile
	}
	paragraph(pdf, tr, profile)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}
	return nil
}

func section(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(4)
	pdf.SetFont(fontFamily, "B", 13)
	pdf.SetTextColor(41, 128, 185)
	pdf.CellFormat(0, 9, tr(title), "", 1, "L", false, 0, "")
	pdf.SetDrawColor(41, 128, 185)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	pdf.Line(left, y, pageWidth-right, y)
	pdf.Ln(2)
}

func field(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(labelWidth, lineHeight, tr(label+":"), "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.MultiCell(0, lineHeight, tr(value), "", "L", false)
}

func paragraph(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont(fontFamily, "", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.MultiCell(0, lineHeight, tr(text), "", "J", false)
}

// Age returns the number of full years between birth and now
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Seniority formats the time since hire as "X year(s), Y month(s)"
func Seniority(hire, now time.Time) string {
	months := (now.Year()-hire.Year())*12 + int(now.Month()) - int(hire.Month())
	if now.Day() < hire.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return fmt.Sprintf("%d year(s), %d month(s)", months/12, months%12)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
