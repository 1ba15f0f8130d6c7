package resume

import (
	"bytes"
	"testing"
	"time"

	"github.com/hr-records-api/internal/models"
	"github.com/shopspring/decimal"
)

func TestAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		birth time.Time
		want  int
	}{
		{time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), 34},
		{time.Date(1990, 6, 16, 0, 0, 0, 0, time.UTC), 33},
		{time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 34},
		{time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		if got := Age(tt.birth, now); got != tt.want {
			t.Errorf("Age(%s): expected %d, got %d", tt.birth.Format("2006-01-02"), tt.want, got)
		}
	}
}

func TestSeniority(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		hire time.Time
		want string
	}{
		{time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), "4 year(s), 5 month(s)"},
		{time.Date(2020, 1, 16, 0, 0, 0, 0, time.UTC), "4 year(s), 4 month(s)"},
		{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "0 year(s), 0 month(s)"},
		{time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "0 year(s), 0 month(s)"},
	}
	for _, tt := range tests {
		if got := Seniority(tt.hire, now); got != tt.want {
			t.Errorf("Seniority(%s): expected %q, got %q", tt.hire.Format("2006-01-02"), tt.want, got)
		}
	}
}

func TestRender(t *testing.T) {
	email := "josé@example.com"
	profile := "Desarrolladora backend con experiencia en Go y PostgreSQL."
	e := &models.Employee{
		Documento:           1001,
		FirstNames:          "Ana María",
		LastNames:           "Gómez Núñez",
		BirthDate:           time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		HireDate:            time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		Email:               &email,
		Salary:              decimal.NewNullDecimal(decimal.RequireFromString("3500000")),
		ProfessionalProfile: &profile,
		Status:              &models.Status{ID: 1, Name: "Activo"},
		Department:          &models.Department{ID: 2, Name: "Tecnología"},
		Position:            &models.Position{ID: 5, Name: "Desarrollador"},
		EducationLevel:      &models.EducationLevel{ID: 4, Name: "Profesional"},
	}

	r := NewRenderer()
	r.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	if err := r.Render(&buf, e); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("Expected output to start with %PDF-")
	}
	if buf.Len() < 1000 {
		t.Errorf("Expected a non-trivial document, got %d bytes", buf.Len())
	}
}

func TestRender_MissingLookups(t *testing.T) {
	e := &models.Employee{
		Documento:  2002,
		FirstNames: "Luis",
		LastNames:  "Pérez",
		BirthDate:  time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC),
		HireDate:   time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := NewRenderer().Render(&buf, e); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("Expected output to start with %PDF-")
	}
}
