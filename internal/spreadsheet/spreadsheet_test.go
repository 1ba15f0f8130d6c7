package spreadsheet

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/hr-records-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func header() []interface{} {
	out := make([]interface{}, len(EmployeeHeaders))
	for i, h := range EmployeeHeaders {
		out[i] = h
	}
	return out
}

func TestReadFirstSheet_NativeValues(t *testing.T) {
	birth := time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC)
	buf := buildWorkbook(t, [][]interface{}{
		header(),
		{1001, "Ana", "Gómez", birth, "Calle 1", "3001234567", "ana@example.com",
			"Desarrollador", 3500000.5, "15/01/2020", "Activo", "Profesional", "Backend", "Tecnología"},
	})

	rows, err := ReadFirstSheet(buf)
	if err != nil {
		t.Fatalf("ReadFirstSheet failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	row := ParseEmployeeRow(rows[1])

	if row.Documento != 1001 {
		t.Errorf("Expected documento 1001, got %d", row.Documento)
	}
	if row.BirthDate == nil || !row.BirthDate.Equal(birth) {
		t.Errorf("Expected birth date %v from native date cell, got %v", birth, row.BirthDate)
	}
	if row.HireDate == nil || row.HireDate.Format("2006-01-02") != "2020-01-15" {
		t.Errorf("Expected hire date 2020-01-15 from text cell, got %v", row.HireDate)
	}
	if !row.Salary.Valid || !row.Salary.Decimal.Equal(decimal.RequireFromString("3500000.5")) {
		t.Errorf("Expected salary 3500000.5, got %v", row.Salary)
	}
	if row.DepartmentName != "Tecnología" {
		t.Errorf("Expected department Tecnología, got %s", row.DepartmentName)
	}
}

func TestReadFirstSheet_InvalidFile(t *testing.T) {
	_, err := ReadFirstSheet(bytes.NewReader([]byte("not a workbook")))
	if err == nil {
		t.Fatal("Expected error for invalid workbook")
	}
	if errors.Is(err, ErrNoWorksheet) {
		t.Error("Expected open failure, not ErrNoWorksheet")
	}
}

func TestParseEmployeeRow_ShortRow(t *testing.T) {
	row := ParseEmployeeRow([]string{"1001", " Ana "})

	if row.Documento != 1001 {
		t.Errorf("Expected documento 1001, got %d", row.Documento)
	}
	if row.FirstNames != "Ana" {
		t.Errorf("Expected trimmed 'Ana', got %q", row.FirstNames)
	}
	if row.BirthDate != nil || row.HireDate != nil {
		t.Error("Expected missing dates to be nil")
	}
	if row.Salary.Valid {
		t.Error("Expected missing salary to be null")
	}
}

func TestInt64(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1001", 1001},
		{" 1 234 ", 1234},
		{"1234567890", 1234567890},
		{"1.23456789E+9", 1234567890},
		{"12.5", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := Int64(tt.in); got != tt.want {
			t.Errorf("Int64(%q): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{"3500000", true, "3500000"},
		{"$3,500,000.50", true, "3500000.5"},
		{"", false, ""},
		{"n/a", false, ""},
	}
	for _, tt := range tests {
		got := Decimal(tt.in)
		if got.Valid != tt.valid {
			t.Errorf("Decimal(%q): expected valid=%v, got %v", tt.in, tt.valid, got.Valid)
			continue
		}
		if tt.valid && got.Decimal.String() != tt.want {
			t.Errorf("Decimal(%q): expected %s, got %s", tt.in, tt.want, got.Decimal.String())
		}
	}
}

func TestDate_Serial(t *testing.T) {
	// 45306 is 2024-01-15 in the 1900 date system
	got := Date("45306")
	if got == nil {
		t.Fatal("Expected serial date to parse")
	}
	if got.Format("2006-01-02") != "2024-01-15" {
		t.Errorf("Expected 2024-01-15, got %s", got.Format("2006-01-02"))
	}

	if Date("garbage") != nil {
		t.Error("Expected nil for unparseable date")
	}
}

func TestEmployeeWriter_RoundTrip(t *testing.T) {
	email := "ana@example.com"
	profile := "Backend developer"
	employee := &models.Employee{
		Documento:           1001,
		FirstNames:          "Ana",
		LastNames:           "Gómez",
		BirthDate:           time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		HireDate:            time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		Email:               &email,
		Salary:              decimal.NewNullDecimal(decimal.RequireFromString("3500000.5")),
		ProfessionalProfile: &profile,
		Status:              &models.Status{ID: 1, Name: "Activo"},
		Department:          &models.Department{ID: 2, Name: "Tecnología"},
		Position:            &models.Position{ID: 5, Name: "Desarrollador"},
		EducationLevel:      &models.EducationLevel{ID: 4, Name: "Profesional"},
	}

	w, err := NewEmployeeWriter()
	if err != nil {
		t.Fatalf("NewEmployeeWriter failed: %v", err)
	}
	if err := w.Write(employee); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if w.Rows() != 1 {
		t.Errorf("Expected 1 row written, got %d", w.Rows())
	}

	var buf bytes.Buffer
	if err := w.Close(&buf); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	rows, err := ReadFirstSheet(&buf)
	if err != nil {
		t.Fatalf("ReadFirstSheet failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header and one row, got %d rows", len(rows))
	}

	row := ParseEmployeeRow(rows[1])
	if row.Documento != 1001 || row.FirstNames != "Ana" || row.StatusName != "Activo" {
		t.Errorf("Unexpected row after round trip: %+v", row)
	}
	if row.BirthDate == nil || !row.BirthDate.Equal(employee.BirthDate) {
		t.Errorf("Expected birth date to survive round trip, got %v", row.BirthDate)
	}
	if row.Email != email {
		t.Errorf("Expected email %s, got %s", email, row.Email)
	}
}

func TestEmployeeRecord(t *testing.T) {
	employee := &models.Employee{
		Documento:  42,
		FirstNames: "Luis",
		LastNames:  "Rojas",
		BirthDate:  time.Date(1985, 2, 3, 0, 0, 0, 0, time.UTC),
		HireDate:   time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:     &models.Status{ID: 1, Name: "Activo"},
	}

	record := EmployeeRecord(employee)

	if len(record) != ColumnCount {
		t.Fatalf("Expected %d cells, got %d", ColumnCount, len(record))
	}
	if record[ColDocumento] != "42" {
		t.Errorf("Expected documento 42, got %s", record[ColDocumento])
	}
	if record[ColBirthDate] != "1985-02-03" {
		t.Errorf("Expected birth date 1985-02-03, got %s", record[ColBirthDate])
	}
	if record[ColSalary] != "" || record[ColEmail] != "" || record[ColDepartment] != "" {
		t.Errorf("Expected empty optional cells, got %v", record)
	}
	if record[ColStatus] != "Activo" {
		t.Errorf("Expected status Activo, got %s", record[ColStatus])
	}
}

// workbookWithoutSheets returns an .xlsx archive whose workbook declares no sheets
func workbookWithoutSheets(t *testing.T) *bytes.Buffer {
	t.Helper()
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/xl/workbook.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/>
</Relationships>`,
		"xl/workbook.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets/>
</workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestReadFirstSheet_NoWorksheets(t *testing.T) {
	_, err := ReadFirstSheet(workbookWithoutSheets(t))
	if !errors.Is(err, ErrNoWorksheet) {
		t.Errorf("Expected ErrNoWorksheet, got %v", err)
	}
}
