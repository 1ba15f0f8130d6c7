package service_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hr-records-api/internal/models"
)

func TestImportEmployees_ThreeRowsWithUnknownDepartment(t *testing.T) {
	env := newTestEnv(t, nil)

	file := buildWorkbook(t,
		employeeRow(1001, "Ana", "Astronomía"),
		employeeRow(1002, "Luis", "Tecnología"),
		employeeRow(1003, "Marta", "Ventas"),
	)

	result := env.services.Import.ImportEmployees(context.Background(), file)

	if !result.Success {
		t.Fatalf("Expected success, got failure: %s", result.Message)
	}
	if result.TotalRows != 3 {
		t.Errorf("Expected 3 total rows, got %d", result.TotalRows)
	}
	if result.InsertedCount != 2 {
		t.Errorf("Expected 2 inserted, got %d", result.InsertedCount)
	}
	if result.UpdatedCount != 0 {
		t.Errorf("Expected 0 updated, got %d", result.UpdatedCount)
	}
	if result.ErrorCount != 1 {
		t.Errorf("Expected 1 error, got %d", result.ErrorCount)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Expected exactly one error string, got %v", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Row 2:") || !strings.Contains(result.Errors[0], "Astronomía") {
		t.Errorf("Expected error for row 2 naming the department, got %q", result.Errors[0])
	}
	if result.Message != "Import completed. Inserted: 2, Updated: 0, Errors: 1" {
		t.Errorf("Unexpected summary: %s", result.Message)
	}

	if _, ok := env.employees.Employees[1001]; ok {
		t.Error("Expected invalid row not to be stored")
	}
	stored := env.employees.Employees[1002]
	if stored == nil {
		t.Fatal("Expected employee 1002 to be stored")
	}
	if stored.DepartmentID != 2 || stored.StatusID != 1 || stored.PositionID != 5 || stored.EducationLevelID != 4 {
		t.Errorf("Unexpected lookups on stored employee: %+v", stored)
	}
	if !stored.Salary.Valid || stored.Salary.Decimal.String() != "3500000" {
		t.Errorf("Expected salary 3500000, got %v", stored.Salary)
	}
	if env.employees.SaveBatchCalls != 1 {
		t.Errorf("Expected one save for the whole batch, got %d", env.employees.SaveBatchCalls)
	}
}

func TestImportEmployees_ReimportIsIdempotent(t *testing.T) {
	env := newTestEnv(t, nil)
	rows := [][]interface{}{
		employeeRow(2001, "Ana", "Tecnología"),
		employeeRow(2002, "Luis", "Ventas"),
	}

	first := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t, rows...))
	if first.InsertedCount != 2 || first.UpdatedCount != 0 {
		t.Fatalf("Expected 2 inserts on first pass, got %+v", first)
	}

	second := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t, rows...))
	if second.InsertedCount != 0 {
		t.Errorf("Expected 0 inserts on second pass, got %d", second.InsertedCount)
	}
	if second.UpdatedCount != 2 {
		t.Errorf("Expected 2 updates on second pass, got %d", second.UpdatedCount)
	}
	if len(env.employees.Employees) != 2 {
		t.Errorf("Expected 2 stored employees, got %d", len(env.employees.Employees))
	}
}

func TestImportEmployees_UnknownLookupNeverMutates(t *testing.T) {
	env := newTestEnv(t, nil)
	hash := "hashed:original"
	original := &models.Employee{
		Documento:    3001,
		FirstNames:   "Original",
		LastNames:    "Name",
		PasswordHash: &hash,
		StatusID:     1,
		DepartmentID: 1,
	}
	env.employees.Employees[3001] = original

	row := employeeRow(3001, "Changed", "Tecnología")
	row[10] = "Jubilado" // status
	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t, row))

	if result.ErrorCount != 1 {
		t.Fatalf("Expected 1 error, got %d: %v", result.ErrorCount, result.Errors)
	}
	if !strings.Contains(result.Errors[0], "status 'Jubilado' does not exist") {
		t.Errorf("Expected unknown status message, got %q", result.Errors[0])
	}

	stored := env.employees.Employees[3001]
	if stored.FirstNames != "Original" || stored.DepartmentID != 1 {
		t.Errorf("Expected stored employee untouched, got %+v", stored)
	}
	if env.employees.GetByIDCalls != 0 {
		t.Errorf("Expected no storage lookup for an invalid row, got %d", env.employees.GetByIDCalls)
	}
}

func TestImportEmployees_CredentialHash(t *testing.T) {
	env := newTestEnv(t, nil)
	kept := "hashed:secret"
	env.employees.Employees[4001] = &models.Employee{Documento: 4001, FirstNames: "Has", PasswordHash: &kept}
	empty := ""
	env.employees.Employees[4002] = &models.Employee{Documento: 4002, FirstNames: "Empty", PasswordHash: &empty}

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t,
		employeeRow(4001, "Has", "Ventas"),
		employeeRow(4002, "Empty", "Ventas"),
		employeeRow(4003, "New", "Ventas"),
	))

	if result.UpdatedCount != 2 || result.InsertedCount != 1 {
		t.Fatalf("Expected 2 updates and 1 insert, got %+v", result)
	}

	tests := []struct {
		documento int64
		want      string
	}{
		{4001, "hashed:secret"},
		{4002, "hashed:4002"},
		{4003, "hashed:4003"},
	}
	for _, tt := range tests {
		stored := env.employees.Employees[tt.documento]
		if stored.PasswordHash == nil || *stored.PasswordHash != tt.want {
			t.Errorf("Employee %d: expected hash %s, got %v", tt.documento, tt.want, stored.PasswordHash)
		}
	}
}

func TestImportEmployees_EmailDiacriticsRemoved(t *testing.T) {
	env := newTestEnv(t, nil)
	row := employeeRow(5001, "José", "Tecnología")
	row[6] = "josé.pérez@example.com"

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t, row))
	if result.InsertedCount != 1 {
		t.Fatalf("Expected 1 insert, got %+v", result)
	}

	stored := env.employees.Employees[5001]
	if stored.EmailValue() != "jose.perez@example.com" {
		t.Errorf("Expected jose.perez@example.com, got %s", stored.EmailValue())
	}
}

func TestImportEmployees_UnusualEmailAccepted(t *testing.T) {
	env := newTestEnv(t, nil)
	row := employeeRow(5002, "Liam", "Tecnología")
	row[6] = "o'brien@example.com"

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t, row))
	if !result.Success || result.InsertedCount != 1 {
		t.Fatalf("Expected 1 insert, got %+v", result)
	}
	if len(result.Errors) != 0 {
		t.Errorf("Expected no row errors, got %v", result.Errors)
	}

	stored := env.employees.Employees[5002]
	if stored.EmailValue() != "o'brien@example.com" {
		t.Errorf("Expected o'brien@example.com, got %s", stored.EmailValue())
	}
}

func TestImportEmployees_DuplicateEmailInFile(t *testing.T) {
	env := newTestEnv(t, nil)
	first := employeeRow(5101, "Ana", "Tecnología")
	first[6] = "shared@example.com"
	second := employeeRow(5102, "Luis", "Tecnología")
	second[6] = "SHARED@example.com"

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t, first, second))

	if result.InsertedCount != 1 || result.ErrorCount != 1 {
		t.Fatalf("Expected 1 insert and 1 error, got %+v", result)
	}
	if !strings.HasPrefix(result.Errors[0], "Row 3:") || !strings.Contains(result.Errors[0], "already used by employee 5101") {
		t.Errorf("Unexpected error: %q", result.Errors[0])
	}
}

func TestImportEmployees_RepeatedDocumentInFile(t *testing.T) {
	env := newTestEnv(t, nil)

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t,
		employeeRow(5201, "First", "Tecnología"),
		employeeRow(5201, "Second", "Ventas"),
	))

	if result.InsertedCount != 1 || result.UpdatedCount != 1 {
		t.Fatalf("Expected 1 insert and 1 update, got %+v", result)
	}
	stored := env.employees.Employees[5201]
	if stored.FirstNames != "Second" || stored.DepartmentID != 3 {
		t.Errorf("Expected the last row to win, got %+v", stored)
	}
}

func TestImportEmployees_MissingRequiredFields(t *testing.T) {
	env := newTestEnv(t, nil)
	row := employeeRow(0, "", "Tecnología")
	row[3] = "not a date"

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t, row))

	if result.ErrorCount != 1 {
		t.Fatalf("Expected 1 error, got %d", result.ErrorCount)
	}
	want := "Row 2: document id is required, first names are required, birth date is required"
	if result.Errors[0] != want {
		t.Errorf("Expected %q, got %q", want, result.Errors[0])
	}
}

func TestImportEmployees_EmptyFile(t *testing.T) {
	env := newTestEnv(t, nil)

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t))

	if result.Success {
		t.Fatal("Expected failure for header-only file")
	}
	if !strings.Contains(result.Message, "empty") {
		t.Errorf("Expected empty file message, got %s", result.Message)
	}
	if result.TotalRows != 0 {
		t.Errorf("Expected 0 rows, got %d", result.TotalRows)
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

func TestImportEmployees_NoWorksheets(t *testing.T) {
	env := newTestEnv(t, nil)

	result := env.services.Import.ImportEmployees(context.Background(), workbookWithoutSheets(t))

	if result.Success {
		t.Fatal("Expected failure for a workbook without sheets")
	}
	if result.Message != "The spreadsheet contains no worksheets." {
		t.Errorf("Expected no worksheets message, got %s", result.Message)
	}
	if result.TotalRows != 0 {
		t.Errorf("Expected 0 rows, got %d", result.TotalRows)
	}
	if len(env.employees.Employees) != 0 {
		t.Errorf("Expected no stored employees, got %d", len(env.employees.Employees))
	}
}

func TestImportEmployees_InvalidWorkbook(t *testing.T) {
	env := newTestEnv(t, nil)

	result := env.services.Import.ImportEmployees(context.Background(), bytes.NewReader([]byte("plain text")))

	if result.Success {
		t.Fatal("Expected failure for invalid workbook")
	}
	if !strings.HasPrefix(result.Message, "Error processing the file") {
		t.Errorf("Unexpected message: %s", result.Message)
	}
}

func TestImportEmployees_SaveFailureKeepsRowErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	env.employees.SaveBatchFunc = func(ctx context.Context, inserts, updates []*models.Employee) error {
		return errors.New("connection reset")
	}

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t,
		employeeRow(6001, "Ana", "Astronomía"),
		employeeRow(6002, "Luis", "Tecnología"),
	))

	if result.Success {
		t.Fatal("Expected failure when the save fails")
	}
	if !strings.Contains(result.Message, "connection reset") {
		t.Errorf("Expected save error in message, got %s", result.Message)
	}
	if result.ErrorCount != 1 || len(result.Errors) != 1 {
		t.Errorf("Expected collected row error to remain, got %v", result.Errors)
	}
	if len(env.employees.Employees) != 0 {
		t.Errorf("Expected nothing stored, got %d", len(env.employees.Employees))
	}
}

func TestImportEmployees_UnexpectedRowError(t *testing.T) {
	env := newTestEnv(t, nil)
	env.employees.GetByIDError = errors.New("lookup timeout")

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t,
		employeeRow(7001, "Ana", "Tecnología"),
	))

	if !result.Success {
		t.Fatalf("Expected the batch to continue, got %s", result.Message)
	}
	if result.ErrorCount != 1 {
		t.Fatalf("Expected 1 error, got %d", result.ErrorCount)
	}
	if result.Errors[0] != "Row 2: unexpected error - lookup timeout" {
		t.Errorf("Unexpected error string: %q", result.Errors[0])
	}
}

func TestImportEmployees_NativeDates(t *testing.T) {
	env := newTestEnv(t, nil)
	row := employeeRow(8001, "Ana", "Tecnología")
	row[3] = time.Date(1988, 7, 4, 0, 0, 0, 0, time.UTC)
	row[9] = "15/03/2019"

	result := env.services.Import.ImportEmployees(context.Background(), buildWorkbook(t, row))
	if result.InsertedCount != 1 {
		t.Fatalf("Expected 1 insert, got %+v", result)
	}

	stored := env.employees.Employees[8001]
	if stored.BirthDate.Format("2006-01-02") != "1988-07-04" {
		t.Errorf("Expected birth date 1988-07-04, got %s", stored.BirthDate.Format("2006-01-02"))
	}
	if stored.HireDate.Format("2006-01-02") != "2019-03-15" {
		t.Errorf("Expected hire date 2019-03-15, got %s", stored.HireDate.Format("2006-01-02"))
	}
}
