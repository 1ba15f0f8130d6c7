package spreadsheet

import (
	"fmt"
	"io"

	"github.com/hr-records-api/internal/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Employees"

// EmployeeWriter streams employees into an xlsx workbook using the import
// layout, so an exported file can be imported again unchanged.
type EmployeeWriter struct {
	file   *excelize.File
	stream *excelize.StreamWriter
	row    int
}

// NewEmployeeWriter creates a workbook and writes the header row
func NewEmployeeWriter() (*EmployeeWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	w := &EmployeeWriter{file: f, stream: sw, row: 1}

	header := make([]interface{}, len(EmployeeHeaders))
	for i, h := range EmployeeHeaders {
		header[i] = h
	}
	if err := w.writeRow(header); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// Write appends one employee row
func (w *EmployeeWriter) Write(e *models.Employee) error {
	values := make([]interface{}, ColumnCount)
	values[ColDocumento] = e.Documento
	values[ColFirstNames] = e.FirstNames
	values[ColLastNames] = e.LastNames
	values[ColBirthDate] = e.BirthDate.Format("2006-01-02")
	values[ColAddress] = e.Address
	values[ColPhone] = e.Phone
	values[ColEmail] = e.EmailValue()
	values[ColPosition] = e.PositionName()
	values[ColSalary] = ""
	if e.Salary.Valid {
		values[ColSalary] = e.Salary.Decimal.InexactFloat64()
	}
	values[ColHireDate] = e.HireDate.Format("2006-01-02")
	values[ColStatus] = e.StatusName()
	values[ColEducationLevel] = e.EducationLevelName()
	values[ColProfessionalProfile] = ""
	if e.ProfessionalProfile != nil {
		values[ColProfessionalProfile] = *e.ProfessionalProfile
	}
	values[ColDepartment] = e.DepartmentName()
	return w.writeRow(values)
}

// Rows returns the number of employee rows written so far
func (w *EmployeeWriter) Rows() int {
	return w.row - 2
}

// Close flushes the workbook to out and releases it
func (w *EmployeeWriter) Close(out io.Writer) error {
	defer w.file.Close()
	if err := w.stream.Flush(); err != nil {
		return fmt.Errorf("failed to flush worksheet: %w", err)
	}
	if _, err := w.file.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *EmployeeWriter) writeRow(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.stream.SetRow(cell, values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", w.row, err)
	}
	w.row++
	return nil
}

// EmployeeRecord returns the employee as text cells in the import layout
func EmployeeRecord(e *models.Employee) []string {
	record := make([]string, ColumnCount)
	record[ColDocumento] = fmt.Sprintf("%d", e.Documento)
	record[ColFirstNames] = e.FirstNames
	record[ColLastNames] = e.LastNames
	record[ColBirthDate] = e.BirthDate.Format("2006-01-02")
	record[ColAddress] = e.Address
	record[ColPhone] = e.Phone
	record[ColEmail] = e.EmailValue()
	record[ColPosition] = e.PositionName()
	if e.Salary.Valid {
		record[ColSalary] = e.Salary.Decimal.String()
	}
	record[ColHireDate] = e.HireDate.Format("2006-01-02")
	record[ColStatus] = e.StatusName()
	record[ColEducationLevel] = e.EducationLevelName()
	if e.ProfessionalProfile != nil {
		record[ColProfessionalProfile] = *e.ProfessionalProfile
	}
	record[ColDepartment] = e.DepartmentName()
	return record
}
