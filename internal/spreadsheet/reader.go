package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Column positions of the employee import layout
const (
	ColDocumento = iota
	ColFirstNames
	ColLastNames
	ColBirthDate
	ColAddress
	ColPhone
	ColEmail
	ColPosition
	ColSalary
	ColHireDate
	ColStatus
	ColEducationLevel
	ColProfessionalProfile
	ColDepartment
	ColumnCount
)

// EmployeeHeaders are the header labels of the employee layout, in column order
var EmployeeHeaders = []string{
	"Documento", "Nombres", "Apellidos", "FechaNacimiento", "Direccion", "Telefono", "Email",
	"Cargo", "Salario", "FechaIngreso", "Estado", "NivelEducativo", "PerfilProfesional", "Departamento",
}

// maxSerial is the serial number of 9999-12-31, the last date a spreadsheet can hold
const maxSerial = 2958465

// ErrNoWorksheet is returned when the workbook has no worksheet at all
var ErrNoWorksheet = errors.New("the spreadsheet contains no worksheets")

// ReadFirstSheet returns the raw cell values of the first worksheet, header included
func ReadFirstSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// ParseEmployeeRow coerces the cells of one data row. Values that cannot be
// coerced are left at their zero value instead of failing.
func ParseEmployeeRow(cells []string) *models.EmployeeRow {
	return &models.EmployeeRow{
		Documento:           Int64(Cell(cells, ColDocumento)),
		FirstNames:          Cell(cells, ColFirstNames),
		LastNames:           Cell(cells, ColLastNames),
		BirthDate:           Date(Cell(cells, ColBirthDate)),
		Address:             Cell(cells, ColAddress),
		Phone:               Cell(cells, ColPhone),
		Email:               Cell(cells, ColEmail),
		PositionName:        Cell(cells, ColPosition),
		Salary:              Decimal(Cell(cells, ColSalary)),
		HireDate:            Date(Cell(cells, ColHireDate)),
		StatusName:          Cell(cells, ColStatus),
		EducationLevelName:  Cell(cells, ColEducationLevel),
		ProfessionalProfile: Cell(cells, ColProfessionalProfile),
		DepartmentName:      Cell(cells, ColDepartment),
	}
}

// Cell returns the trimmed value at col, or "" past the end of a short row
func Cell(cells []string, col int) string {
	if col < 0 || col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}

// Int64 parses an integer leniently; numeric cells stored as floats are
// accepted when integral. Returns 0 when unparseable.
func Int64(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0
	}
	return int64(f)
}

// Decimal parses a money amount leniently, dropping currency symbols and
// thousands separators. Invalid input yields a null decimal.
func Decimal(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("$", "", "€", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Date accepts a spreadsheet serial number or a text date. Nil when neither.
func Date(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial <= maxSerial {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return validation.ParseDate(s)
}
