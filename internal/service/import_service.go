package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hr-records-api/internal/auth"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/repository"
	"github.com/hr-records-api/internal/spreadsheet"
	"github.com/hr-records-api/internal/validation"
	"github.com/rs/zerolog"
)

// importService is the concrete implementation of ImportService
type importService struct {
	repos  *repository.Repositories
	hasher auth.Hasher
	log    zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(repos *repository.Repositories, hasher auth.Hasher, log zerolog.Logger) *importService {
	return &importService{
		repos:  repos,
		hasher: hasher,
		log:    log.With().Str("service", "import").Logger(),
	}
}

// employeeBatch collects the rows to persist in the single save at the end of an import.
// A document id seen twice in one file resolves to the same pending record.
type employeeBatch struct {
	pending map[int64]*models.Employee
	inserts []*models.Employee
	updates []*models.Employee
}

func newEmployeeBatch() *employeeBatch {
	return &employeeBatch{pending: make(map[int64]*models.Employee)}
}

// ImportEmployees reads the first worksheet and upserts every valid row by document id
func (s *importService) ImportEmployees(ctx context.Context, r io.Reader) *models.ImportResult {
	startTime := time.Now()
	result := &models.ImportResult{Success: true, Errors: []string{}}

	rows, err := spreadsheet.ReadFirstSheet(r)
	if errors.Is(err, spreadsheet.ErrNoWorksheet) {
		result.Success = false
		result.Message = "The spreadsheet contains no worksheets."
		return result
	}
	if err != nil {
		return s.fail(result, err)
	}
	if len(rows) < 2 {
		result.Success = false
		result.Message = "The spreadsheet is empty or contains no data."
		return result
	}

	// Header excluded
	result.TotalRows = len(rows) - 1

	validator, err := s.loadValidator(ctx)
	if err != nil {
		return s.fail(result, err)
	}

	batch := newEmployeeBatch()
	for i := 1; i < len(rows); i++ {
		// Respect context cancellation for long-running imports
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return s.fail(result, err)
			}
		}

		// Worksheet row number as shown by spreadsheet applications
		rowNum := i + 1
		if err := s.processRow(ctx, rowNum, rows[i], validator, batch, result); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: unexpected error - %v", rowNum, err))
			s.log.Error().Err(err).Int("row", rowNum).Msg("Error processing row")
		}
	}

	if err := s.repos.Employees.SaveBatch(ctx, batch.inserts, batch.updates); err != nil {
		return s.fail(result, err)
	}

	result.Message = fmt.Sprintf("Import completed. Inserted: %d, Updated: %d, Errors: %d",
		result.InsertedCount, result.UpdatedCount, result.ErrorCount)

	s.log.Info().
		Int("total", result.TotalRows).
		Int("inserted", result.InsertedCount).
		Int("updated", result.UpdatedCount).
		Int("errors", result.ErrorCount).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Msg("Import completed")

	return result
}

// fail marks the whole import as failed, keeping the row errors collected so far
func (s *importService) fail(result *models.ImportResult, err error) *models.ImportResult {
	s.log.Error().Err(err).Msg("Error importing spreadsheet")
	result.Success = false
	result.Message = fmt.Sprintf("Error processing the file: %v", err)
	return result
}

// loadValidator reads the four lookup tables and the stored emails once per import
func (s *importService) loadValidator(ctx context.Context) (*validation.Validator, error) {
	v := validation.NewValidator()

	statuses, err := s.repos.Statuses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}
	v.SetStatusIndex(validation.BuildIndex(statuses))

	levels, err := s.repos.EducationLevels.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load education levels: %w", err)
	}
	v.SetEducationLevelIndex(validation.BuildIndex(levels))

	departments, err := s.repos.Departments.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}
	v.SetDepartmentIndex(validation.BuildIndex(departments))

	positions, err := s.repos.Positions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}
	v.SetPositionIndex(validation.BuildIndex(positions))

	emails, err := s.repos.Employees.GetEmailIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee emails: %w", err)
	}
	v.SetEmailIndex(emails)

	return v, nil
}

// processRow validates one row and stages it in the batch. Validation failures are
// recorded in result; the returned error is reserved for unexpected failures.
func (s *importService) processRow(ctx context.Context, rowNum int, cells []string, v *validation.Validator, batch *employeeBatch, result *models.ImportResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	row := spreadsheet.ParseEmployeeRow(cells)
	row.Email = validation.NormalizeEmail(row.Email)

	lookups, rowErrors := v.ValidateEmployeeRow(row)
	if len(rowErrors) > 0 {
		result.ErrorCount++
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, strings.Join(rowErrors, ", ")))
		return nil
	}

	employee, isNew, err := s.resolve(ctx, batch, row.Documento)
	if err != nil {
		return err
	}

	applyRow(employee, row, lookups)

	if !employee.HasPassword() {
		hash, err := s.hasher.Hash(strconv.FormatInt(row.Documento, 10))
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}
		employee.PasswordHash = &hash
	}

	if _, staged := batch.pending[row.Documento]; !staged {
		batch.pending[row.Documento] = employee
		if isNew {
			batch.inserts = append(batch.inserts, employee)
		} else {
			batch.updates = append(batch.updates, employee)
		}
	}
	v.AddEmail(row.Email, row.Documento)

	if isNew {
		result.InsertedCount++
	} else {
		result.UpdatedCount++
	}
	return nil
}

// resolve returns the staged or stored employee for documento, or a new one
func (s *importService) resolve(ctx context.Context, batch *employeeBatch, documento int64) (*models.Employee, bool, error) {
	if employee, ok := batch.pending[documento]; ok {
		return employee, false, nil
	}

	existing, err := s.repos.Employees.GetByID(ctx, documento)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	return &models.Employee{Documento: documento}, true, nil
}

// applyRow overwrites every mutable employee field from a validated row
func applyRow(e *models.Employee, row *models.EmployeeRow, lookups validation.Lookups) {
	e.FirstNames = row.FirstNames
	e.LastNames = row.LastNames
	e.BirthDate = *row.BirthDate
	e.Address = row.Address
	e.Phone = row.Phone
	e.Email = optional(row.Email)
	e.Salary = row.Salary
	e.HireDate = *row.HireDate
	e.ProfessionalProfile = optional(row.ProfessionalProfile)
	e.StatusID = lookups.StatusID
	e.EducationLevelID = lookups.EducationLevelID
	e.DepartmentID = lookups.DepartmentID
	e.PositionID = lookups.PositionID
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
