package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hr-records-api/internal/auth"
	"github.com/hr-records-api/internal/database"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/repository"
	"github.com/hr-records-api/internal/resume"
	"github.com/hr-records-api/internal/validation"
	"github.com/rs/zerolog"
)

// employeeService is the concrete implementation of EmployeeService
type employeeService struct {
	repos  *repository.Repositories
	hasher auth.Hasher
	resume *resume.Renderer
	mail   MailService
	log    zerolog.Logger
}

// newEmployeeService creates a new EmployeeService
func newEmployeeService(repos *repository.Repositories, hasher auth.Hasher, renderer *resume.Renderer, mail MailService, log zerolog.Logger) *employeeService {
	return &employeeService{
		repos:  repos,
		hasher: hasher,
		resume: renderer,
		mail:   mail,
		log:    log.With().Str("service", "employee").Logger(),
	}
}

// List returns every employee for administrators and only the caller's own record otherwise
func (s *employeeService) List(ctx context.Context, principal *models.Principal) ([]models.Employee, error) {
	if principal.IsAdmin() {
		return s.repos.Employees.GetAllWithDetails(ctx)
	}

	documento, err := subjectDocumento(principal)
	if err != nil {
		return nil, err
	}
	employee, err := s.repos.Employees.GetWithDetails(ctx, documento)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return []models.Employee{}, nil
	}
	return []models.Employee{*employee}, nil
}

// Get returns one employee with its lookups loaded
func (s *employeeService) Get(ctx context.Context, principal *models.Principal, documento int64) (*models.Employee, error) {
	if err := authorizeEmployee(principal, documento); err != nil {
		return nil, err
	}

	employee, err := s.repos.Employees.GetWithDetails(ctx, documento)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

// Create adds a new employee and queues the welcome email
func (s *employeeService) Create(ctx context.Context, req *models.EmployeeRequest) (*models.Employee, error) {
	employee := &models.Employee{Documento: req.Documento}
	if err := applyRequest(employee, req); err != nil {
		return nil, err
	}

	exists, err := s.repos.Employees.Exists(ctx, "documento = ?", req.Documento)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateDocument
	}

	if err := s.checkReferences(ctx, employee); err != nil {
		return nil, err
	}

	password := req.Password
	if password == "" {
		password = strconv.FormatInt(req.Documento, 10)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	employee.PasswordHash = &hash

	if err := s.repos.Employees.Add(ctx, employee); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateDocument
		}
		return nil, err
	}

	s.log.Info().Int64("documento", employee.Documento).Msg("Employee created")

	created, err := s.repos.Employees.GetWithDetails(ctx, employee.Documento)
	if err != nil || created == nil {
		created = employee
	}

	if created.EmailValue() != "" && s.mail != nil {
		s.mail.SendWelcome(created, password)
	}
	return created, nil
}

// Update overwrites an employee. The stored password is kept unless a new one is given.
func (s *employeeService) Update(ctx context.Context, documento int64, req *models.EmployeeRequest) (*models.Employee, error) {
	employee, err := s.repos.Employees.GetByID(ctx, documento)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	if err := applyRequest(employee, req); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, employee); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		employee.PasswordHash = &hash
	}

	if err := s.repos.Employees.Update(ctx, employee); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.log.Info().Int64("documento", documento).Msg("Employee updated")

	updated, err := s.repos.Employees.GetWithDetails(ctx, documento)
	if err != nil || updated == nil {
		return employee, nil
	}
	return updated, nil
}

// Delete removes an employee
func (s *employeeService) Delete(ctx context.Context, documento int64) error {
	employee, err := s.repos.Employees.GetByID(ctx, documento)
	if err != nil {
		return err
	}
	if employee == nil {
		return ErrEmployeeNotFound
	}

	if err := s.repos.Employees.Delete(ctx, employee); err != nil {
		return err
	}

	s.log.Info().Int64("documento", documento).Msg("Employee deleted")
	return nil
}

// WriteResume renders the employee's resume PDF to w
func (s *employeeService) WriteResume(ctx context.Context, principal *models.Principal, documento int64, w io.Writer) error {
	employee, err := s.Get(ctx, principal, documento)
	if err != nil {
		return err
	}
	return s.resume.Render(w, employee)
}

// RegeneratePasswords gives every employee without a credential the default one
func (s *employeeService) RegeneratePasswords(ctx context.Context) (int, error) {
	employees, err := s.repos.Employees.ListWithoutPassword(ctx)
	if err != nil {
		return 0, err
	}

	updates := make([]*models.Employee, 0, len(employees))
	for i := range employees {
		e := &employees[i]
		hash, err := s.hasher.Hash(strconv.FormatInt(e.Documento, 10))
		if err != nil {
			return 0, fmt.Errorf("failed to hash password for %d: %w", e.Documento, err)
		}
		e.PasswordHash = &hash
		updates = append(updates, e)
	}

	if err := s.repos.Employees.SaveBatch(ctx, nil, updates); err != nil {
		return 0, err
	}

	s.log.Info().Int("updated", len(updates)).Msg("Default passwords regenerated")
	return len(updates), nil
}

// checkReferences verifies the email is free and every lookup id exists
func (s *employeeService) checkReferences(ctx context.Context, e *models.Employee) error {
	if email := e.EmailValue(); email != "" {
		taken, err := s.repos.Employees.EmailInUse(ctx, email, e.Documento)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}
	}

	checks := []struct {
		label  string
		exists func() (bool, error)
	}{
		{"status", func() (bool, error) {
			entity, err := s.repos.Statuses.GetByID(ctx, e.StatusID)
			return entity != nil, err
		}},
		{"education level", func() (bool, error) {
			entity, err := s.repos.EducationLevels.GetByID(ctx, e.EducationLevelID)
			return entity != nil, err
		}},
		{"department", func() (bool, error) {
			entity, err := s.repos.Departments.GetByID(ctx, e.DepartmentID)
			return entity != nil, err
		}},
		{"position", func() (bool, error) {
			entity, err := s.repos.Positions.GetByID(ctx, e.PositionID)
			return entity != nil, err
		}},
	}
	for _, check := range checks {
		ok, err := check.exists()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidLookup, check.label)
		}
	}
	return nil
}

// applyRequest validates req and copies it onto e, leaving the key and password untouched
func applyRequest(e *models.Employee, req *models.EmployeeRequest) error {
	var problems []string

	if e.Documento <= 0 {
		problems = append(problems, "document id is required")
	}

	firstNames := strings.TrimSpace(req.FirstNames)
	lastNames := strings.TrimSpace(req.LastNames)
	if firstNames == "" {
		problems = append(problems, "first names are required")
	}
	if lastNames == "" {
		problems = append(problems, "last names are required")
	}

	birthDate := validation.ParseDate(req.BirthDate)
	if birthDate == nil {
		problems = append(problems, "birth date is required")
	}
	hireDate := validation.ParseDate(req.HireDate)
	if hireDate == nil {
		problems = append(problems, "hire date is required")
	}

	email := validation.NormalizeEmail(req.Email)
	if email != "" && !validation.IsEmail(email) {
		problems = append(problems, fmt.Sprintf("invalid email format '%s'", email))
	}

	if req.StatusID <= 0 || req.EducationLevelID <= 0 || req.DepartmentID <= 0 || req.PositionID <= 0 {
		problems = append(problems, "status, education level, department and position are required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidEmployee, strings.Join(problems, ", "))
	}

	e.FirstNames = firstNames
	e.LastNames = lastNames
	e.BirthDate = *birthDate
	e.Address = strings.TrimSpace(req.Address)
	e.Phone = strings.TrimSpace(req.Phone)
	e.Email = optional(email)
	e.Salary.Valid = req.Salary != nil
	if req.Salary != nil {
		e.Salary.Decimal = *req.Salary
	}
	e.HireDate = *hireDate
	e.ProfessionalProfile = optional(strings.TrimSpace(req.ProfessionalProfile))
	e.StatusID = req.StatusID
	e.EducationLevelID = req.EducationLevelID
	e.DepartmentID = req.DepartmentID
	e.PositionID = req.PositionID
	e.Status, e.EducationLevel, e.Department, e.Position = nil, nil, nil, nil
	return nil
}

// subjectDocumento reads the employee document id carried in the token subject
func subjectDocumento(principal *models.Principal) (int64, error) {
	if principal == nil {
		return 0, ErrForbidden
	}
	documento, err := strconv.ParseInt(principal.Subject, 10, 64)
	if err != nil {
		return 0, ErrForbidden
	}
	return documento, nil
}

// authorizeEmployee lets administrators see anyone and employees only themselves
func authorizeEmployee(principal *models.Principal, documento int64) error {
	if principal.IsAdmin() {
		return nil
	}
	own, err := subjectDocumento(principal)
	if err != nil {
		return err
	}
	if own != documento {
		return ErrForbidden
	}
	return nil
}
