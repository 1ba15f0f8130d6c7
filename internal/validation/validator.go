package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hr-records-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Lookups holds the foreign keys resolved for one employee row
type Lookups struct {
	StatusID         int
	EducationLevelID int
	DepartmentID     int
	PositionID       int
}

type named interface {
	GetID() int
	GetName() string
}

// BuildIndex maps lowercase names to ids for case-insensitive lookup
func BuildIndex[T named](items []T) map[string]int {
	index := make(map[string]int, len(items))
	for _, item := range items {
		index[strings.ToLower(strings.TrimSpace(item.GetName()))] = item.GetID()
	}
	return index
}

// Validator validates import rows against preloaded lookup and email caches
type Validator struct {
	statuses        map[string]int
	educationLevels map[string]int
	departments     map[string]int
	positions       map[string]int
	emailOwners     map[string]int64
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		statuses:        make(map[string]int),
		educationLevels: make(map[string]int),
		departments:     make(map[string]int),
		positions:       make(map[string]int),
		emailOwners:     make(map[string]int64),
	}
}

// SetStatusIndex sets the status name cache
func (v *Validator) SetStatusIndex(index map[string]int) { v.statuses = index }

// SetEducationLevelIndex sets the education level name cache
func (v *Validator) SetEducationLevelIndex(index map[string]int) { v.educationLevels = index }

// SetDepartmentIndex sets the department name cache
func (v *Validator) SetDepartmentIndex(index map[string]int) { v.departments = index }

// SetPositionIndex sets the position name cache
func (v *Validator) SetPositionIndex(index map[string]int) { v.positions = index }

// SetEmailIndex sets the cache of stored emails and their owners
func (v *Validator) SetEmailIndex(index map[string]int64) {
	for email, documento := range index {
		v.emailOwners[strings.ToLower(email)] = documento
	}
}

// AddEmail records an email claimed by a row of the current batch
func (v *Validator) AddEmail(email string, documento int64) {
	if email == "" {
		return
	}
	v.emailOwners[strings.ToLower(email)] = documento
}

// ValidateEmployeeRow validates a coerced row and resolves its lookups.
// Errors are returned in column order as human-readable messages.
func (v *Validator) ValidateEmployeeRow(row *models.EmployeeRow) (Lookups, []string) {
	var errors []string
	var lookups Lookups

	if row.Documento == 0 {
		errors = append(errors, "document id is required")
	}
	if row.FirstNames == "" {
		errors = append(errors, "first names are required")
	}
	if row.LastNames == "" {
		errors = append(errors, "last names are required")
	}
	if row.BirthDate == nil {
		errors = append(errors, "birth date is required")
	}
	if row.HireDate == nil {
		errors = append(errors, "hire date is required")
	}

	// Format is not checked on import; only ownership guards the unique index
	if row.Email != "" {
		if owner, ok := v.emailOwners[strings.ToLower(row.Email)]; ok && owner != row.Documento {
			errors = append(errors, fmt.Sprintf("email '%s' is already used by employee %d", row.Email, owner))
		}
	}

	var msg string
	if lookups.StatusID, msg = resolve(v.statuses, row.StatusName, "status"); msg != "" {
		errors = append(errors, msg)
	}
	if lookups.EducationLevelID, msg = resolve(v.educationLevels, row.EducationLevelName, "education level"); msg != "" {
		errors = append(errors, msg)
	}
	if lookups.DepartmentID, msg = resolve(v.departments, row.DepartmentName, "department"); msg != "" {
		errors = append(errors, msg)
	}
	if lookups.PositionID, msg = resolve(v.positions, row.PositionName, "position"); msg != "" {
		errors = append(errors, msg)
	}

	return lookups, errors
}

// resolve looks a name up case-insensitively; the message is empty on success
func resolve(index map[string]int, name, label string) (int, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, label + " is required"
	}
	id, ok := index[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Sprintf("%s '%s' does not exist", label, name)
	}
	return id, ""
}

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}
