package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee represents an employee record keyed by its national document id
type Employee struct {
	Documento           int64               `json:"documento" gorm:"column:documento;primaryKey;autoIncrement:false"`
	FirstNames          string              `json:"firstNames" gorm:"column:nombres"`
	LastNames           string              `json:"lastNames" gorm:"column:apellidos"`
	BirthDate           time.Time           `json:"birthDate" gorm:"column:fecha_nacimiento"`
	Address             string              `json:"address" gorm:"column:direccion"`
	Phone               string              `json:"phone" gorm:"column:telefono"`
	Email               *string             `json:"email" gorm:"column:email"`
	Salary              decimal.NullDecimal `json:"salary" gorm:"column:salario"`
	HireDate            time.Time           `json:"hireDate" gorm:"column:fecha_ingreso"`
	ProfessionalProfile *string             `json:"professionalProfile" gorm:"column:perfil_profesional"`
	PasswordHash        *string             `json:"-" gorm:"column:password_hash"`

	StatusID         int `json:"statusId" gorm:"column:estado_id"`
	EducationLevelID int `json:"educationLevelId" gorm:"column:nivel_educativo_id"`
	DepartmentID     int `json:"departmentId" gorm:"column:departamento_id"`
	PositionID       int `json:"positionId" gorm:"column:cargo_id"`

	Status         *Status         `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	EducationLevel *EducationLevel `json:"educationLevel,omitempty" gorm:"foreignKey:EducationLevelID"`
	Department     *Department     `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Position       *Position       `json:"position,omitempty" gorm:"foreignKey:PositionID"`
}

// TableName maps Employee to its table
func (Employee) TableName() string { return "empleado" }

// FullName joins first and last names
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstNames + " " + e.LastNames)
}

// HasPassword reports whether a credential hash is stored
func (e *Employee) HasPassword() bool {
	return e.PasswordHash != nil && *e.PasswordHash != ""
}

// EmailValue returns the email or an empty string
func (e *Employee) EmailValue() string {
	if e.Email == nil {
		return ""
	}
	return *e.Email
}

// EmployeeRow represents one coerced spreadsheet row of the employee import
type EmployeeRow struct {
	Documento           int64
	FirstNames          string
	LastNames           string
	BirthDate           *time.Time
	Address             string
	Phone               string
	Email               string
	PositionName        string
	Salary              decimal.NullDecimal
	HireDate            *time.Time
	StatusName          string
	EducationLevelName  string
	ProfessionalProfile string
	DepartmentName      string
}

// EmployeeRequest is the body accepted by the employee create and update endpoints
type EmployeeRequest struct {
	Documento           int64            `json:"documento"`
	FirstNames          string           `json:"firstNames"`
	LastNames           string           `json:"lastNames"`
	BirthDate           string           `json:"birthDate"`
	Address             string           `json:"address"`
	Phone               string           `json:"phone"`
	Email               string           `json:"email"`
	Salary              *decimal.Decimal `json:"salary"`
	HireDate            string           `json:"hireDate"`
	ProfessionalProfile string           `json:"professionalProfile"`
	Password            string           `json:"password,omitempty"`
	StatusID            int              `json:"statusId"`
	EducationLevelID    int              `json:"educationLevelId"`
	DepartmentID        int              `json:"departmentId"`
	PositionID          int              `json:"positionId"`
}

// StatusName returns the loaded status name or ""
func (e *Employee) StatusName() string {
	if e.Status == nil {
		return ""
	}
	return e.Status.Name
}

// DepartmentName returns the loaded department name or ""
func (e *Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}

// PositionName returns the loaded position name or ""
func (e *Employee) PositionName() string {
	if e.Position == nil {
		return ""
	}
	return e.Position.Name
}

// EducationLevelName returns the loaded education level name or ""
func (e *Employee) EducationLevelName() string {
	if e.EducationLevel == nil {
		return ""
	}
	return e.EducationLevel.Name
}
