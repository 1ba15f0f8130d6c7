package models

import (
	"time"
)

// Roles carried in access tokens
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
)

// Admin represents an administrator account
type Admin struct {
	ID           string    `json:"id" gorm:"column:id;primaryKey"`
	Email        string    `json:"email" gorm:"column:email"`
	FullName     string    `json:"fullName" gorm:"column:full_name"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
}

// TableName maps Admin to its table
func (Admin) TableName() string { return "administrador" }

// AdminRegisterRequest is the body of POST /api/auth/admin/register
type AdminRegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// AdminLoginRequest is the body of POST /api/auth/admin/login
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmployeeLoginRequest is the body of POST /api/auth/employee-login
type EmployeeLoginRequest struct {
	Documento int64  `json:"documento"`
	Password  string `json:"password"`
}

// AuthResponse is returned by every successful login or registration
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
}

// Principal identifies the caller of an authenticated request
type Principal struct {
	Subject string
	Email   string
	Name    string
	Role    string
}

// IsAdmin reports whether the caller holds the Admin role
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
