package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hr-records-api/internal/auth"
	"github.com/hr-records-api/internal/database"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/repository"
	"github.com/hr-records-api/internal/validation"
	"github.com/rs/zerolog"
)

const minPasswordLength = 8

// authService is the concrete implementation of AuthService
type authService struct {
	repos  *repository.Repositories
	hasher auth.Hasher
	tokens *auth.TokenManager
	log    zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(repos *repository.Repositories, hasher auth.Hasher, tokens *auth.TokenManager, log zerolog.Logger) *authService {
	return &authService{
		repos:  repos,
		hasher: hasher,
		tokens: tokens,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// RegisterAdmin creates an administrator account and signs it in
func (s *authService) RegisterAdmin(ctx context.Context, req *models.AdminRegisterRequest) (*models.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	fullName := strings.TrimSpace(req.FullName)

	var problems []string
	if !validation.IsEmail(email) {
		problems = append(problems, "a valid email is required")
	}
	if fullName == "" {
		problems = append(problems, "full name is required")
	}
	if len(req.Password) < minPasswordLength {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRegistration, strings.Join(problems, ", "))
	}

	exists, err := s.repos.Admins.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repos.Admins.Create(ctx, admin); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info().Str("admin_id", admin.ID).Msg("Administrator registered")
	return s.issue(admin.ID, admin.Email, admin.FullName, models.RoleAdmin, "Registration successful.")
}

// LoginAdmin verifies administrator credentials
func (s *authService) LoginAdmin(ctx context.Context, req *models.AdminLoginRequest) (*models.AuthResponse, error) {
	admin, err := s.repos.Admins.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}
	if admin == nil || !s.hasher.Compare(admin.PasswordHash, req.Password) {
		s.log.Warn().Str("email", req.Email).Msg("Failed administrator login")
		return nil, ErrInvalidCredentials
	}
	return s.issue(admin.ID, admin.Email, admin.FullName, models.RoleAdmin, "Login successful.")
}

// LoginEmployee verifies an employee's document id and password
func (s *authService) LoginEmployee(ctx context.Context, req *models.EmployeeLoginRequest) (*models.AuthResponse, error) {
	employee, err := s.repos.Employees.GetByID(ctx, req.Documento)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrInvalidCredentials
	}
	if !employee.HasPassword() {
		return nil, ErrNoPassword
	}
	if !s.hasher.Compare(*employee.PasswordHash, req.Password) {
		s.log.Warn().Int64("documento", req.Documento).Msg("Failed employee login")
		return nil, ErrInvalidCredentials
	}

	subject := strconv.FormatInt(employee.Documento, 10)
	return s.issue(subject, employee.EmailValue(), employee.FullName(), models.RoleEmployee, "Login successful.")
}

// Authenticate turns a bearer token into the caller's principal
func (s *authService) Authenticate(token string) (*models.Principal, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	return &models.Principal{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Role:    claims.Role,
	}, nil
}

func (s *authService) issue(subject, email, name, role, message string) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(subject, email, name, role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      role,
		Name:      name,
		Email:     email,
		Message:   message,
	}, nil
}
