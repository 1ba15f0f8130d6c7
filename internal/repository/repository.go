package repository

import (
	"context"

	"github.com/hr-records-api/internal/database"
	"github.com/hr-records-api/internal/models"
)

// Repository defines the data operations shared by every entity.
// Find and Exists take a SQL predicate with ? placeholders.
type Repository[T any] interface {
	GetByID(ctx context.Context, id any) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Find(ctx context.Context, query string, args ...any) ([]T, error)
	Add(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	Exists(ctx context.Context, query string, args ...any) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// EmployeeRepository adds eager-loading and batch operations for employees
type EmployeeRepository interface {
	Repository[models.Employee]
	GetWithDetails(ctx context.Context, documento int64) (*models.Employee, error)
	GetAllWithDetails(ctx context.Context) ([]models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	EmailInUse(ctx context.Context, email string, excludeDocumento int64) (bool, error)
	GetEmailIndex(ctx context.Context) (map[string]int64, error)
	ListWithoutPassword(ctx context.Context) ([]models.Employee, error)
	SaveBatch(ctx context.Context, inserts, updates []*models.Employee) error
	StreamAll(ctx context.Context, callback func(*models.Employee) error) error
}

// AdminRepository defines the data operations for administrator accounts
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// QueryRepository executes ad-hoc read-only SQL
type QueryRepository interface {
	RunReadOnly(ctx context.Context, query string) ([]map[string]any, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Statuses        Repository[models.Status]
	Departments     Repository[models.Department]
	Positions       Repository[models.Position]
	EducationLevels Repository[models.EducationLevel]
	Employees       EmployeeRepository
	Admins          AdminRepository
	Query           QueryRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Statuses:        NewRepo[models.Status](db),
		Departments:     NewRepo[models.Department](db),
		Positions:       NewRepo[models.Position](db),
		EducationLevels: NewRepo[models.EducationLevel](db),
		Employees:       NewEmployeeRepo(db),
		Admins:          NewAdminRepo(db),
		Query:           NewQueryRepo(db),
	}
}
