package service

import (
	"context"
	"io"
	"net/http"

	"github.com/hr-records-api/internal/ai"
	"github.com/hr-records-api/internal/auth"
	"github.com/hr-records-api/internal/cache"
	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/internal/mail"
	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/repository"
	"github.com/hr-records-api/internal/resume"
	"github.com/rs/zerolog"
)

// ImportService defines the interface for spreadsheet imports
type ImportService interface {
	ImportEmployees(ctx context.Context, r io.Reader) *models.ImportResult
}

// DashboardService defines the interface for natural-language queries
type DashboardService interface {
	Query(ctx context.Context, question string) *models.QueryResult
}

// EmployeeService defines the interface for employee management
type EmployeeService interface {
	List(ctx context.Context, principal *models.Principal) ([]models.Employee, error)
	Get(ctx context.Context, principal *models.Principal, documento int64) (*models.Employee, error)
	Create(ctx context.Context, req *models.EmployeeRequest) (*models.Employee, error)
	Update(ctx context.Context, documento int64, req *models.EmployeeRequest) (*models.Employee, error)
	Delete(ctx context.Context, documento int64) error
	WriteResume(ctx context.Context, principal *models.Principal, documento int64, w io.Writer) error
	RegeneratePasswords(ctx context.Context) (int, error)
}

// CatalogService defines the interface for the lookup tables
type CatalogService interface {
	List(ctx context.Context, kind models.CatalogKind) ([]models.CatalogItem, error)
	Get(ctx context.Context, kind models.CatalogKind, id int) (*models.CatalogItem, error)
	Create(ctx context.Context, kind models.CatalogKind, name string) (*models.CatalogItem, error)
	Update(ctx context.Context, kind models.CatalogKind, id int, name string) (*models.CatalogItem, error)
	Delete(ctx context.Context, kind models.CatalogKind, id int) error
}

// AuthService defines the interface for authentication
type AuthService interface {
	RegisterAdmin(ctx context.Context, req *models.AdminRegisterRequest) (*models.AuthResponse, error)
	LoginAdmin(ctx context.Context, req *models.AdminLoginRequest) (*models.AuthResponse, error)
	LoginEmployee(ctx context.Context, req *models.EmployeeLoginRequest) (*models.AuthResponse, error)
	Authenticate(token string) (*models.Principal, error)
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamEmployees(ctx context.Context, w http.ResponseWriter, format string) error
	GetCount(ctx context.Context, resource string) (int64, error)
}

// MailService defines the interface for background mail delivery
type MailService interface {
	Start(ctx context.Context)
	Stop()
	SendWelcome(employee *models.Employee, password string) bool
}

// Dependencies are the collaborators shared by the services
type Dependencies struct {
	Generator ai.Generator
	Cache     cache.Cache
	Mailer    mail.Sender
	Hasher    auth.Hasher
	Tokens    *auth.TokenManager
	Resume    *resume.Renderer
}

// Services holds all service interfaces
type Services struct {
	Import    ImportService
	Dashboard DashboardService
	Employee  EmployeeService
	Catalog   CatalogService
	Auth      AuthService
	Export    ExportService
	Mail      MailService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, deps Dependencies, cfg *config.Config, log zerolog.Logger) *Services {
	if deps.Cache == nil {
		deps.Cache = cache.Nop{}
	}
	if deps.Hasher == nil {
		deps.Hasher = auth.BcryptHasher{}
	}
	if deps.Resume == nil {
		deps.Resume = resume.NewRenderer()
	}
	if deps.Mailer == nil {
		deps.Mailer = mail.NewLogSender(log)
	}

	mailSvc := newMailService(deps.Mailer, cfg.SMTP, log)

	return &Services{
		Import:    newImportService(repos, deps.Hasher, log),
		Dashboard: newDashboardService(repos.Query, deps.Generator, cfg.AI, log),
		Employee:  newEmployeeService(repos, deps.Hasher, deps.Resume, mailSvc, log),
		Catalog:   newCatalogService(repos, deps.Cache, cfg.Redis.TTL, log),
		Auth:      newAuthService(repos, deps.Hasher, deps.Tokens, log),
		Export:    newExportService(repos, log),
		Mail:      mailSvc,
	}
}
