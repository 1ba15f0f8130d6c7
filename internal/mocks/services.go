package mocks

import (
	"context"
	"io"
	"net/http"

	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/service"
)

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	Result   *models.ImportResult
	Payloads [][]byte
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func (m *MockImportService) ImportEmployees(ctx context.Context, r io.Reader) *models.ImportResult {
	data, _ := io.ReadAll(r)
	m.Payloads = append(m.Payloads, data)
	if m.Result != nil {
		return m.Result
	}
	return &models.ImportResult{Success: true, Message: "Import completed. Inserted: 0, Updated: 0, Errors: 0", Errors: []string{}}
}

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	Result    *models.QueryResult
	Questions []string
}

// Verify interface compliance
var _ service.DashboardService = (*MockDashboardService)(nil)

func (m *MockDashboardService) Query(ctx context.Context, question string) *models.QueryResult {
	m.Questions = append(m.Questions, question)
	return m.Result
}

// MockEmployeeService is a mock implementation of EmployeeService
type MockEmployeeService struct {
	Employees   map[int64]*models.Employee
	Err         error
	Regenerated int
	Resume      []byte
	Principals  []*models.Principal
}

// Verify interface compliance
var _ service.EmployeeService = (*MockEmployeeService)(nil)

func NewMockEmployeeService(employees ...*models.Employee) *MockEmployeeService {
	m := &MockEmployeeService{Employees: make(map[int64]*models.Employee)}
	for _, e := range employees {
		m.Employees[e.Documento] = e
	}
	return m
}

func (m *MockEmployeeService) List(ctx context.Context, principal *models.Principal) ([]models.Employee, error) {
	m.Principals = append(m.Principals, principal)
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Employee, 0, len(m.Employees))
	for _, e := range m.Employees {
		out = append(out, *e)
	}
	return out, nil
}

func (m *MockEmployeeService) Get(ctx context.Context, principal *models.Principal, documento int64) (*models.Employee, error) {
	m.Principals = append(m.Principals, principal)
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Employees[documento]
	if !ok {
		return nil, service.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *MockEmployeeService) Create(ctx context.Context, req *models.EmployeeRequest) (*models.Employee, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	e := &models.Employee{Documento: req.Documento, FirstNames: req.FirstNames, LastNames: req.LastNames}
	m.Employees[e.Documento] = e
	return e, nil
}

func (m *MockEmployeeService) Update(ctx context.Context, documento int64, req *models.EmployeeRequest) (*models.Employee, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Employees[documento]
	if !ok {
		return nil, service.ErrEmployeeNotFound
	}
	e.FirstNames = req.FirstNames
	e.LastNames = req.LastNames
	return e, nil
}

func (m *MockEmployeeService) Delete(ctx context.Context, documento int64) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Employees[documento]; !ok {
		return service.ErrEmployeeNotFound
	}
	delete(m.Employees, documento)
	return nil
}

func (m *MockEmployeeService) WriteResume(ctx context.Context, principal *models.Principal, documento int64, w io.Writer) error {
	if _, err := m.Get(ctx, principal, documento); err != nil {
		return err
	}
	_, err := w.Write(m.Resume)
	return err
}

func (m *MockEmployeeService) RegeneratePasswords(ctx context.Context) (int, error) {
	return m.Regenerated, m.Err
}

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	Items map[models.CatalogKind][]models.CatalogItem
	Err   error
}

// Verify interface compliance
var _ service.CatalogService = (*MockCatalogService)(nil)

func (m *MockCatalogService) List(ctx context.Context, kind models.CatalogKind) ([]models.CatalogItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if !kind.Valid() {
		return nil, service.ErrUnknownCatalog
	}
	return m.Items[kind], nil
}

func (m *MockCatalogService) Get(ctx context.Context, kind models.CatalogKind, id int) (*models.CatalogItem, error) {
	items, err := m.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, service.ErrCatalogNotFound
}

func (m *MockCatalogService) Create(ctx context.Context, kind models.CatalogKind, name string) (*models.CatalogItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Items == nil {
		m.Items = make(map[models.CatalogKind][]models.CatalogItem)
	}
	item := models.CatalogItem{ID: len(m.Items[kind]) + 1, Name: name}
	m.Items[kind] = append(m.Items[kind], item)
	return &item, nil
}

func (m *MockCatalogService) Update(ctx context.Context, kind models.CatalogKind, id int, name string) (*models.CatalogItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.CatalogItem{ID: id, Name: name}, nil
}

func (m *MockCatalogService) Delete(ctx context.Context, kind models.CatalogKind, id int) error {
	return m.Err
}

// MockAuthService is a mock implementation of AuthService. Tokens map to principals.
type MockAuthService struct {
	Tokens   map[string]*models.Principal
	Response *models.AuthResponse
	Err      error
}

// Verify interface compliance
var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Tokens: map[string]*models.Principal{
			"admin-token":    {Subject: "admin-1", Email: "admin@example.com", Name: "Admin", Role: models.RoleAdmin},
			"employee-token": {Subject: "1001", Email: "ana@example.com", Name: "Ana Gómez", Role: models.RoleEmployee},
		},
	}
}

func (m *MockAuthService) RegisterAdmin(ctx context.Context, req *models.AdminRegisterRequest) (*models.AuthResponse, error) {
	return m.Response, m.Err
}

func (m *MockAuthService) LoginAdmin(ctx context.Context, req *models.AdminLoginRequest) (*models.AuthResponse, error) {
	return m.Response, m.Err
}

func (m *MockAuthService) LoginEmployee(ctx context.Context, req *models.EmployeeLoginRequest) (*models.AuthResponse, error) {
	return m.Response, m.Err
}

func (m *MockAuthService) Authenticate(token string) (*models.Principal, error) {
	principal, ok := m.Tokens[token]
	if !ok {
		return nil, service.ErrInvalidCredentials
	}
	return principal, nil
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	StreamFunc func(ctx context.Context, w http.ResponseWriter, format string) error
	Counts     map[string]int64
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func (m *MockExportService) StreamEmployees(ctx context.Context, w http.ResponseWriter, format string) error {
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, w, format)
	}
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write([]byte("[]"))
	return err
}

func (m *MockExportService) GetCount(ctx context.Context, resource string) (int64, error) {
	return m.Counts[resource], nil
}

// MockMailService records queued welcome emails
type MockMailService struct {
	Welcomed []int64
}

// Verify interface compliance
var _ service.MailService = (*MockMailService)(nil)

func (m *MockMailService) Start(ctx context.Context) {}
func (m *MockMailService) Stop()                    {}

func (m *MockMailService) SendWelcome(employee *models.Employee, password string) bool {
	m.Welcomed = append(m.Welcomed, employee.Documento)
	return true
}
