package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/repository"
)

// catalog constrains PT to the pointer type of a lookup entity
type catalog[T any] interface {
	*T
	models.Catalog
}

// MockCatalogRepository is a map-backed mock of Repository for a lookup entity
type MockCatalogRepository[T any, PT catalog[T]] struct {
	Items       map[int]*T
	NextID      int
	AddError    error
	UpdateError error
	DeleteError error
	GetAllError error
	GetAllCalls int
	FindFunc    func(ctx context.Context, query string, args ...any) ([]T, error)
	setID       func(*T, int)
}

// Verify interface compliance
var (
	_ repository.Repository[models.Status]         = (*MockCatalogRepository[models.Status, *models.Status])(nil)
	_ repository.Repository[models.Department]     = (*MockCatalogRepository[models.Department, *models.Department])(nil)
	_ repository.Repository[models.Position]       = (*MockCatalogRepository[models.Position, *models.Position])(nil)
	_ repository.Repository[models.EducationLevel] = (*MockCatalogRepository[models.EducationLevel, *models.EducationLevel])(nil)
)

func newMockCatalogRepository[T any, PT catalog[T]](setID func(*T, int), items []T) *MockCatalogRepository[T, PT] {
	m := &MockCatalogRepository[T, PT]{
		Items:  make(map[int]*T),
		NextID: 1,
		setID:  setID,
	}
	for i := range items {
		item := items[i]
		id := PT(&item).GetID()
		m.Items[id] = &item
		if id >= m.NextID {
			m.NextID = id + 1
		}
	}
	return m
}

func NewMockStatusRepository(items ...models.Status) *MockCatalogRepository[models.Status, *models.Status] {
	return newMockCatalogRepository[models.Status](func(s *models.Status, id int) { s.ID = id }, items)
}

func NewMockDepartmentRepository(items ...models.Department) *MockCatalogRepository[models.Department, *models.Department] {
	return newMockCatalogRepository[models.Department](func(d *models.Department, id int) { d.ID = id }, items)
}

func NewMockPositionRepository(items ...models.Position) *MockCatalogRepository[models.Position, *models.Position] {
	return newMockCatalogRepository[models.Position](func(p *models.Position, id int) { p.ID = id }, items)
}

func NewMockEducationLevelRepository(items ...models.EducationLevel) *MockCatalogRepository[models.EducationLevel, *models.EducationLevel] {
	return newMockCatalogRepository[models.EducationLevel](func(l *models.EducationLevel, id int) { l.ID = id }, items)
}

func (m *MockCatalogRepository[T, PT]) GetByID(ctx context.Context, id any) (*T, error) {
	key, ok := toInt(id)
	if !ok {
		return nil, nil
	}
	item, ok := m.Items[key]
	if !ok {
		return nil, nil
	}
	c := *item
	return &c, nil
}

func (m *MockCatalogRepository[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	m.GetAllCalls++
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	ids := make([]int, 0, len(m.Items))
	for id := range m.Items {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.Items[id])
	}
	return out, nil
}

// Find matches the LOWER(name) = LOWER(?) predicate used for name checks
func (m *MockCatalogRepository[T, PT]) Find(ctx context.Context, query string, args ...any) ([]T, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, query, args...)
	}
	if len(args) == 0 {
		return nil, nil
	}
	name, _ := args[0].(string)

	var out []T
	for _, item := range m.Items {
		if strings.EqualFold(PT(item).GetName(), name) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *MockCatalogRepository[T, PT]) Add(ctx context.Context, entity *T) error {
	if m.AddError != nil {
		return m.AddError
	}
	m.setID(entity, m.NextID)
	m.NextID++
	c := *entity
	m.Items[PT(entity).GetID()] = &c
	return nil
}

func (m *MockCatalogRepository[T, PT]) Update(ctx context.Context, entity *T) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	c := *entity
	m.Items[PT(entity).GetID()] = &c
	return nil
}

func (m *MockCatalogRepository[T, PT]) Delete(ctx context.Context, entity *T) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Items, PT(entity).GetID())
	return nil
}

func (m *MockCatalogRepository[T, PT]) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	found, err := m.Find(ctx, query, args...)
	return len(found) > 0, err
}

func (m *MockCatalogRepository[T, PT]) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Items)), nil
}

// MockEmployeeRepository is a map-backed mock implementation of EmployeeRepository.
// Reads return copies so unsaved changes never leak into storage.
type MockEmployeeRepository struct {
	Employees      map[int64]*models.Employee
	AddError       error
	UpdateError    error
	GetByIDError   error
	SaveBatchFunc  func(ctx context.Context, inserts, updates []*models.Employee) error
	SaveBatchCalls int
	GetByIDCalls   int
}

// Verify interface compliance
var _ repository.EmployeeRepository = (*MockEmployeeRepository)(nil)

func NewMockEmployeeRepository(employees ...*models.Employee) *MockEmployeeRepository {
	m := &MockEmployeeRepository{Employees: make(map[int64]*models.Employee)}
	for _, e := range employees {
		c := *e
		m.Employees[e.Documento] = &c
	}
	return m
}

func (m *MockEmployeeRepository) get(documento int64) *models.Employee {
	e, ok := m.Employees[documento]
	if !ok {
		return nil
	}
	c := *e
	return &c
}

func (m *MockEmployeeRepository) sorted() []models.Employee {
	keys := make([]int64, 0, len(m.Employees))
	for k := range m.Employees {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]models.Employee, 0, len(keys))
	for _, k := range keys {
		out = append(out, *m.Employees[k])
	}
	return out
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id any) (*models.Employee, error) {
	m.GetByIDCalls++
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	documento, ok := toInt64(id)
	if !ok {
		return nil, nil
	}
	return m.get(documento), nil
}

func (m *MockEmployeeRepository) GetAll(ctx context.Context) ([]models.Employee, error) {
	return m.sorted(), nil
}

// Find supports the password_hash predicate; anything else returns every employee
func (m *MockEmployeeRepository) Find(ctx context.Context, query string, args ...any) ([]models.Employee, error) {
	if strings.Contains(query, "password_hash") {
		return m.ListWithoutPassword(ctx)
	}
	return m.sorted(), nil
}

func (m *MockEmployeeRepository) Add(ctx context.Context, employee *models.Employee) error {
	if m.AddError != nil {
		return m.AddError
	}
	c := *employee
	m.Employees[employee.Documento] = &c
	return nil
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	c := *employee
	m.Employees[employee.Documento] = &c
	return nil
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, employee *models.Employee) error {
	delete(m.Employees, employee.Documento)
	return nil
}

// Exists supports the documento = ? predicate
func (m *MockEmployeeRepository) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	documento, ok := toInt64(args[0])
	if !ok {
		return false, nil
	}
	_, exists := m.Employees[documento]
	return exists, nil
}

func (m *MockEmployeeRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Employees)), nil
}

func (m *MockEmployeeRepository) GetWithDetails(ctx context.Context, documento int64) (*models.Employee, error) {
	return m.get(documento), nil
}

func (m *MockEmployeeRepository) GetAllWithDetails(ctx context.Context) ([]models.Employee, error) {
	return m.sorted(), nil
}

func (m *MockEmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	for _, e := range m.Employees {
		if strings.EqualFold(e.EmailValue(), email) {
			c := *e
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MockEmployeeRepository) EmailInUse(ctx context.Context, email string, excludeDocumento int64) (bool, error) {
	for _, e := range m.Employees {
		if e.Documento != excludeDocumento && strings.EqualFold(e.EmailValue(), email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockEmployeeRepository) GetEmailIndex(ctx context.Context) (map[string]int64, error) {
	index := make(map[string]int64)
	for _, e := range m.Employees {
		if email := e.EmailValue(); email != "" {
			index[strings.ToLower(email)] = e.Documento
		}
	}
	return index, nil
}

func (m *MockEmployeeRepository) ListWithoutPassword(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	for _, e := range m.sorted() {
		if !e.HasPassword() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockEmployeeRepository) SaveBatch(ctx context.Context, inserts, updates []*models.Employee) error {
	m.SaveBatchCalls++
	if m.SaveBatchFunc != nil {
		return m.SaveBatchFunc(ctx, inserts, updates)
	}
	for _, e := range inserts {
		c := *e
		m.Employees[e.Documento] = &c
	}
	for _, e := range updates {
		c := *e
		m.Employees[e.Documento] = &c
	}
	return nil
}

func (m *MockEmployeeRepository) StreamAll(ctx context.Context, callback func(*models.Employee) error) error {
	for _, e := range m.sorted() {
		if err := callback(&e); err != nil {
			return err
		}
	}
	return nil
}

// MockAdminRepository is a mock implementation of AdminRepository
type MockAdminRepository struct {
	Admins      map[string]*models.Admin
	CreateError error
}

// Verify interface compliance
var _ repository.AdminRepository = (*MockAdminRepository)(nil)

func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{Admins: make(map[string]*models.Admin)}
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	c := *admin
	m.Admins[strings.ToLower(admin.Email)] = &c
	return nil
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin, ok := m.Admins[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	c := *admin
	return &c, nil
}

func (m *MockAdminRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, exists := m.Admins[strings.ToLower(email)]
	return exists, nil
}

// MockQueryRepository records executed queries
type MockQueryRepository struct {
	Rows          []map[string]any
	Error         error
	Queries       []string
	RunReadOnlyFn func(ctx context.Context, query string) ([]map[string]any, error)
}

// Verify interface compliance
var _ repository.QueryRepository = (*MockQueryRepository)(nil)

func (m *MockQueryRepository) RunReadOnly(ctx context.Context, query string) ([]map[string]any, error) {
	m.Queries = append(m.Queries, query)
	if m.RunReadOnlyFn != nil {
		return m.RunReadOnlyFn(ctx, query)
	}
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Rows, nil
}

// SeededRepositories returns mock repositories holding the default lookup rows
func SeededRepositories() (*repository.Repositories, *MockEmployeeRepository, *MockQueryRepository) {
	employees := NewMockEmployeeRepository()
	queries := &MockQueryRepository{}
	repos := &repository.Repositories{
		Statuses: NewMockStatusRepository(
			models.Status{ID: 1, Name: "Activo"},
			models.Status{ID: 2, Name: "Inactivo"},
			models.Status{ID: 3, Name: "Vacaciones"},
		),
		Departments: NewMockDepartmentRepository(
			models.Department{ID: 1, Name: "Recursos Humanos"},
			models.Department{ID: 2, Name: "Tecnología"},
			models.Department{ID: 3, Name: "Ventas"},
		),
		Positions: NewMockPositionRepository(
			models.Position{ID: 1, Name: "Ingeniero"},
			models.Position{ID: 5, Name: "Desarrollador"},
		),
		EducationLevels: NewMockEducationLevelRepository(
			models.EducationLevel{ID: 1, Name: "Bachiller"},
			models.EducationLevel{ID: 4, Name: "Profesional"},
		),
		Employees: employees,
		Admins:    NewMockAdminRepository(),
		Query:     queries,
	}
	return repos, employees, queries
}

func toInt(id any) (int, bool) {
	switch v := id.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	}
	return 0, false
}

func toInt64(id any) (int64, bool) {
	switch v := id.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	}
	return 0, false
}
