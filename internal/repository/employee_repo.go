package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/hr-records-api/internal/database"
	"github.com/hr-records-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const streamBatchSize = 500

// employeeRepo is the concrete implementation of EmployeeRepository
type employeeRepo struct {
	*gormRepo[models.Employee]
}

// NewEmployeeRepo creates a new employee repository
func NewEmployeeRepo(db *database.DB) EmployeeRepository {
	return &employeeRepo{gormRepo: newGormRepo[models.Employee](db.Gorm)}
}

func (r *employeeRepo) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Status").
		Preload("EducationLevel").
		Preload("Department").
		Preload("Position")
}

// Add inserts an employee without touching the lookup tables
func (r *employeeRepo) Add(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(employee).Error
}

// Update writes every employee column without touching the lookup tables
func (r *employeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(employee).Error
}

// GetWithDetails retrieves one employee with its four lookups loaded
func (r *employeeRepo) GetWithDetails(ctx context.Context, documento int64) (*models.Employee, error) {
	var employee models.Employee
	err := r.withDetails(ctx).First(&employee, documento).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetAllWithDetails retrieves every employee with lookups loaded
func (r *employeeRepo) GetAllWithDetails(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := r.withDetails(ctx).Order("apellidos, nombres").Find(&out).Error
	return out, err
}

// GetByEmail retrieves an employee by case-insensitive email
func (r *employeeRepo) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// EmailInUse reports whether another employee already owns the email
func (r *employeeRepo) EmailInUse(ctx context.Context, email string, excludeDocumento int64) (bool, error) {
	return r.Exists(ctx, "LOWER(email) = LOWER(?) AND documento <> ?", email, excludeDocumento)
}

// GetEmailIndex maps every stored lowercase email to its owner (for import validation)
func (r *employeeRepo) GetEmailIndex(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Documento int64
		Email     string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Select("documento", "email").
		Where("email IS NOT NULL").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	index := make(map[string]int64, len(rows))
	for _, row := range rows {
		index[strings.ToLower(row.Email)] = row.Documento
	}
	return index, nil
}

// ListWithoutPassword retrieves employees that have no credential hash
func (r *employeeRepo) ListWithoutPassword(ctx context.Context) ([]models.Employee, error) {
	return r.Find(ctx, "password_hash IS NULL OR password_hash = ''")
}

// SaveBatch persists all inserts and updates of an import in one transaction
func (r *employeeRepo) SaveBatch(ctx context.Context, inserts, updates []*models.Employee) error {
	if len(inserts) == 0 && len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(inserts) > 0 {
			if err := tx.Omit(clause.Associations).CreateInBatches(inserts, streamBatchSize).Error; err != nil {
				return err
			}
		}
		for _, employee := range updates {
			if err := tx.Omit(clause.Associations).Save(employee).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// StreamAll streams every employee with lookups loaded (for export)
func (r *employeeRepo) StreamAll(ctx context.Context, callback func(*models.Employee) error) error {
	var batch []models.Employee
	result := r.withDetails(ctx).
		Order("documento").
		FindInBatches(&batch, streamBatchSize, func(tx *gorm.DB, _ int) error {
			for i := range batch {
				if err := callback(&batch[i]); err != nil {
					return err
				}
			}
			return nil
		})
	return result.Error
}
