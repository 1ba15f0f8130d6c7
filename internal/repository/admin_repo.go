package repository

import (
	"context"
	"errors"

	"github.com/hr-records-api/internal/database"
	"github.com/hr-records-api/internal/models"
	"gorm.io/gorm"
)

// adminRepo is the concrete implementation of AdminRepository
type adminRepo struct {
	db *gorm.DB
}

// NewAdminRepo creates a new administrator repository
func NewAdminRepo(db *database.DB) AdminRepository {
	return &adminRepo{db: db.Gorm}
}

// Create inserts a new administrator
func (r *adminRepo) Create(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// GetByEmail retrieves an administrator by case-insensitive email
func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// EmailExists checks if an administrator with the given email exists
func (r *adminRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}
