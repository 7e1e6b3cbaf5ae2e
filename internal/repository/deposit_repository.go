package repository

import (
	"context"

	"github.com/rentora/rentora-api/internal/models"
	"gorm.io/gorm"
)

// DepositRepository defines the interface for security deposit data access
type DepositRepository interface {
	FindByLease(ctx context.Context, leaseID uint) (*models.SecurityDeposit, error)
	Create(ctx context.Context, deposit *models.SecurityDeposit) error
}

type depositRepository struct {
	db *gorm.DB
}

// NewDepositRepository creates a new security deposit repository
func NewDepositRepository(db *gorm.DB) DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) FindByLease(ctx context.Context, leaseID uint) (*models.SecurityDeposit, error) {
	var deposit models.SecurityDeposit
	err := r.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		First(&deposit).Error
	if err != nil {
		return nil, err
	}
	return &deposit, nil
}

func (r *depositRepository) Create(ctx context.Context, deposit *models.SecurityDeposit) error {
	return r.db.WithContext(ctx).Create(deposit).Error
}
