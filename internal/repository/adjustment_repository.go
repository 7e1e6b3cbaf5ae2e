package repository

import (
	"context"

	"github.com/rentora/rentora-api/internal/models"
	"gorm.io/gorm"
)

// AdjustmentRepository defines the interface for rent adjustment data access
type AdjustmentRepository interface {
	FindByLease(ctx context.Context, leaseID uint) ([]models.RentAdjustment, error)
	Create(ctx context.Context, adjustment *models.RentAdjustment) error
}

type adjustmentRepository struct {
	db *gorm.DB
}

// NewAdjustmentRepository creates a new rent adjustment repository
func NewAdjustmentRepository(db *gorm.DB) AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

// FindByLease returns the lease's adjustments in effective-date order, the
// order the invoice generator consumes them in.
func (r *adjustmentRepository) FindByLease(ctx context.Context, leaseID uint) ([]models.RentAdjustment, error) {
	var adjustments []models.RentAdjustment
	err := r.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Order("effective_date ASC").
		Find(&adjustments).Error
	return adjustments, err
}

func (r *adjustmentRepository) Create(ctx context.Context, adjustment *models.RentAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}
