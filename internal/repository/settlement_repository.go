package repository

import (
	"context"

	"github.com/rentora/rentora-api/internal/models"
	"gorm.io/gorm"
)

// SettlementRepository reads persisted settlement records. Writes happen
// inside the confirmation transaction, never through this interface.
type SettlementRepository interface {
	FindByLease(ctx context.Context, leaseID uint) (*models.Settlement, error)
}

type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *gorm.DB) SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) FindByLease(ctx context.Context, leaseID uint) (*models.Settlement, error) {
	var settlement models.Settlement
	err := r.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		First(&settlement).Error
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}
