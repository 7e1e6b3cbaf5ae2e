package repository

import (
	"context"
	"time"

	"github.com/rentora/rentora-api/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindActiveByLease(ctx context.Context, leaseID uint) ([]models.Payment, error)
	SumActiveByLease(ctx context.Context, leaseID uint) (float64, error)
	Create(ctx context.Context, payment *models.Payment) error
	SoftDelete(ctx context.Context, id uint, reason string) error
	List(ctx context.Context, query *PaymentQuery) ([]models.Payment, int64, error)
}

// PaymentQuery extends ListQuery with payment-specific filters
type PaymentQuery struct {
	*ListQuery
	LeaseID        uint
	TenantID       uint
	IncludeDeleted bool
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindActiveByLease returns the lease's payments excluding soft-deleted
// ones. Only these rows feed allocation.
func (r *paymentRepository) FindActiveByLease(ctx context.Context, leaseID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("lease_id = ? AND deleted_at IS NULL", leaseID).
		Order("payment_date ASC, created_at ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) SumActiveByLease(ctx context.Context, leaseID uint) (float64, error) {
	var result struct {
		Total float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("lease_id = ? AND deleted_at IS NULL", leaseID).
		Scan(&result).Error
	return result.Total, err
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// SoftDelete marks a payment excluded from future allocation without
// removing the row; the audit reason is mandatory.
func (r *paymentRepository) SoftDelete(ctx context.Context, id uint, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"deleted_at":    now,
			"delete_reason": reason,
		}).Error
}

func (r *paymentRepository) List(ctx context.Context, query *PaymentQuery) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Payment{})

	if query.LeaseID != 0 {
		db = db.Where("lease_id = ?", query.LeaseID)
	}
	if query.TenantID != 0 {
		db = db.Where("tenant_id = ?", query.TenantID)
	}
	if !query.IncludeDeleted {
		db = db.Where("deleted_at IS NULL")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.
		Joins("Tenant").
		Order("payment_date DESC, payments.created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&payments).Error

	return payments, total, err
}
