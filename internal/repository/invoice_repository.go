package repository

import (
	"context"

	"github.com/rentora/rentora-api/internal/models"
	"gorm.io/gorm"
)

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	FindByLease(ctx context.Context, leaseID uint) ([]models.Invoice, error)
	ReplaceForLease(ctx context.Context, leaseID uint, invoices []models.Invoice) error
	UpdateAllocation(ctx context.Context, id uint, paidAmount float64, status string) error
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) FindByLease(ctx context.Context, leaseID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Where("lease_id = ?", leaseID).
		Order("year ASC, month ASC").
		Find(&invoices).Error
	return invoices, err
}

// ReplaceForLease destructively swaps the lease's invoices for a freshly
// generated set. Regeneration is idempotent-from-scratch; the delete and the
// insert share one transaction so a failure never leaves a half-billed lease.
func (r *invoiceRepository) ReplaceForLease(ctx context.Context, leaseID uint, invoices []models.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lease_id = ?", leaseID).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		if len(invoices) == 0 {
			return nil
		}
		return tx.Create(&invoices).Error
	})
}

// UpdateAllocation writes the reconciled paid amount and status for one
// invoice. Callers only invoke it for rows that drifted beyond the epsilon.
func (r *invoiceRepository) UpdateAllocation(ctx context.Context, id uint, paidAmount float64, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"paid_amount": paidAmount,
			"status":      status,
		}).Error
}
