package repository

import (
	"context"
	"time"

	"github.com/rentora/rentora-api/internal/models"
	"gorm.io/gorm"
)

// LeaseRepository defines the interface for lease data access
type LeaseRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Lease, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Lease, error)
	FindOtherActiveByTenant(ctx context.Context, tenantID, excludeLeaseID uint) ([]models.Lease, error)
	FindActiveByShop(ctx context.Context, shopID uint) (*models.Lease, error)
	FindNotTerminated(ctx context.Context) ([]models.Lease, error)
	Create(ctx context.Context, lease *models.Lease) error
	Update(ctx context.Context, lease *models.Lease) error
	List(ctx context.Context, query *LeaseQuery) ([]models.Lease, int64, error)
}

// LeaseQuery extends ListQuery with lease-specific filters
type LeaseQuery struct {
	*ListQuery
	TenantID uint
	ShopID   uint
	Status   string
}

type leaseRepository struct {
	db *gorm.DB
}

// NewLeaseRepository creates a new lease repository
func NewLeaseRepository(db *gorm.DB) LeaseRepository {
	return &leaseRepository{db: db}
}

func (r *leaseRepository) FindByID(ctx context.Context, id uint) (*models.Lease, error) {
	var lease models.Lease
	err := r.db.WithContext(ctx).First(&lease, id).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

func (r *leaseRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Lease, error) {
	var lease models.Lease
	// Shop and Tenant are to-one so a Joins load avoids extra round-trips;
	// the one-to-many collections stay as Preloads.
	err := r.db.WithContext(ctx).
		Joins("Shop").
		Joins("Tenant").
		Preload("Invoices", func(db *gorm.DB) *gorm.DB {
			return db.Order("year ASC, month ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC, created_at ASC")
		}).
		Preload("RentAdjustments", func(db *gorm.DB) *gorm.DB {
			return db.Order("effective_date ASC")
		}).
		Preload("SecurityDeposit").
		First(&lease, id).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// FindOtherActiveByTenant returns the tenant's non-terminated leases except
// the given one. Used to compute the cross-lease global balance.
func (r *leaseRepository) FindOtherActiveByTenant(ctx context.Context, tenantID, excludeLeaseID uint) ([]models.Lease, error) {
	var leases []models.Lease
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id <> ? AND status <> ?", tenantID, excludeLeaseID, models.LeaseStatusTerminated).
		Order("start_date ASC").
		Find(&leases).Error
	return leases, err
}

func (r *leaseRepository) FindActiveByShop(ctx context.Context, shopID uint) (*models.Lease, error) {
	var lease models.Lease
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND status <> ?", shopID, models.LeaseStatusTerminated).
		First(&lease).Error
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// FindNotTerminated returns every lease still in a live state. Used by the
// scheduled status refresh and the reconcile repair job.
func (r *leaseRepository) FindNotTerminated(ctx context.Context) ([]models.Lease, error) {
	var leases []models.Lease
	err := r.db.WithContext(ctx).
		Where("status <> ?", models.LeaseStatusTerminated).
		Order("id ASC").
		Find(&leases).Error
	return leases, err
}

func (r *leaseRepository) Create(ctx context.Context, lease *models.Lease) error {
	return r.db.WithContext(ctx).Create(lease).Error
}

func (r *leaseRepository) Update(ctx context.Context, lease *models.Lease) error {
	return r.db.WithContext(ctx).Save(lease).Error
}

func (r *leaseRepository) List(ctx context.Context, query *LeaseQuery) ([]models.Lease, int64, error) {
	var leases []models.Lease
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Lease{})

	if query.TenantID != 0 {
		db = db.Where("tenant_id = ?", query.TenantID)
	}
	if query.ShopID != 0 {
		db = db.Where("shop_id = ?", query.ShopID)
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Search != "" {
		// A lease has no searchable text of its own; match against the
		// tenant and shop names like the sibling list endpoints do.
		term := "%" + query.Search + "%"
		db = db.Joins("JOIN tenants ON tenants.id = leases.tenant_id").
			Joins("JOIN shops ON shops.id = leases.shop_id").
			Where("tenants.full_name ILIKE ? OR shops.name ILIKE ?", term, term)
	}
	if startDate, ok := query.Filters["start_date"]; ok {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			db = db.Where("start_date >= ?", parsed)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.
		Joins("Shop").
		Joins("Tenant").
		Order("leases.created_at DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&leases).Error

	return leases, total, err
}
