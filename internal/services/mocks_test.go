package services

import (
	"context"

	"github.com/rentora/rentora-api/internal/models"
	"github.com/rentora/rentora-api/internal/repository"
	"gorm.io/gorm"
)

// Hand-written repository mocks. Tests set only the funcs they need; the
// rest return the zero value or record-not-found.

type mockLeaseRepository struct {
	mockFindByID                func(ctx context.Context, id uint) (*models.Lease, error)
	mockFindByIDWithDetails     func(ctx context.Context, id uint) (*models.Lease, error)
	mockFindOtherActiveByTenant func(ctx context.Context, tenantID, excludeLeaseID uint) ([]models.Lease, error)
	mockFindActiveByShop        func(ctx context.Context, shopID uint) (*models.Lease, error)
	mockFindNotTerminated       func(ctx context.Context) ([]models.Lease, error)
	mockCreate                  func(ctx context.Context, lease *models.Lease) error
	mockUpdate                  func(ctx context.Context, lease *models.Lease) error
	mockList                    func(ctx context.Context, query *repository.LeaseQuery) ([]models.Lease, int64, error)
}

func (m *mockLeaseRepository) FindByID(ctx context.Context, id uint) (*models.Lease, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockLeaseRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Lease, error) {
	if m.mockFindByIDWithDetails != nil {
		return m.mockFindByIDWithDetails(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockLeaseRepository) FindOtherActiveByTenant(ctx context.Context, tenantID, excludeLeaseID uint) ([]models.Lease, error) {
	if m.mockFindOtherActiveByTenant != nil {
		return m.mockFindOtherActiveByTenant(ctx, tenantID, excludeLeaseID)
	}
	return nil, nil
}
func (m *mockLeaseRepository) FindActiveByShop(ctx context.Context, shopID uint) (*models.Lease, error) {
	if m.mockFindActiveByShop != nil {
		return m.mockFindActiveByShop(ctx, shopID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockLeaseRepository) FindNotTerminated(ctx context.Context) ([]models.Lease, error) {
	if m.mockFindNotTerminated != nil {
		return m.mockFindNotTerminated(ctx)
	}
	return nil, nil
}
func (m *mockLeaseRepository) Create(ctx context.Context, lease *models.Lease) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, lease)
	}
	lease.ID = 1
	return nil
}
func (m *mockLeaseRepository) Update(ctx context.Context, lease *models.Lease) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, lease)
	}
	return nil
}
func (m *mockLeaseRepository) List(ctx context.Context, query *repository.LeaseQuery) ([]models.Lease, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, query)
	}
	return nil, 0, nil
}

type mockInvoiceRepository struct {
	mockFindByLease      func(ctx context.Context, leaseID uint) ([]models.Invoice, error)
	mockReplaceForLease  func(ctx context.Context, leaseID uint, invoices []models.Invoice) error
	mockUpdateAllocation func(ctx context.Context, id uint, paidAmount float64, status string) error
}

func (m *mockInvoiceRepository) FindByLease(ctx context.Context, leaseID uint) ([]models.Invoice, error) {
	if m.mockFindByLease != nil {
		return m.mockFindByLease(ctx, leaseID)
	}
	return nil, nil
}
func (m *mockInvoiceRepository) ReplaceForLease(ctx context.Context, leaseID uint, invoices []models.Invoice) error {
	if m.mockReplaceForLease != nil {
		return m.mockReplaceForLease(ctx, leaseID, invoices)
	}
	return nil
}
func (m *mockInvoiceRepository) UpdateAllocation(ctx context.Context, id uint, paidAmount float64, status string) error {
	if m.mockUpdateAllocation != nil {
		return m.mockUpdateAllocation(ctx, id, paidAmount, status)
	}
	return nil
}

type mockPaymentRepository struct {
	mockFindByID          func(ctx context.Context, id uint) (*models.Payment, error)
	mockFindActiveByLease func(ctx context.Context, leaseID uint) ([]models.Payment, error)
	mockSumActiveByLease  func(ctx context.Context, leaseID uint) (float64, error)
	mockCreate            func(ctx context.Context, payment *models.Payment) error
	mockSoftDelete        func(ctx context.Context, id uint, reason string) error
	mockList              func(ctx context.Context, query *repository.PaymentQuery) ([]models.Payment, int64, error)
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockPaymentRepository) FindActiveByLease(ctx context.Context, leaseID uint) ([]models.Payment, error) {
	if m.mockFindActiveByLease != nil {
		return m.mockFindActiveByLease(ctx, leaseID)
	}
	return nil, nil
}
func (m *mockPaymentRepository) SumActiveByLease(ctx context.Context, leaseID uint) (float64, error) {
	if m.mockSumActiveByLease != nil {
		return m.mockSumActiveByLease(ctx, leaseID)
	}
	return 0, nil
}
func (m *mockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, payment)
	}
	payment.ID = 1
	return nil
}
func (m *mockPaymentRepository) SoftDelete(ctx context.Context, id uint, reason string) error {
	if m.mockSoftDelete != nil {
		return m.mockSoftDelete(ctx, id, reason)
	}
	return nil
}
func (m *mockPaymentRepository) List(ctx context.Context, query *repository.PaymentQuery) ([]models.Payment, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, query)
	}
	return nil, 0, nil
}

type mockAdjustmentRepository struct {
	mockFindByLease func(ctx context.Context, leaseID uint) ([]models.RentAdjustment, error)
	mockCreate      func(ctx context.Context, adjustment *models.RentAdjustment) error
}

func (m *mockAdjustmentRepository) FindByLease(ctx context.Context, leaseID uint) ([]models.RentAdjustment, error) {
	if m.mockFindByLease != nil {
		return m.mockFindByLease(ctx, leaseID)
	}
	return nil, nil
}
func (m *mockAdjustmentRepository) Create(ctx context.Context, adjustment *models.RentAdjustment) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, adjustment)
	}
	adjustment.ID = 1
	return nil
}

type mockDepositRepository struct {
	mockFindByLease func(ctx context.Context, leaseID uint) (*models.SecurityDeposit, error)
	mockCreate      func(ctx context.Context, deposit *models.SecurityDeposit) error
}

func (m *mockDepositRepository) FindByLease(ctx context.Context, leaseID uint) (*models.SecurityDeposit, error) {
	if m.mockFindByLease != nil {
		return m.mockFindByLease(ctx, leaseID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockDepositRepository) Create(ctx context.Context, deposit *models.SecurityDeposit) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, deposit)
	}
	deposit.ID = 1
	return nil
}

type mockShopRepository struct {
	mockFindByID func(ctx context.Context, id uint) (*models.Shop, error)
	mockCreate   func(ctx context.Context, shop *models.Shop) error
	mockUpdate   func(ctx context.Context, shop *models.Shop) error
	mockList     func(ctx context.Context, query *repository.ShopQuery) ([]models.Shop, int64, error)
}

func (m *mockShopRepository) FindByID(ctx context.Context, id uint) (*models.Shop, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, shop)
	}
	shop.ID = 1
	return nil
}
func (m *mockShopRepository) Update(ctx context.Context, shop *models.Shop) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, shop)
	}
	return nil
}
func (m *mockShopRepository) List(ctx context.Context, query *repository.ShopQuery) ([]models.Shop, int64, error) {
	if m.mockList != nil {
		return m.mockList(ctx, query)
	}
	return nil, 0, nil
}
