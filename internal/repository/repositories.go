package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Owner      OwnerRepository
	Shop       ShopRepository
	Tenant     TenantRepository
	Lease      LeaseRepository
	Invoice    InvoiceRepository
	Payment    PaymentRepository
	Adjustment AdjustmentRepository
	Deposit    DepositRepository
	Settlement SettlementRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Owner:      NewOwnerRepository(db),
		Shop:       NewShopRepository(db),
		Tenant:     NewTenantRepository(db),
		Lease:      NewLeaseRepository(db),
		Invoice:    NewInvoiceRepository(db),
		Payment:    NewPaymentRepository(db),
		Adjustment: NewAdjustmentRepository(db),
		Deposit:    NewDepositRepository(db),
		Settlement: NewSettlementRepository(db),
	}
}
