package models

import (
	"time"
)

// Lease represents a rental agreement binding a tenant to a shop
type Lease struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	ShopID          uint       `gorm:"not null;index" json:"shop_id"`
	TenantID        uint       `gorm:"not null;index" json:"tenant_id"`
	MonthlyRent     float64    `gorm:"type:decimal(12,2);not null" json:"monthly_rent"`
	OpeningBalance  float64    `gorm:"type:decimal(12,2);default:0" json:"opening_balance"`
	StartDate       time.Time  `gorm:"type:date;not null;index" json:"start_date"`
	EndDate         *time.Time `gorm:"type:date;index" json:"end_date"`
	Status          string     `gorm:"default:active;not null;index" json:"status"`
	TerminationNote *string    `gorm:"type:text" json:"termination_note,omitempty"`
	TerminatedAt    *time.Time `json:"terminated_at,omitempty"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Associations
	Shop            Shop             `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	Tenant          Tenant           `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Invoices        []Invoice        `gorm:"foreignKey:LeaseID" json:"invoices,omitempty"`
	Payments        []Payment        `gorm:"foreignKey:LeaseID" json:"payments,omitempty"`
	RentAdjustments []RentAdjustment `gorm:"foreignKey:LeaseID" json:"rent_adjustments,omitempty"`
	SecurityDeposit *SecurityDeposit `gorm:"foreignKey:LeaseID" json:"security_deposit,omitempty"`
}

// TableName specifies the table name for Lease
func (Lease) TableName() string {
	return "leases"
}

// Lease status constants
const (
	LeaseStatusActive       = "active"
	LeaseStatusExpiringSoon = "expiring_soon"
	LeaseStatusExpired      = "expired"
	LeaseStatusTerminated   = "terminated"
)

// IsTerminated returns true once the lease has reached its absorbing state
func (l *Lease) IsTerminated() bool {
	return l.Status == LeaseStatusTerminated
}

// MayTerminate returns true if the lease can still be terminated
func (l *Lease) MayTerminate() bool {
	return !l.IsTerminated()
}

// DisplayStatus derives the presentation status from the end date. Expiry
// states are computed, not stored transitions; terminated always wins.
func (l *Lease) DisplayStatus(now time.Time, warningDays int) string {
	if l.IsTerminated() {
		return LeaseStatusTerminated
	}
	if l.EndDate == nil {
		return LeaseStatusActive
	}
	if now.After(*l.EndDate) {
		return LeaseStatusExpired
	}
	if now.AddDate(0, 0, warningDays).After(*l.EndDate) {
		return LeaseStatusExpiringSoon
	}
	return LeaseStatusActive
}

// LedgerEnd returns the upper bound for invoice generation: the termination
// date for terminated leases, otherwise now.
func (l *Lease) LedgerEnd(now time.Time) time.Time {
	if l.IsTerminated() && l.TerminatedAt != nil {
		return *l.TerminatedAt
	}
	return now
}

// LeaseResponse is the JSON response format for leases
type LeaseResponse struct {
	ID              uint              `json:"id"`
	ShopID          uint              `json:"shop_id"`
	ShopName        string            `json:"shop_name,omitempty"`
	TenantID        uint              `json:"tenant_id"`
	TenantName      string            `json:"tenant_name,omitempty"`
	TenantPhone     string            `json:"tenant_phone,omitempty"`
	MonthlyRent     float64           `json:"monthly_rent"`
	OpeningBalance  float64           `json:"opening_balance"`
	StartDate       time.Time         `json:"start_date"`
	EndDate         *time.Time        `json:"end_date"`
	Status          string            `json:"status"`
	DisplayStatus   string            `json:"display_status"`
	TerminationNote *string           `json:"termination_note,omitempty"`
	TerminatedAt    *time.Time        `json:"terminated_at,omitempty"`
	DepositAmount   float64           `json:"deposit_amount"`
	DepositUsed     float64           `json:"deposit_used"`
	CreatedAt       time.Time         `json:"created_at"`
	Invoices        []InvoiceResponse `json:"invoices,omitempty"`
	Payments        []PaymentResponse `json:"payments,omitempty"`
}

// ToResponse converts Lease to LeaseResponse
func (l *Lease) ToResponse(now time.Time, warningDays int) LeaseResponse {
	resp := LeaseResponse{
		ID:              l.ID,
		ShopID:          l.ShopID,
		TenantID:        l.TenantID,
		MonthlyRent:     l.MonthlyRent,
		OpeningBalance:  l.OpeningBalance,
		StartDate:       l.StartDate,
		EndDate:         l.EndDate,
		Status:          l.Status,
		DisplayStatus:   l.DisplayStatus(now, warningDays),
		TerminationNote: l.TerminationNote,
		TerminatedAt:    l.TerminatedAt,
		CreatedAt:       l.CreatedAt,
	}

	if l.Shop.ID != 0 {
		resp.ShopName = l.Shop.Name
	}
	if l.Tenant.ID != 0 {
		resp.TenantName = l.Tenant.FullName
		resp.TenantPhone = l.Tenant.Phone
	}
	if l.SecurityDeposit != nil {
		resp.DepositAmount = l.SecurityDeposit.Amount
		resp.DepositUsed = l.SecurityDeposit.Used
	}

	for _, inv := range l.Invoices {
		resp.Invoices = append(resp.Invoices, inv.ToResponse())
	}
	for _, p := range l.Payments {
		resp.Payments = append(resp.Payments, p.ToResponse())
	}

	return resp
}
