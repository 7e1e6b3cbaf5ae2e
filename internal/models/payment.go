package models

import (
	"time"

	"github.com/rentora/rentora-api/internal/ledger"
)

// Payment represents cash received against a lease. Payments are immutable
// facts: corrections are made by soft-deleting with a reason, never by
// editing the amount. RentMonths is the label the payer declared; allocation
// ignores it and pools the total FIFO.
type Payment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	LeaseID      uint       `gorm:"not null;index" json:"lease_id"`
	TenantID     uint       `gorm:"not null;index" json:"tenant_id"`
	Reference    string     `gorm:"uniqueIndex;not null" json:"reference"`
	Amount       float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate  time.Time  `gorm:"type:date;not null;index" json:"payment_date"`
	RentMonths   *string    `json:"rent_months,omitempty"`
	Note         *string    `gorm:"type:text" json:"note,omitempty"`
	DeletedAt    *time.Time `gorm:"index" json:"deleted_at,omitempty"`
	DeleteReason *string    `gorm:"type:text" json:"delete_reason,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Associations
	Lease  Lease  `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// IsDeleted returns true if the payment has been soft-deleted
func (p *Payment) IsDeleted() bool {
	return p.DeletedAt != nil
}

// Event converts the persisted row into the engine's plain record
func (p *Payment) Event() ledger.PaymentEvent {
	return ledger.PaymentEvent{
		Amount: p.Amount,
		Date:   p.PaymentDate,
	}
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID           uint       `json:"id"`
	LeaseID      uint       `json:"lease_id"`
	TenantID     uint       `json:"tenant_id"`
	TenantName   string     `json:"tenant_name,omitempty"`
	Reference    string     `json:"reference"`
	Amount       float64    `json:"amount"`
	PaymentDate  time.Time  `json:"payment_date"`
	RentMonths   *string    `json:"rent_months,omitempty"`
	Note         *string    `json:"note,omitempty"`
	Deleted      bool       `json:"deleted"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	DeleteReason *string    `json:"delete_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToResponse converts Payment to PaymentResponse
func (p *Payment) ToResponse() PaymentResponse {
	resp := PaymentResponse{
		ID:           p.ID,
		LeaseID:      p.LeaseID,
		TenantID:     p.TenantID,
		Reference:    p.Reference,
		Amount:       p.Amount,
		PaymentDate:  p.PaymentDate,
		RentMonths:   p.RentMonths,
		Note:         p.Note,
		Deleted:      p.IsDeleted(),
		DeletedAt:    p.DeletedAt,
		DeleteReason: p.DeleteReason,
		CreatedAt:    p.CreatedAt,
	}
	if p.Tenant.ID != 0 {
		resp.TenantName = p.Tenant.FullName
	}
	return resp
}
