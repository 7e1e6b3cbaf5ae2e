package models

import (
	"time"

	"github.com/rentora/rentora-api/internal/ledger"
)

// Invoice represents one month's rent obligation for a lease. Rows are
// destructively regenerated whenever the lease's rent history changes;
// PaidAmount and Status are derived by reconciliation, never entered by hand.
type Invoice struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LeaseID    uint      `gorm:"not null;index:idx_invoices_lease_period,unique" json:"lease_id"`
	Year       int       `gorm:"not null;index:idx_invoices_lease_period,unique" json:"year"`
	Month      int       `gorm:"not null;index:idx_invoices_lease_period,unique" json:"month"`
	Amount     float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaidAmount float64   `gorm:"type:decimal(12,2);default:0" json:"paid_amount"`
	Status     string    `gorm:"default:unpaid;not null;index" json:"status"`
	DueDate    time.Time `gorm:"type:date;not null;index" json:"due_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Lease Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}

// TableName specifies the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// Balance returns the unpaid remainder of the invoice
func (i *Invoice) Balance() float64 {
	return i.Amount - i.PaidAmount
}

// IsOverdue returns true if the invoice is past due and not settled
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status != ledger.StatusPaid && now.After(i.DueDate)
}

// Obligation converts the persisted row into the engine's plain record
func (i *Invoice) Obligation() ledger.Obligation {
	return ledger.Obligation{
		Seq:     ledger.MonthKey(i.Year, time.Month(i.Month)),
		Amount:  i.Amount,
		DueDate: i.DueDate,
	}
}

// InvoiceResponse is the JSON response format for invoices
type InvoiceResponse struct {
	ID         uint      `json:"id"`
	LeaseID    uint      `json:"lease_id"`
	Period     string    `json:"period"`
	Amount     float64   `json:"amount"`
	PaidAmount float64   `json:"paid_amount"`
	Balance    float64   `json:"balance"`
	Status     string    `json:"status"`
	DueDate    time.Time `json:"due_date"`
	Overdue    bool      `json:"overdue"`
}

// ToResponse converts Invoice to InvoiceResponse
func (i *Invoice) ToResponse() InvoiceResponse {
	return InvoiceResponse{
		ID:         i.ID,
		LeaseID:    i.LeaseID,
		Period:     ledger.MonthKey(i.Year, time.Month(i.Month)).String(),
		Amount:     i.Amount,
		PaidAmount: i.PaidAmount,
		Balance:    i.Balance(),
		Status:     i.Status,
		DueDate:    i.DueDate,
		Overdue:    i.IsOverdue(time.Now()),
	}
}
