package models

import (
	"time"
)

// SecurityDeposit holds the deposit taken at lease signing. Used tracks how
// much has been consumed by settlement; the difference is what remains
// available to offset dues at termination.
type SecurityDeposit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LeaseID   uint      `gorm:"not null;uniqueIndex" json:"lease_id"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Used      float64   `gorm:"type:decimal(12,2);default:0" json:"used"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Lease Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}

// TableName specifies the table name for SecurityDeposit
func (SecurityDeposit) TableName() string {
	return "security_deposits"
}

// Available returns the deposit remaining after prior settlements
func (d *SecurityDeposit) Available() float64 {
	remaining := d.Amount - d.Used
	if remaining < 0 {
		return 0
	}
	return remaining
}
