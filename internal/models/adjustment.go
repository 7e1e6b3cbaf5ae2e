package models

import (
	"time"

	"github.com/rentora/rentora-api/internal/ledger"
)

// RentAdjustment records a change of monthly rent for a lease, effective
// from a given date. Adjustments drive destructive invoice regeneration.
type RentAdjustment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	LeaseID       uint      `gorm:"not null;index" json:"lease_id"`
	EffectiveDate time.Time `gorm:"type:date;not null;index" json:"effective_date"`
	NewRent       float64   `gorm:"type:decimal(12,2);not null" json:"new_rent"`
	Note          *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Lease Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}

// TableName specifies the table name for RentAdjustment
func (RentAdjustment) TableName() string {
	return "rent_adjustments"
}

// Change converts the persisted row into the engine's plain record
func (a *RentAdjustment) Change() ledger.RentChange {
	return ledger.RentChange{
		EffectiveDate: a.EffectiveDate,
		NewRent:       a.NewRent,
	}
}
