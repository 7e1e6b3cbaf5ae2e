package models

import (
	"time"
)

// Settlement is the persisted audit record of a lease termination: the
// figures the operator confirmed, frozen at confirmation time. The lease's
// terminal status alone is not an audit trail.
type Settlement struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	LeaseID             uint      `gorm:"not null;uniqueIndex" json:"lease_id"`
	CurrentDue          float64   `gorm:"type:decimal(12,2);not null" json:"current_due"`
	DepositApplied      float64   `gorm:"type:decimal(12,2);default:0" json:"deposit_applied"`
	CreditTransferred   float64   `gorm:"type:decimal(12,2);default:0" json:"credit_transferred"`
	GlobalLedgerBalance float64   `gorm:"type:decimal(12,2);default:0" json:"global_ledger_balance"`
	FinalAmount         float64   `gorm:"type:decimal(12,2);not null" json:"final_amount"`
	Note                *string   `gorm:"type:text" json:"note,omitempty"`
	ConfirmedAt         time.Time `gorm:"not null;index" json:"confirmed_at"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Associations
	Lease Lease `gorm:"foreignKey:LeaseID" json:"lease,omitempty"`
}

// TableName specifies the table name for Settlement
func (Settlement) TableName() string {
	return "settlements"
}

// SettlementResponse is the JSON response format for settlements
type SettlementResponse struct {
	ID                  uint      `json:"id"`
	LeaseID             uint      `json:"lease_id"`
	CurrentDue          float64   `json:"current_due"`
	DepositApplied      float64   `json:"deposit_applied"`
	CreditTransferred   float64   `json:"credit_transferred"`
	GlobalLedgerBalance float64   `json:"global_ledger_balance"`
	FinalAmount         float64   `json:"final_amount"`
	Note                *string   `json:"note,omitempty"`
	ConfirmedAt         time.Time `json:"confirmed_at"`
}

// ToResponse converts Settlement to SettlementResponse
func (s *Settlement) ToResponse() SettlementResponse {
	return SettlementResponse{
		ID:                  s.ID,
		LeaseID:             s.LeaseID,
		CurrentDue:          s.CurrentDue,
		DepositApplied:      s.DepositApplied,
		CreditTransferred:   s.CreditTransferred,
		GlobalLedgerBalance: s.GlobalLedgerBalance,
		FinalAmount:         s.FinalAmount,
		Note:                s.Note,
		ConfirmedAt:         s.ConfirmedAt,
	}
}
