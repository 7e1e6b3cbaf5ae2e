// Package ledger implements the rent-ledger reconciliation engine: invoice
// generation, FIFO payment allocation, ledger projection and lease-termination
// settlement. It is pure computation over plain records; persistence and HTTP
// belong to the caller.
package ledger

import (
	"fmt"
	"time"
)

// Epsilon is the currency tolerance used when deciding whether a persisted
// amount already matches a computed one. Comparisons against stored rows must
// use it to avoid redundant writes.
const Epsilon = 0.01

// Obligation status constants
const (
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// SequenceKey identifies an obligation's position in the chronological
// sequence. The opening balance sorts before every monthly obligation.
type SequenceKey struct {
	Year    int
	Month   time.Month
	Opening bool
}

// OpeningKey returns the key for the opening-balance obligation.
func OpeningKey() SequenceKey {
	return SequenceKey{Opening: true}
}

// MonthKey returns the key for a given calendar month.
func MonthKey(year int, month time.Month) SequenceKey {
	return SequenceKey{Year: year, Month: month}
}

// Before reports whether k sorts strictly before other.
func (k SequenceKey) Before(other SequenceKey) bool {
	if k.Opening != other.Opening {
		return k.Opening
	}
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

func (k SequenceKey) String() string {
	if k.Opening {
		return "opening"
	}
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Obligation is a single amount owed by the tenant: either one month's rent
// or the opening due balance carried into the lease.
type Obligation struct {
	Seq     SequenceKey `json:"seq"`
	Amount  float64     `json:"amount"`
	DueDate time.Time   `json:"due_date"`
}

// IsOpening reports whether the obligation is the opening balance.
func (o Obligation) IsOpening() bool {
	return o.Seq.Opening
}

// PaymentEvent is a cash-in fact. RentMonths is the label the payer attached
// to the payment. It is advisory only and never drives allocation; the
// allocator pools all amounts and retires the oldest obligation first.
type PaymentEvent struct {
	Amount     float64       `json:"amount"`
	Date       time.Time     `json:"date"`
	RentMonths []SequenceKey `json:"rent_months,omitempty"`
}

// AllocationResult is the allocator's verdict on one obligation.
// Invariant: PaidAmount + RemainingBalance == Obligation.Amount.
type AllocationResult struct {
	Obligation       Obligation `json:"obligation"`
	PaidAmount       float64    `json:"paid_amount"`
	RemainingBalance float64    `json:"remaining_balance"`
	Status           string     `json:"status"`
}
