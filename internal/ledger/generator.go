package ledger

import (
	"errors"
	"sort"
	"time"
)

// Rent invoices fall due on the 5th of their month. Fixed convention.
const dueDayOfMonth = 5

// RentChange records a rent adjustment taking effect on a given date.
type RentChange struct {
	EffectiveDate time.Time
	NewRent       float64
}

var (
	ErrInvalidLeaseTerm = errors.New("lease term is empty or inverted")
	ErrInvalidRent      = errors.New("monthly rent must be positive")
)

// GenerateObligations produces one obligation per calendar month from the
// month containing start through the month containing until, inclusive.
// Each month is billed at the rent effective at that month's first day: the
// most recent change with EffectiveDate on or before it, falling back to
// baseRent. A mid-month start still owes the full month (no pro-rating).
//
// Callers using this for backfill must replace the lease's existing invoices
// wholesale; generation is idempotent-from-scratch, never incremental.
func GenerateObligations(start, until time.Time, baseRent float64, changes []RentChange) ([]Obligation, error) {
	if start.IsZero() || until.IsZero() {
		return nil, ErrInvalidLeaseTerm
	}
	if baseRent <= 0 {
		return nil, ErrInvalidRent
	}
	for _, ch := range changes {
		if ch.NewRent <= 0 {
			return nil, ErrInvalidRent
		}
	}

	first := monthStart(start)
	last := monthStart(until)
	if last.Before(first) {
		return nil, ErrInvalidLeaseTerm
	}

	sorted := make([]RentChange, len(changes))
	copy(sorted, changes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EffectiveDate.Before(sorted[j].EffectiveDate)
	})

	var obligations []Obligation
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		obligations = append(obligations, Obligation{
			Seq:     MonthKey(m.Year(), m.Month()),
			Amount:  rentEffectiveAt(m, baseRent, sorted),
			DueDate: time.Date(m.Year(), m.Month(), dueDayOfMonth, 0, 0, 0, 0, m.Location()),
		})
	}
	return obligations, nil
}

// rentEffectiveAt picks the rent for the month starting at m: the latest
// change effective on or before m, else the base rent.
func rentEffectiveAt(m time.Time, baseRent float64, sorted []RentChange) float64 {
	rent := baseRent
	for _, ch := range sorted {
		if ch.EffectiveDate.After(m) {
			break
		}
		rent = ch.NewRent
	}
	return rent
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
