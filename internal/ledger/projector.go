package ledger

import (
	"fmt"
	"sort"
	"time"
)

// LedgerEntry is one display row of the running-balance ledger. Debits are
// obligations (opening balance, monthly rent); credits are payments.
// Invariant: RunningBalance(n) = RunningBalance(n-1) + Debit(n) - Credit(n).
type LedgerEntry struct {
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	Debit          float64   `json:"debit"`
	Credit         float64   `json:"credit"`
	RunningBalance float64   `json:"running_balance"`
}

// Summary aggregates a lease's position. CurrentDue is TotalDue - TotalPaid
// and may be negative: a credit balance the settlement and advance-payment
// paths depend on detecting. Flooring at zero is a display concern only.
type Summary struct {
	TotalDue       float64 `json:"total_due"`
	TotalPaid      float64 `json:"total_paid"`
	CurrentDue     float64 `json:"current_due"`
	MonthsDueCount int     `json:"months_due_count"`
}

// Project merges obligations (debits) and payments (credits) into one
// chronologically ordered ledger with a running balance. openingDate is the
// date shown on the opening-balance row, normally the lease start.
func Project(openingBalance float64, openingDate time.Time, obligations []Obligation, payments []PaymentEvent) []LedgerEntry {
	type event struct {
		date   time.Time
		desc   string
		debit  float64
		credit float64
	}

	var events []event
	if openingBalance > 0 {
		events = append(events, event{date: openingDate, desc: "Opening balance", debit: openingBalance})
	}
	for _, ob := range obligations {
		events = append(events, event{
			date:  ob.DueDate,
			desc:  fmt.Sprintf("Rent %s", ob.Seq),
			debit: ob.Amount,
		})
	}
	for _, p := range payments {
		events = append(events, event{date: p.Date, desc: "Payment received", credit: p.Amount})
	}

	// Same-day debits precede credits so a payment on a due date never shows
	// a transiently negative balance.
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].date.Equal(events[j].date) {
			return events[i].date.Before(events[j].date)
		}
		return events[i].debit > 0 && events[j].credit > 0
	})

	entries := make([]LedgerEntry, 0, len(events))
	balance := 0.0
	for _, ev := range events {
		balance += ev.debit - ev.credit
		entries = append(entries, LedgerEntry{
			Date:           ev.date,
			Description:    ev.desc,
			Debit:          ev.debit,
			Credit:         ev.credit,
			RunningBalance: balance,
		})
	}
	return entries
}

// Summarize computes the lease position from the same inputs the allocator
// consumes. MonthsDueCount is the number of obligations left unpaid or
// partial after FIFO allocation; it must be recomputed whenever payments or
// obligations change, never cached.
func Summarize(obligations []Obligation, payments []PaymentEvent, openingBalance float64) (Summary, error) {
	totalPaid := 0.0
	for _, p := range payments {
		if p.Amount < 0 {
			return Summary{}, ErrNegativePayment
		}
		totalPaid += p.Amount
	}

	results, err := Allocate(obligations, totalPaid, openingBalance)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{TotalPaid: totalPaid, TotalDue: openingBalance}
	for _, ob := range obligations {
		s.TotalDue += ob.Amount
	}
	s.CurrentDue = s.TotalDue - s.TotalPaid
	for _, res := range results {
		if res.Status != StatusPaid {
			s.MonthsDueCount++
		}
	}
	return s, nil
}
