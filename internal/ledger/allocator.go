package ledger

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrNegativePayment = errors.New("total paid amount cannot be negative")
	ErrNegativeOpening = errors.New("opening balance cannot be negative")
)

// Allocate distributes totalPaid across the lease's obligations strictly
// oldest-first. The opening balance, when non-zero, is a virtual obligation
// sorted before every month. The result is a pure function of the obligation
// sequence and the pooled total; which payment events contributed, and which
// months they claimed to cover, is irrelevant. A payment always retires the
// oldest debt first.
func Allocate(obligations []Obligation, totalPaid, openingBalance float64) ([]AllocationResult, error) {
	if totalPaid < 0 {
		return nil, ErrNegativePayment
	}
	if openingBalance < 0 {
		return nil, ErrNegativeOpening
	}

	seq := withOpening(obligations, openingBalance)
	if len(seq) == 0 {
		return nil, nil
	}

	remaining := totalPaid
	results := make([]AllocationResult, 0, len(seq))
	for _, ob := range seq {
		res := AllocationResult{Obligation: ob}
		switch {
		case remaining >= ob.Amount:
			res.PaidAmount = ob.Amount
			res.RemainingBalance = 0
			res.Status = StatusPaid
			remaining -= ob.Amount
		case remaining > 0:
			res.PaidAmount = remaining
			res.RemainingBalance = ob.Amount - remaining
			res.Status = StatusPartial
			remaining = 0
		default:
			res.PaidAmount = 0
			res.RemainingBalance = ob.Amount
			res.Status = StatusUnpaid
		}
		results = append(results, res)
	}
	return results, nil
}

// withOpening prepends the opening-balance obligation and returns the
// sequence in strict chronological order.
func withOpening(obligations []Obligation, openingBalance float64) []Obligation {
	seq := make([]Obligation, 0, len(obligations)+1)
	if openingBalance > 0 {
		due := time.Time{}
		if len(obligations) > 0 {
			due = obligations[0].DueDate
		}
		seq = append(seq, Obligation{Seq: OpeningKey(), Amount: openingBalance, DueDate: due})
	}
	seq = append(seq, obligations...)
	sort.SliceStable(seq, func(i, j int) bool {
		return seq[i].Seq.Before(seq[j].Seq)
	})
	return seq
}
