package ledger

import "errors"

var (
	ErrNegativeTransfer = errors.New("credit transfer amount cannot be negative")
	ErrNoCredit         = errors.New("tenant has no credit on other leases to transfer")
	ErrOverTransfer     = errors.New("credit transfer exceeds available credit or remaining due")
)

// SettlementInput carries the figures a termination settlement is computed
// from. CurrentDue is this lease's position only (dues on the tenant's other
// leases never bleed in). GlobalLedgerBalance is the tenant's net balance
// across all other active leases: positive means the tenant owes elsewhere,
// negative means credit elsewhere.
type SettlementInput struct {
	CurrentDue          float64
	SecurityDeposit     float64
	GlobalLedgerBalance float64
}

// SettlementOptions are the operator's choices on the termination screen.
type SettlementOptions struct {
	UseSecurityDeposit bool
	CreditTransfer     float64
}

// Settlement is the computed outcome. FinalAmount > 0 means the tenant still
// owes; < 0 means the landlord returns funds; 0 is fully settled.
// Invariant: FinalAmount = CurrentDue - DepositApplied - CreditTransferred.
type Settlement struct {
	CurrentDue          float64 `json:"current_due"`
	SecurityDeposit     float64 `json:"security_deposit"`
	GlobalLedgerBalance float64 `json:"global_ledger_balance"`
	DepositApplied      float64 `json:"deposit_applied"`
	CreditTransferred   float64 `json:"credit_transferred"`
	FinalAmount         float64 `json:"final_amount"`
}

// ComputeSettlement nets this lease's outstanding dues against the security
// deposit and an optional cross-lease credit transfer.
//
// Only a credit (negative) global balance may be transferred in, and never
// more than what remains owed after the deposit offset. An over-limit
// transfer request is rejected outright rather than clamped: this is a
// user-facing financial decision, not background reconciliation.
func ComputeSettlement(in SettlementInput, opts SettlementOptions) (Settlement, error) {
	if opts.CreditTransfer < 0 {
		return Settlement{}, ErrNegativeTransfer
	}

	s := Settlement{
		CurrentDue:          in.CurrentDue,
		SecurityDeposit:     in.SecurityDeposit,
		GlobalLedgerBalance: in.GlobalLedgerBalance,
	}

	if opts.UseSecurityDeposit && in.CurrentDue > 0 {
		s.DepositApplied = min(in.SecurityDeposit, in.CurrentDue)
	}

	if opts.CreditTransfer > 0 {
		if in.GlobalLedgerBalance >= 0 {
			return Settlement{}, ErrNoCredit
		}
		availableCredit := -in.GlobalLedgerBalance
		remainingDue := in.CurrentDue - s.DepositApplied
		if remainingDue < 0 {
			remainingDue = 0
		}
		limit := min(availableCredit, remainingDue)
		if opts.CreditTransfer > limit+Epsilon {
			return Settlement{}, ErrOverTransfer
		}
		s.CreditTransferred = opts.CreditTransfer
	}

	s.FinalAmount = in.CurrentDue - s.DepositApplied - s.CreditTransferred
	return s, nil
}
