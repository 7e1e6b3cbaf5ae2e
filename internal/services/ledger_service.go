package services

import (
	"context"
	"fmt"

	"github.com/rentora/rentora-api/internal/ledger"
	"github.com/rentora/rentora-api/internal/models"
	"github.com/rentora/rentora-api/internal/repository"
)

// LedgerService projects leases into display ledgers and summaries. It reads
// persisted rows, converts them to the engine's plain records and delegates;
// it never caches: months-due counts and balances are recomputed per call.
type LedgerService struct {
	leaseRepo   repository.LeaseRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	leaseRepo repository.LeaseRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) *LedgerService {
	return &LedgerService{
		leaseRepo:   leaseRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

// GetLedger returns the running-balance ledger and summary for one lease.
func (s *LedgerService) GetLedger(ctx context.Context, leaseID uint) ([]ledger.LedgerEntry, ledger.Summary, error) {
	lease, obligations, events, err := s.load(ctx, leaseID)
	if err != nil {
		return nil, ledger.Summary{}, err
	}

	summary, err := ledger.Summarize(obligations, events, lease.OpeningBalance)
	if err != nil {
		return nil, ledger.Summary{}, err
	}

	entries := ledger.Project(lease.OpeningBalance, lease.StartDate, obligations, events)
	return entries, summary, nil
}

// Summary returns the lease's aggregate position only.
func (s *LedgerService) Summary(ctx context.Context, leaseID uint) (ledger.Summary, error) {
	lease, obligations, events, err := s.load(ctx, leaseID)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summarize(obligations, events, lease.OpeningBalance)
}

// GlobalBalance nets the tenant's position across all their non-terminated
// leases except the given one. Positive: the tenant owes elsewhere.
// Negative: credit elsewhere, transferable into a settlement.
func (s *LedgerService) GlobalBalance(ctx context.Context, tenantID, excludeLeaseID uint) (float64, error) {
	leases, err := s.leaseRepo.FindOtherActiveByTenant(ctx, tenantID, excludeLeaseID)
	if err != nil {
		return 0, fmt.Errorf("failed to load tenant leases: %w", err)
	}

	var balance float64
	for _, lease := range leases {
		summary, err := s.Summary(ctx, lease.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to summarize lease %d: %w", lease.ID, err)
		}
		balance += summary.CurrentDue
	}
	return balance, nil
}

func (s *LedgerService) load(ctx context.Context, leaseID uint) (*models.Lease, []ledger.Obligation, []ledger.PaymentEvent, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load lease: %w", err)
	}

	invoices, err := s.invoiceRepo.FindByLease(ctx, leaseID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	obligations := make([]ledger.Obligation, 0, len(invoices))
	for i := range invoices {
		obligations = append(obligations, invoices[i].Obligation())
	}

	payments, err := s.paymentRepo.FindActiveByLease(ctx, leaseID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load payments: %w", err)
	}
	events := make([]ledger.PaymentEvent, 0, len(payments))
	for i := range payments {
		events = append(events, payments[i].Event())
	}

	return lease, obligations, events, nil
}
