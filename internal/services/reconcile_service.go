package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rentora/rentora-api/internal/ledger"
	"github.com/rentora/rentora-api/internal/models"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/pkg/logger"
)

// ReconcileService owns the one FIFO allocation path in the system. The live
// request path (after a payment write) and the batch repair job both call
// the same Reconcile; there is no second copy of the loop to drift.
type ReconcileService struct {
	leaseRepo      repository.LeaseRepository
	invoiceRepo    repository.InvoiceRepository
	paymentRepo    repository.PaymentRepository
	adjustmentRepo repository.AdjustmentRepository
	locks          *leaseLocks
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(
	leaseRepo repository.LeaseRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	adjustmentRepo repository.AdjustmentRepository,
	locks *leaseLocks,
) *ReconcileService {
	return &ReconcileService{
		leaseRepo:      leaseRepo,
		invoiceRepo:    invoiceRepo,
		paymentRepo:    paymentRepo,
		adjustmentRepo: adjustmentRepo,
		locks:          locks,
	}
}

// Reconcile recomputes the FIFO allocation for a lease and persists any
// invoice whose paid amount or status drifted beyond the 0.01 epsilon.
// Idempotent: reconciling an already-correct lease writes nothing.
func (s *ReconcileService) Reconcile(ctx context.Context, leaseID uint) ([]ledger.AllocationResult, error) {
	unlock := s.locks.Lock(leaseID)
	defer unlock()
	return s.reconcile(ctx, leaseID)
}

// Regenerate rebuilds the lease's invoices from scratch using its rent
// adjustment history, then reconciles. Destructive by design: it is the
// correction path for backfilled leases and rent changes, not an
// incremental update.
func (s *ReconcileService) Regenerate(ctx context.Context, leaseID uint) ([]ledger.AllocationResult, error) {
	unlock := s.locks.Lock(leaseID)
	defer unlock()

	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}

	adjustments, err := s.adjustmentRepo.FindByLease(ctx, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rent adjustments: %w", err)
	}
	changes := make([]ledger.RentChange, 0, len(adjustments))
	for _, adj := range adjustments {
		changes = append(changes, adj.Change())
	}

	obligations, err := ledger.GenerateObligations(lease.StartDate, lease.LedgerEnd(time.Now()), lease.MonthlyRent, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate obligations: %w", err)
	}

	invoices := make([]models.Invoice, 0, len(obligations))
	for _, ob := range obligations {
		invoices = append(invoices, models.Invoice{
			LeaseID: leaseID,
			Year:    ob.Seq.Year,
			Month:   int(ob.Seq.Month),
			Amount:  ob.Amount,
			Status:  ledger.StatusUnpaid,
			DueDate: ob.DueDate,
		})
	}

	if err := s.invoiceRepo.ReplaceForLease(ctx, leaseID, invoices); err != nil {
		return nil, fmt.Errorf("failed to replace invoices: %w", err)
	}

	return s.reconcile(ctx, leaseID)
}

// ReconcileAll repairs every non-terminated lease. Scheduled as a recurring
// job; failures on one lease do not stop the sweep.
func (s *ReconcileService) ReconcileAll(ctx context.Context) error {
	leases, err := s.leaseRepo.FindNotTerminated(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leases: %w", err)
	}

	var failed int
	for _, lease := range leases {
		if _, err := s.Reconcile(ctx, lease.ID); err != nil {
			failed++
			logger.Error("Failed to reconcile lease", "lease_id", lease.ID, "error", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("reconcile sweep: %d of %d leases failed", failed, len(leases))
	}
	return nil
}

// reconcile does the work; callers hold the lease lock.
func (s *ReconcileService) reconcile(ctx context.Context, leaseID uint) ([]ledger.AllocationResult, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}

	invoices, err := s.invoiceRepo.FindByLease(ctx, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}

	totalPaid, err := s.paymentRepo.SumActiveByLease(ctx, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	obligations := make([]ledger.Obligation, 0, len(invoices))
	for i := range invoices {
		obligations = append(obligations, invoices[i].Obligation())
	}

	results, err := ledger.Allocate(obligations, totalPaid, lease.OpeningBalance)
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	byPeriod := make(map[string]ledger.AllocationResult, len(results))
	for _, res := range results {
		byPeriod[res.Obligation.Seq.String()] = res
	}

	for i := range invoices {
		inv := &invoices[i]
		res, ok := byPeriod[inv.Obligation().Seq.String()]
		if !ok {
			continue
		}

		// Persisted drift beyond what allocation can produce (e.g. a paid
		// amount above the invoice amount) is repaired, not fatal.
		if inv.PaidAmount > inv.Amount+ledger.Epsilon {
			logger.Warn("Invoice paid amount exceeds invoice amount, clamping",
				"invoice_id", inv.ID, "paid", inv.PaidAmount, "amount", inv.Amount)
		}

		if math.Abs(inv.PaidAmount-res.PaidAmount) <= ledger.Epsilon && inv.Status == res.Status {
			continue
		}
		if err := s.invoiceRepo.UpdateAllocation(ctx, inv.ID, res.PaidAmount, res.Status); err != nil {
			return nil, fmt.Errorf("failed to update invoice %d: %w", inv.ID, err)
		}
	}

	return results, nil
}
