package services

import (
	"github.com/rentora/rentora-api/internal/config"
	"github.com/rentora/rentora-api/internal/jobs"
	"github.com/rentora/rentora-api/internal/repository"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Lease      *LeaseService
	Payment    *PaymentService
	Ledger     *LedgerService
	Reconcile  *ReconcileService
	Settlement *SettlementService
	Job        *JobService
}

// NewServices creates all service instances. One lock registry is shared by
// every service that mutates a lease's ledger, so reconciliation, payment
// writes and settlement confirmation serialize per lease.
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config, db *gorm.DB) *Services {
	locks := newLeaseLocks()

	reconcileSvc := NewReconcileService(repos.Lease, repos.Invoice, repos.Payment, repos.Adjustment, locks)
	ledgerSvc := NewLedgerService(repos.Lease, repos.Invoice, repos.Payment)

	return &Services{
		Lease:      NewLeaseService(repos.Lease, repos.Shop, repos.Deposit, repos.Adjustment, reconcileSvc, cfg.ExpiryWarningDays),
		Payment:    NewPaymentService(repos.Payment, repos.Lease, reconcileSvc, locks),
		Ledger:     ledgerSvc,
		Reconcile:  reconcileSvc,
		Settlement: NewSettlementService(db, repos.Lease, repos.Shop, repos.Deposit, repos.Settlement, ledgerSvc, reconcileSvc, locks),
		Job:        NewJobService(worker),
	}
}
