package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rentora/rentora-api/internal/ledger"
	"github.com/rentora/rentora-api/internal/models"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/internal/statemachine"
	"gorm.io/gorm"
)

// SettlementService computes and confirms lease-termination settlements.
// Preview is side-effect free. Confirm recomputes under the lease lock (a
// preview shown to the operator is never trusted at confirmation time) and
// commits the terminal status flip, the shop vacancy, the deposit
// consumption and the audit record in one transaction.
type SettlementService struct {
	db             *gorm.DB
	leaseRepo      repository.LeaseRepository
	shopRepo       repository.ShopRepository
	depositRepo    repository.DepositRepository
	settlementRepo repository.SettlementRepository
	ledgerSvc      *LedgerService
	reconcileSvc   *ReconcileService
	locks          *leaseLocks
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	db *gorm.DB,
	leaseRepo repository.LeaseRepository,
	shopRepo repository.ShopRepository,
	depositRepo repository.DepositRepository,
	settlementRepo repository.SettlementRepository,
	ledgerSvc *LedgerService,
	reconcileSvc *ReconcileService,
	locks *leaseLocks,
) *SettlementService {
	return &SettlementService{
		db:             db,
		leaseRepo:      leaseRepo,
		shopRepo:       shopRepo,
		depositRepo:    depositRepo,
		settlementRepo: settlementRepo,
		ledgerSvc:      ledgerSvc,
		reconcileSvc:   reconcileSvc,
		locks:          locks,
	}
}

// Preview computes the settlement without side effects.
func (s *SettlementService) Preview(ctx context.Context, leaseID uint, opts ledger.SettlementOptions) (ledger.Settlement, error) {
	unlock := s.locks.Lock(leaseID)
	defer unlock()
	_, settlement, err := s.compute(ctx, leaseID, opts)
	return settlement, err
}

// Confirm recomputes the settlement and terminates the lease: status flips
// to terminated, the shop goes vacant, the deposit's used figure grows by
// what was applied, and a settlement record is persisted. All-or-nothing.
func (s *SettlementService) Confirm(ctx context.Context, leaseID uint, opts ledger.SettlementOptions, note *string) (*models.Settlement, error) {
	unlock := s.locks.Lock(leaseID)
	defer unlock()

	lease, settlement, err := s.compute(ctx, leaseID, opts)
	if err != nil {
		return nil, err
	}

	fsm := statemachine.NewLeaseFSM(lease)
	if err := fsm.Terminate(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	lease.TerminatedAt = &now
	lease.TerminationNote = note

	record := &models.Settlement{
		LeaseID:             lease.ID,
		CurrentDue:          settlement.CurrentDue,
		DepositApplied:      settlement.DepositApplied,
		CreditTransferred:   settlement.CreditTransferred,
		GlobalLedgerBalance: settlement.GlobalLedgerBalance,
		FinalAmount:         settlement.FinalAmount,
		Note:                note,
		ConfirmedAt:         now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(lease).Error; err != nil {
			return fmt.Errorf("failed to terminate lease: %w", err)
		}

		if err := tx.Model(&models.Shop{}).
			Where("id = ?", lease.ShopID).
			Update("status", models.ShopStatusVacant).Error; err != nil {
			return fmt.Errorf("failed to vacate shop: %w", err)
		}

		if settlement.DepositApplied > 0 {
			if err := tx.Model(&models.SecurityDeposit{}).
				Where("lease_id = ?", lease.ID).
				Update("used", gorm.Expr("used + ?", settlement.DepositApplied)).Error; err != nil {
				return fmt.Errorf("failed to consume security deposit: %w", err)
			}
		}

		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to persist settlement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// compute reconciles, then assembles the settlement input from this lease's
// summary, its remaining deposit and the tenant's cross-lease balance.
// Callers hold the lease lock.
func (s *SettlementService) compute(ctx context.Context, leaseID uint, opts ledger.SettlementOptions) (*models.Lease, ledger.Settlement, error) {
	lease, err := s.leaseRepo.FindByID(ctx, leaseID)
	if err != nil {
		return nil, ledger.Settlement{}, fmt.Errorf("failed to load lease: %w", err)
	}
	if lease.IsTerminated() {
		return nil, ledger.Settlement{}, ErrLeaseTerminated
	}

	// Repair any allocation drift before settling against it.
	if _, err := s.reconcileSvc.reconcile(ctx, leaseID); err != nil {
		return nil, ledger.Settlement{}, err
	}

	summary, err := s.ledgerSvc.Summary(ctx, leaseID)
	if err != nil {
		return nil, ledger.Settlement{}, err
	}

	var depositAvailable float64
	deposit, err := s.depositRepo.FindByLease(ctx, leaseID)
	if err == nil {
		depositAvailable = deposit.Available()
	} else if err != gorm.ErrRecordNotFound {
		return nil, ledger.Settlement{}, fmt.Errorf("failed to load security deposit: %w", err)
	}

	globalBalance, err := s.ledgerSvc.GlobalBalance(ctx, lease.TenantID, leaseID)
	if err != nil {
		return nil, ledger.Settlement{}, err
	}

	settlement, err := ledger.ComputeSettlement(ledger.SettlementInput{
		CurrentDue:          summary.CurrentDue,
		SecurityDeposit:     depositAvailable,
		GlobalLedgerBalance: globalBalance,
	}, opts)
	if err != nil {
		return nil, ledger.Settlement{}, err
	}

	return lease, settlement, nil
}

// FindByLease returns the persisted settlement for a terminated lease
func (s *SettlementService) FindByLease(ctx context.Context, leaseID uint) (*models.Settlement, error) {
	return s.settlementRepo.FindByLease(ctx, leaseID)
}
