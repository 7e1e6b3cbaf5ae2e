package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rentora/rentora-api/internal/models"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/internal/statemachine"
	"github.com/rentora/rentora-api/pkg/logger"
	"gorm.io/gorm"
)

// LeaseService manages the lease lifecycle short of termination, which
// belongs to the settlement service.
type LeaseService struct {
	repo           repository.LeaseRepository
	shopRepo       repository.ShopRepository
	depositRepo    repository.DepositRepository
	adjustmentRepo repository.AdjustmentRepository
	reconcileSvc   *ReconcileService
	warningDays    int
}

// NewLeaseService creates a new lease service
func NewLeaseService(
	repo repository.LeaseRepository,
	shopRepo repository.ShopRepository,
	depositRepo repository.DepositRepository,
	adjustmentRepo repository.AdjustmentRepository,
	reconcileSvc *ReconcileService,
	warningDays int,
) *LeaseService {
	return &LeaseService{
		repo:           repo,
		shopRepo:       shopRepo,
		depositRepo:    depositRepo,
		adjustmentRepo: adjustmentRepo,
		reconcileSvc:   reconcileSvc,
		warningDays:    warningDays,
	}
}

// WarningDays returns the expiring-soon window in days
func (s *LeaseService) WarningDays() int {
	return s.warningDays
}

// CreateLeaseInput carries the fields accepted when opening a lease
type CreateLeaseInput struct {
	ShopID         uint
	TenantID       uint
	MonthlyRent    float64
	OpeningBalance float64
	StartDate      time.Time
	EndDate        *time.Time
	DepositAmount  float64
}

// Create opens a lease on a vacant shop, takes the deposit and bills every
// month from the start date through the current month.
func (s *LeaseService) Create(ctx context.Context, input CreateLeaseInput) (*models.Lease, error) {
	if input.MonthlyRent <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.OpeningBalance < 0 || input.DepositAmount < 0 {
		return nil, ErrInvalidAmount
	}
	if input.StartDate.IsZero() {
		return nil, ErrInvalidDate
	}

	shop, err := s.shopRepo.FindByID(ctx, input.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}

	if _, err := s.repo.FindActiveByShop(ctx, input.ShopID); err == nil {
		return nil, ErrShopOccupied
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check shop occupancy: %w", err)
	}

	lease := &models.Lease{
		ShopID:         input.ShopID,
		TenantID:       input.TenantID,
		MonthlyRent:    input.MonthlyRent,
		OpeningBalance: input.OpeningBalance,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Status:         models.LeaseStatusActive,
	}
	if err := s.repo.Create(ctx, lease); err != nil {
		return nil, fmt.Errorf("failed to create lease: %w", err)
	}

	shop.Status = models.ShopStatusOccupied
	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, fmt.Errorf("failed to mark shop occupied: %w", err)
	}

	if input.DepositAmount > 0 {
		deposit := &models.SecurityDeposit{LeaseID: lease.ID, Amount: input.DepositAmount}
		if err := s.depositRepo.Create(ctx, deposit); err != nil {
			return nil, fmt.Errorf("failed to create security deposit: %w", err)
		}
	}

	if _, err := s.reconcileSvc.Regenerate(ctx, lease.ID); err != nil {
		return nil, fmt.Errorf("lease created but invoice generation failed: %w", err)
	}

	return lease, nil
}

// AdjustRent records a rent change and regenerates the lease's invoices
// using the full adjustment history.
func (s *LeaseService) AdjustRent(ctx context.Context, leaseID uint, effectiveDate time.Time, newRent float64, note *string) error {
	if newRent <= 0 {
		return ErrInvalidAmount
	}
	if effectiveDate.IsZero() {
		return ErrInvalidDate
	}

	lease, err := s.repo.FindByID(ctx, leaseID)
	if err != nil {
		return fmt.Errorf("failed to load lease: %w", err)
	}
	if lease.IsTerminated() {
		return ErrLeaseTerminated
	}

	adjustment := &models.RentAdjustment{
		LeaseID:       leaseID,
		EffectiveDate: effectiveDate,
		NewRent:       newRent,
		Note:          note,
	}
	if err := s.adjustmentRepo.Create(ctx, adjustment); err != nil {
		return fmt.Errorf("failed to create rent adjustment: %w", err)
	}

	if _, err := s.reconcileSvc.Regenerate(ctx, leaseID); err != nil {
		return fmt.Errorf("adjustment recorded but regeneration failed: %w", err)
	}
	return nil
}

// FindByIDWithDetails returns the lease with all associations loaded
func (s *LeaseService) FindByIDWithDetails(ctx context.Context, id uint) (*models.Lease, error) {
	return s.repo.FindByIDWithDetails(ctx, id)
}

// List returns leases matching the query
func (s *LeaseService) List(ctx context.Context, query *repository.LeaseQuery) ([]models.Lease, int64, error) {
	return s.repo.List(ctx, query)
}

// RefreshStatuses moves every live lease's stored status in line with its
// end date. Runs on a schedule; each transition goes through the FSM so an
// illegal move can never be persisted.
func (s *LeaseService) RefreshStatuses(ctx context.Context) error {
	leases, err := s.repo.FindNotTerminated(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leases: %w", err)
	}

	now := time.Now()
	for i := range leases {
		lease := &leases[i]
		target := lease.DisplayStatus(now, s.warningDays)
		if target == lease.Status {
			continue
		}

		fsm := statemachine.NewLeaseFSM(lease)
		var transition error
		switch target {
		case models.LeaseStatusExpiringSoon:
			transition = fsm.FlagExpiring(ctx)
		case models.LeaseStatusExpired:
			transition = fsm.Expire(ctx)
		case models.LeaseStatusActive:
			transition = fsm.Renew(ctx)
		default:
			continue
		}
		if transition != nil {
			logger.Warn("Skipping lease status refresh", "lease_id", lease.ID, "error", transition)
			continue
		}

		if err := s.repo.Update(ctx, lease); err != nil {
			return fmt.Errorf("failed to update lease %d: %w", lease.ID, err)
		}
	}
	return nil
}
