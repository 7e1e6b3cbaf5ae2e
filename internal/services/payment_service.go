package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentora/rentora-api/internal/models"
	"github.com/rentora/rentora-api/internal/repository"
)

// PaymentService records and soft-deletes cash payments. Every mutation runs
// under the lease lock and ends with a synchronous reconcile, so invoice
// statuses never lag the cash facts and a settlement confirmation can never
// interleave with a payment write.
type PaymentService struct {
	repo         repository.PaymentRepository
	leaseRepo    repository.LeaseRepository
	reconcileSvc *ReconcileService
	locks        *leaseLocks
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	repo repository.PaymentRepository,
	leaseRepo repository.LeaseRepository,
	reconcileSvc *ReconcileService,
	locks *leaseLocks,
) *PaymentService {
	return &PaymentService{
		repo:         repo,
		leaseRepo:    leaseRepo,
		reconcileSvc: reconcileSvc,
		locks:        locks,
	}
}

// CreatePaymentInput carries the fields accepted when recording a payment
type CreatePaymentInput struct {
	LeaseID     uint
	Amount      float64
	PaymentDate time.Time
	RentMonths  *string
	Note        *string
}

// Create records a payment and reconciles the lease. RentMonths is stored
// verbatim as the payer's label; it has no effect on allocation.
func (s *PaymentService) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.PaymentDate.IsZero() {
		return nil, ErrInvalidDate
	}

	unlock := s.locks.Lock(input.LeaseID)
	defer unlock()

	lease, err := s.leaseRepo.FindByID(ctx, input.LeaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}
	if lease.IsTerminated() {
		return nil, ErrLeaseTerminated
	}

	payment := &models.Payment{
		LeaseID:     lease.ID,
		TenantID:    lease.TenantID,
		Reference:   uuid.NewString(),
		Amount:      input.Amount,
		PaymentDate: input.PaymentDate,
		RentMonths:  input.RentMonths,
		Note:        input.Note,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if _, err := s.reconcileSvc.reconcile(ctx, lease.ID); err != nil {
		return nil, fmt.Errorf("payment recorded but reconcile failed: %w", err)
	}

	return payment, nil
}

// SoftDelete excludes a payment from allocation going forward, keeping the
// row for history. The reason is mandatory; the lease is reconciled after.
func (s *PaymentService) SoftDelete(ctx context.Context, id uint, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load payment: %w", err)
	}
	if payment.IsDeleted() {
		return ErrPaymentDeleted
	}

	unlock := s.locks.Lock(payment.LeaseID)
	defer unlock()

	if err := s.repo.SoftDelete(ctx, id, reason); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	if _, err := s.reconcileSvc.reconcile(ctx, payment.LeaseID); err != nil {
		return fmt.Errorf("payment deleted but reconcile failed: %w", err)
	}
	return nil
}

// List returns payments matching the query
func (s *PaymentService) List(ctx context.Context, query *repository.PaymentQuery) ([]models.Payment, int64, error) {
	return s.repo.List(ctx, query)
}
