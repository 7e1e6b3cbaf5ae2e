package services

import (
	"context"
	"testing"
	"time"

	"github.com/rentora/rentora-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeaseService(leaseRepo *mockLeaseRepository, shopRepo *mockShopRepository, depositRepo *mockDepositRepository, adjustmentRepo *mockAdjustmentRepository, invoiceRepo *mockInvoiceRepository) *LeaseService {
	reconcileSvc := newTestReconcileService(leaseRepo, invoiceRepo, &mockPaymentRepository{}, adjustmentRepo)
	return NewLeaseService(leaseRepo, shopRepo, depositRepo, adjustmentRepo, reconcileSvc, 60)
}

func validLeaseInput() CreateLeaseInput {
	return CreateLeaseInput{
		ShopID:        1,
		TenantID:      1,
		MonthlyRent:   10000,
		StartDate:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		DepositAmount: 20000,
	}
}

func TestCreateLease_RejectsInvalidInput(t *testing.T) {
	svc := newTestLeaseService(&mockLeaseRepository{}, &mockShopRepository{}, &mockDepositRepository{}, &mockAdjustmentRepository{}, &mockInvoiceRepository{})

	input := validLeaseInput()
	input.MonthlyRent = 0
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	input = validLeaseInput()
	input.OpeningBalance = -100
	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	input = validLeaseInput()
	input.StartDate = time.Time{}
	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreateLease_RejectsOccupiedShop(t *testing.T) {
	shopRepo := &mockShopRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Shop, error) {
			return &models.Shop{ID: id, Status: models.ShopStatusOccupied}, nil
		},
	}
	leaseRepo := &mockLeaseRepository{
		mockFindActiveByShop: func(ctx context.Context, shopID uint) (*models.Lease, error) {
			return testLease(9, 0), nil
		},
	}

	svc := newTestLeaseService(leaseRepo, shopRepo, &mockDepositRepository{}, &mockAdjustmentRepository{}, &mockInvoiceRepository{})
	_, err := svc.Create(context.Background(), validLeaseInput())
	assert.ErrorIs(t, err, ErrShopOccupied)
}

func TestCreateLease_OccupiesShopAndGeneratesInvoices(t *testing.T) {
	shop := &models.Shop{ID: 1, Status: models.ShopStatusVacant}
	shopRepo := &mockShopRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Shop, error) {
			return shop, nil
		},
	}

	var created *models.Lease
	leaseRepo := &mockLeaseRepository{
		mockCreate: func(ctx context.Context, lease *models.Lease) error {
			lease.ID = 1
			created = lease
			return nil
		},
	}
	leaseRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Lease, error) {
		return created, nil
	}

	var deposit *models.SecurityDeposit
	depositRepo := &mockDepositRepository{
		mockCreate: func(ctx context.Context, d *models.SecurityDeposit) error {
			deposit = d
			return nil
		},
	}

	var replaced []models.Invoice
	invoiceRepo := &mockInvoiceRepository{
		mockReplaceForLease: func(ctx context.Context, leaseID uint, invoices []models.Invoice) error {
			replaced = invoices
			return nil
		},
	}

	svc := newTestLeaseService(leaseRepo, shopRepo, depositRepo, &mockAdjustmentRepository{}, invoiceRepo)
	lease, err := svc.Create(context.Background(), validLeaseInput())

	require.NoError(t, err)
	assert.Equal(t, models.LeaseStatusActive, lease.Status)
	assert.Equal(t, models.ShopStatusOccupied, shop.Status)

	require.NotNil(t, deposit)
	assert.Equal(t, lease.ID, deposit.LeaseID)
	assert.InDelta(t, 20000, deposit.Amount, 0.001)

	// Backfilled from January 2024 through the current month.
	assert.NotEmpty(t, replaced)
	assert.Equal(t, 2024, replaced[0].Year)
	assert.Equal(t, 1, replaced[0].Month)
}

func TestAdjustRent_RejectsTerminatedLease(t *testing.T) {
	leaseRepo := &mockLeaseRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lease, error) {
			lease := testLease(id, 0)
			lease.Status = models.LeaseStatusTerminated
			return lease, nil
		},
	}

	svc := newTestLeaseService(leaseRepo, &mockShopRepository{}, &mockDepositRepository{}, &mockAdjustmentRepository{}, &mockInvoiceRepository{})
	err := svc.AdjustRent(context.Background(), 1, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 12000, nil)
	assert.ErrorIs(t, err, ErrLeaseTerminated)
}

func TestAdjustRent_RecordsAndRegenerates(t *testing.T) {
	leaseRepo := &mockLeaseRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lease, error) {
			return testLease(id, 0), nil
		},
	}

	var stored *models.RentAdjustment
	adjustmentRepo := &mockAdjustmentRepository{
		mockCreate: func(ctx context.Context, adjustment *models.RentAdjustment) error {
			stored = adjustment
			return nil
		},
		mockFindByLease: func(ctx context.Context, leaseID uint) ([]models.RentAdjustment, error) {
			if stored == nil {
				return nil, nil
			}
			return []models.RentAdjustment{*stored}, nil
		},
	}

	var replaced []models.Invoice
	invoiceRepo := &mockInvoiceRepository{
		mockReplaceForLease: func(ctx context.Context, leaseID uint, invoices []models.Invoice) error {
			replaced = invoices
			return nil
		},
	}

	svc := newTestLeaseService(leaseRepo, &mockShopRepository{}, &mockDepositRepository{}, adjustmentRepo, invoiceRepo)
	err := svc.AdjustRent(context.Background(), 1, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), 12000, nil)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.InDelta(t, 12000, stored.NewRent, 0.001)

	require.NotEmpty(t, replaced)
	byPeriod := map[int]float64{}
	for _, inv := range replaced {
		if inv.Year == 2024 {
			byPeriod[inv.Month] = inv.Amount
		}
	}
	assert.InDelta(t, 10000, byPeriod[1], 0.001)
	assert.InDelta(t, 12000, byPeriod[3], 0.001)
}

func TestRefreshStatuses_ExpiresPastEndDate(t *testing.T) {
	past := time.Now().AddDate(0, -1, 0)
	lease := testLease(1, 0)
	lease.EndDate = &past

	var updated *models.Lease
	leaseRepo := &mockLeaseRepository{
		mockFindNotTerminated: func(ctx context.Context) ([]models.Lease, error) {
			return []models.Lease{*lease}, nil
		},
		mockUpdate: func(ctx context.Context, l *models.Lease) error {
			updated = l
			return nil
		},
	}

	svc := newTestLeaseService(leaseRepo, &mockShopRepository{}, &mockDepositRepository{}, &mockAdjustmentRepository{}, &mockInvoiceRepository{})
	err := svc.RefreshStatuses(context.Background())

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.LeaseStatusExpired, updated.Status)
}

func TestRefreshStatuses_FlagsExpiringSoon(t *testing.T) {
	soon := time.Now().AddDate(0, 0, 30)
	lease := testLease(1, 0)
	lease.EndDate = &soon

	var updated *models.Lease
	leaseRepo := &mockLeaseRepository{
		mockFindNotTerminated: func(ctx context.Context) ([]models.Lease, error) {
			return []models.Lease{*lease}, nil
		},
		mockUpdate: func(ctx context.Context, l *models.Lease) error {
			updated = l
			return nil
		},
	}

	svc := newTestLeaseService(leaseRepo, &mockShopRepository{}, &mockDepositRepository{}, &mockAdjustmentRepository{}, &mockInvoiceRepository{})
	err := svc.RefreshStatuses(context.Background())

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.LeaseStatusExpiringSoon, updated.Status)
}

func TestRefreshStatuses_LeavesCurrentLeasesAlone(t *testing.T) {
	farOut := time.Now().AddDate(1, 0, 0)
	lease := testLease(1, 0)
	lease.EndDate = &farOut

	leaseRepo := &mockLeaseRepository{
		mockFindNotTerminated: func(ctx context.Context) ([]models.Lease, error) {
			return []models.Lease{*lease}, nil
		},
		mockUpdate: func(ctx context.Context, l *models.Lease) error {
			t.Fatalf("unexpected update for lease %d", l.ID)
			return nil
		},
	}

	svc := newTestLeaseService(leaseRepo, &mockShopRepository{}, &mockDepositRepository{}, &mockAdjustmentRepository{}, &mockInvoiceRepository{})
	err := svc.RefreshStatuses(context.Background())
	require.NoError(t, err)
}
