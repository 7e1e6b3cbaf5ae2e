package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rentora/rentora-api/internal/ledger"
	"github.com/rentora/rentora-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type settlementFixture struct {
	svc   *SettlementService
	lease *models.Lease
}

// A tenant holding two leases: lease 1 owes 8000, lease 2 carries a
// 4000 credit from an overpayment. db is only touched by Confirm.
func newSettlementFixture(depositAmount float64, db *gorm.DB) *settlementFixture {
	lease := testLease(1, 0)

	leaseRepo := &mockLeaseRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lease, error) {
			if id == 1 {
				return lease, nil
			}
			return testLease(id, 0), nil
		},
		mockFindOtherActiveByTenant: func(ctx context.Context, tenantID, excludeLeaseID uint) ([]models.Lease, error) {
			return []models.Lease{*testLease(2, 0)}, nil
		},
	}

	invoiceRepo := &mockInvoiceRepository{
		mockFindByLease: func(ctx context.Context, leaseID uint) ([]models.Invoice, error) {
			if leaseID == 1 {
				return []models.Invoice{
					testInvoice(11, 2024, 1, 8000, 0, ledger.StatusUnpaid),
				}, nil
			}
			return nil, nil
		},
	}

	paymentRepo := &mockPaymentRepository{
		mockFindActiveByLease: func(ctx context.Context, leaseID uint) ([]models.Payment, error) {
			if leaseID == 2 {
				return []models.Payment{
					{ID: 21, LeaseID: 2, Amount: 4000, PaymentDate: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)},
				}, nil
			}
			return nil, nil
		},
		mockSumActiveByLease: func(ctx context.Context, leaseID uint) (float64, error) {
			if leaseID == 2 {
				return 4000, nil
			}
			return 0, nil
		},
	}

	depositRepo := &mockDepositRepository{}
	if depositAmount > 0 {
		depositRepo.mockFindByLease = func(ctx context.Context, leaseID uint) (*models.SecurityDeposit, error) {
			return &models.SecurityDeposit{ID: 1, LeaseID: leaseID, Amount: depositAmount}, nil
		}
	}

	locks := newLeaseLocks()
	reconcileSvc := NewReconcileService(leaseRepo, invoiceRepo, paymentRepo, &mockAdjustmentRepository{}, locks)
	ledgerSvc := NewLedgerService(leaseRepo, invoiceRepo, paymentRepo)

	svc := NewSettlementService(db, leaseRepo, &mockShopRepository{}, depositRepo, nil, ledgerSvc, reconcileSvc, locks)
	return &settlementFixture{svc: svc, lease: lease}
}

func newSettlementDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestSettlementPreview_DepositAndCreditTransfer(t *testing.T) {
	f := newSettlementFixture(3000, nil)

	settlement, err := f.svc.Preview(context.Background(), 1, ledger.SettlementOptions{
		UseSecurityDeposit: true,
		CreditTransfer:     4000,
	})
	require.NoError(t, err)

	assert.InDelta(t, 8000, settlement.CurrentDue, 0.001)
	assert.InDelta(t, 3000, settlement.DepositApplied, 0.001)
	assert.InDelta(t, 4000, settlement.CreditTransferred, 0.001)
	assert.InDelta(t, -4000, settlement.GlobalLedgerBalance, 0.001)
	assert.InDelta(t, 1000, settlement.FinalAmount, 0.001)
}

func TestSettlementPreview_RejectsOverTransfer(t *testing.T) {
	f := newSettlementFixture(3000, nil)

	// The tenant's credit elsewhere is 4000; asking for more must fail
	// loudly rather than be clamped.
	_, err := f.svc.Preview(context.Background(), 1, ledger.SettlementOptions{
		UseSecurityDeposit: true,
		CreditTransfer:     4500,
	})
	assert.ErrorIs(t, err, ledger.ErrOverTransfer)
}

func TestSettlementPreview_NoDeposit(t *testing.T) {
	f := newSettlementFixture(0, nil)

	settlement, err := f.svc.Preview(context.Background(), 1, ledger.SettlementOptions{
		UseSecurityDeposit: true,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0, settlement.DepositApplied, 0.001)
	assert.InDelta(t, 8000, settlement.FinalAmount, 0.001)
}

func TestSettlementPreview_TerminatedLease(t *testing.T) {
	leaseRepo := &mockLeaseRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Lease, error) {
			lease := testLease(id, 0)
			lease.Status = models.LeaseStatusTerminated
			return lease, nil
		},
	}
	locks := newLeaseLocks()
	reconcileSvc := NewReconcileService(leaseRepo, &mockInvoiceRepository{}, &mockPaymentRepository{}, &mockAdjustmentRepository{}, locks)
	ledgerSvc := NewLedgerService(leaseRepo, &mockInvoiceRepository{}, &mockPaymentRepository{})
	svc := NewSettlementService(nil, leaseRepo, &mockShopRepository{}, &mockDepositRepository{}, nil, ledgerSvc, reconcileSvc, locks)

	_, err := svc.Preview(context.Background(), 1, ledger.SettlementOptions{})
	assert.ErrorIs(t, err, ErrLeaseTerminated)
}

func TestSettlementConfirm_TerminatesAndPersists(t *testing.T) {
	db, mock := newSettlementDB(t)
	f := newSettlementFixture(3000, db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leases" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "shops" SET "status"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "security_deposits" SET "used"=used`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "settlements"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	note := "tenant moved out"
	record, err := f.svc.Confirm(context.Background(), 1, ledger.SettlementOptions{
		UseSecurityDeposit: true,
		CreditTransfer:     4000,
	}, &note)
	require.NoError(t, err)

	assert.Equal(t, models.LeaseStatusTerminated, f.lease.Status)
	require.NotNil(t, f.lease.TerminatedAt)
	assert.Equal(t, &note, f.lease.TerminationNote)

	assert.Equal(t, uint(1), record.LeaseID)
	assert.InDelta(t, 8000, record.CurrentDue, 0.001)
	assert.InDelta(t, 3000, record.DepositApplied, 0.001)
	assert.InDelta(t, 4000, record.CreditTransferred, 0.001)
	assert.InDelta(t, 1000, record.FinalAmount, 0.001)
	assert.False(t, record.ConfirmedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementConfirm_SkipsDepositUpdateWhenNothingApplied(t *testing.T) {
	db, mock := newSettlementDB(t)
	f := newSettlementFixture(0, db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leases" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "shops" SET "status"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "settlements"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	record, err := f.svc.Confirm(context.Background(), 1, ledger.SettlementOptions{}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0, record.DepositApplied, 0.001)
	assert.InDelta(t, 8000, record.FinalAmount, 0.001)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementConfirm_RollsBackWhenShopUpdateFails(t *testing.T) {
	db, mock := newSettlementDB(t)
	f := newSettlementFixture(0, db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leases" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "shops" SET "status"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := f.svc.Confirm(context.Background(), 1, ledger.SettlementOptions{}, nil)
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettlementConfirm_RejectsOverTransferBeforeWriting(t *testing.T) {
	db, mock := newSettlementDB(t)
	f := newSettlementFixture(3000, db)

	// No expectations registered: any statement reaching the database
	// would fail the test.
	_, err := f.svc.Confirm(context.Background(), 1, ledger.SettlementOptions{
		UseSecurityDeposit: true,
		CreditTransfer:     4500,
	}, nil)
	assert.ErrorIs(t, err, ledger.ErrOverTransfer)

	require.NoError(t, mock.ExpectationsWereMet())
}
