package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlyObligations(amount float64, months ...time.Month) []Obligation {
	obs := make([]Obligation, 0, len(months))
	for _, m := range months {
		obs = append(obs, Obligation{
			Seq:     MonthKey(2024, m),
			Amount:  amount,
			DueDate: time.Date(2024, m, 5, 0, 0, 0, 0, time.UTC),
		})
	}
	return obs
}

func TestAllocate_ExactMatch(t *testing.T) {
	obs := monthlyObligations(10000, time.January, time.February, time.March)

	results, err := Allocate(obs, 20000, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, StatusPaid, results[0].Status)
	assert.Equal(t, 10000.0, results[0].PaidAmount)
	assert.Equal(t, 0.0, results[0].RemainingBalance)

	assert.Equal(t, StatusPaid, results[1].Status)
	assert.Equal(t, 10000.0, results[1].PaidAmount)

	assert.Equal(t, StatusUnpaid, results[2].Status)
	assert.Equal(t, 0.0, results[2].PaidAmount)
	assert.Equal(t, 10000.0, results[2].RemainingBalance)
}

func TestAllocate_PartialMidSequence(t *testing.T) {
	obs := monthlyObligations(10000, time.January, time.February, time.March)

	results, err := Allocate(obs, 15000, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, StatusPaid, results[0].Status)

	assert.Equal(t, StatusPartial, results[1].Status)
	assert.Equal(t, 5000.0, results[1].PaidAmount)
	assert.Equal(t, 5000.0, results[1].RemainingBalance)

	assert.Equal(t, StatusUnpaid, results[2].Status)
}

func TestAllocate_OpeningBalancePrecedence(t *testing.T) {
	obs := monthlyObligations(10000, time.January)

	results, err := Allocate(obs, 12000, 5000)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Opening balance is retired first.
	assert.True(t, results[0].Obligation.IsOpening())
	assert.Equal(t, StatusPaid, results[0].Status)
	assert.Equal(t, 5000.0, results[0].PaidAmount)

	assert.Equal(t, StatusPartial, results[1].Status)
	assert.Equal(t, 7000.0, results[1].PaidAmount)
	assert.Equal(t, 3000.0, results[1].RemainingBalance)
}

func TestAllocate_NegativePaymentRejected(t *testing.T) {
	obs := monthlyObligations(10000, time.January)

	_, err := Allocate(obs, -1, 0)
	assert.ErrorIs(t, err, ErrNegativePayment)

	_, err = Allocate(obs, 100, -50)
	assert.ErrorIs(t, err, ErrNegativeOpening)
}

func TestAllocate_EmptyObligations(t *testing.T) {
	results, err := Allocate(nil, 5000, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAllocate_Overpayment(t *testing.T) {
	obs := monthlyObligations(10000, time.January, time.February)

	results, err := Allocate(obs, 50000, 0)
	require.NoError(t, err)
	for _, res := range results {
		assert.Equal(t, StatusPaid, res.Status)
		assert.Equal(t, res.Obligation.Amount, res.PaidAmount)
	}
}

// A pool one cent short of an obligation leaves it partial. Allocation is
// exact; the epsilon tolerance belongs to persistence comparisons only.
func TestAllocate_OneCentShortStaysPartial(t *testing.T) {
	obs := monthlyObligations(10000, time.January, time.February)

	results, err := Allocate(obs, 19999.99, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, StatusPaid, results[0].Status)
	assert.Equal(t, 10000.0, results[0].PaidAmount)

	assert.Equal(t, StatusPartial, results[1].Status)
	assert.InDelta(t, 9999.99, results[1].PaidAmount, 1e-9)
	assert.InDelta(t, 0.01, results[1].RemainingBalance, 1e-9)

	var allocated float64
	for _, res := range results {
		allocated += res.PaidAmount
	}
	assert.InDelta(t, 19999.99, allocated, 1e-9)
}

// Conservation: sum of allocated amounts equals min(totalPaid, total owed).
func TestAllocate_Conservation(t *testing.T) {
	obs := monthlyObligations(7500, time.January, time.February, time.March, time.April)
	opening := 2500.0
	totalOwed := opening + 4*7500

	for _, totalPaid := range []float64{0, 100, 2500, 9000, 17500, totalOwed, totalOwed + 5000} {
		results, err := Allocate(obs, totalPaid, opening)
		require.NoError(t, err)

		var allocated float64
		for _, res := range results {
			allocated += res.PaidAmount
			assert.InDelta(t, res.Obligation.Amount, res.PaidAmount+res.RemainingBalance, Epsilon)
			assert.LessOrEqual(t, res.PaidAmount, res.Obligation.Amount+Epsilon)
			assert.GreaterOrEqual(t, res.PaidAmount, 0.0)
			assert.GreaterOrEqual(t, res.RemainingBalance, 0.0)
		}
		assert.InDelta(t, min(totalPaid, totalOwed), allocated, Epsilon, "totalPaid=%v", totalPaid)
	}
}

// Monotonicity: paying more never decreases an earlier obligation's paid
// amount and never un-pays a fully-paid obligation.
func TestAllocate_Monotonicity(t *testing.T) {
	obs := monthlyObligations(6000, time.January, time.February, time.March)

	var prev []AllocationResult
	for totalPaid := 0.0; totalPaid <= 20000; totalPaid += 1500 {
		results, err := Allocate(obs, totalPaid, 1000)
		require.NoError(t, err)

		if prev != nil {
			for i := range results {
				assert.GreaterOrEqual(t, results[i].PaidAmount, prev[i].PaidAmount)
				if prev[i].Status == StatusPaid {
					assert.Equal(t, StatusPaid, results[i].Status)
				}
			}
		}
		prev = results
	}
}

// FIFO order: an older obligation is never short while a newer one is paid.
func TestAllocate_FIFOOrder(t *testing.T) {
	obs := monthlyObligations(4000, time.January, time.February, time.March, time.April, time.May)

	for totalPaid := 0.0; totalPaid <= 22000; totalPaid += 999 {
		results, err := Allocate(obs, totalPaid, 3000)
		require.NoError(t, err)

		for i := 0; i < len(results)-1; i++ {
			if results[i].Status != StatusPaid {
				for j := i + 1; j < len(results); j++ {
					assert.NotEqual(t, StatusPaid, results[j].Status,
						"obligation %s paid while older %s is %s",
						results[j].Obligation.Seq, results[i].Obligation.Seq, results[i].Status)
				}
				break
			}
		}
	}
}

// Out-of-order input is sorted before allocation.
func TestAllocate_SortsBySequence(t *testing.T) {
	obs := []Obligation{
		{Seq: MonthKey(2024, time.March), Amount: 10000},
		{Seq: MonthKey(2024, time.January), Amount: 10000},
		{Seq: MonthKey(2024, time.February), Amount: 10000},
	}

	results, err := Allocate(obs, 10000, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, MonthKey(2024, time.January), results[0].Obligation.Seq)
	assert.Equal(t, StatusPaid, results[0].Status)
	assert.Equal(t, StatusUnpaid, results[1].Status)
	assert.Equal(t, StatusUnpaid, results[2].Status)
}

func TestSequenceKey_Ordering(t *testing.T) {
	assert.True(t, OpeningKey().Before(MonthKey(2020, time.January)))
	assert.False(t, MonthKey(2020, time.January).Before(OpeningKey()))
	assert.True(t, MonthKey(2023, time.December).Before(MonthKey(2024, time.January)))
	assert.True(t, MonthKey(2024, time.January).Before(MonthKey(2024, time.February)))
	assert.False(t, MonthKey(2024, time.February).Before(MonthKey(2024, time.February)))

	assert.Equal(t, "opening", OpeningKey().String())
	assert.Equal(t, "2024-03", MonthKey(2024, time.March).String())
}
