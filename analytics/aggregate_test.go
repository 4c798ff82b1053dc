package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yearRange(year int) (time.Time, time.Time) {
	return ResolvePeriod(PeriodYear, time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC))
}

func TestNetRevenueTransactionWins(t *testing.T) {
	// A settled transaction's net amount beats the gross-minus-commission
	// fallback, even when the fallback would be larger.
	r := ReservationRow{
		GrossAmount:   100000,
		CommissionFee: 10000, // fallback would be 90000
		Transaction:   &TransactionRow{NetAmount: 85000},
	}
	assert.Equal(t, 85000.0, NetRevenue(r))
}

func TestNetRevenueFallbackFloorsAtZero(t *testing.T) {
	assert.Equal(t, 90000.0, NetRevenue(ReservationRow{GrossAmount: 100000, CommissionFee: 10000}))
	assert.Equal(t, 0.0, NetRevenue(ReservationRow{GrossAmount: 5000, CommissionFee: 8000}))
}

func TestBasisDatePrecedence(t *testing.T) {
	paid := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)

	withTx := ReservationRow{CreatedAt: created, StartDate: start, Transaction: &TransactionRow{PaidAt: paid}}
	assert.Equal(t, paid, BasisDate(withTx))

	withCreated := ReservationRow{CreatedAt: created, StartDate: start}
	assert.Equal(t, created, BasisDate(withCreated))

	startOnly := ReservationRow{StartDate: start}
	assert.Equal(t, start, BasisDate(startOnly))
}

func TestOverlapDaysClipsToRange(t *testing.T) {
	rangeStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)

	// Fully inside
	assert.Equal(t, 5, OverlapDays(
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		rangeStart, rangeEnd))

	// Straddles the start
	assert.Equal(t, 4, OverlapDays(
		time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		rangeStart, rangeEnd))

	// Entirely outside
	assert.Equal(t, 0, OverlapDays(
		time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC),
		rangeStart, rangeEnd))

	// Inverted span
	assert.Equal(t, 0, OverlapDays(
		time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		rangeStart, rangeEnd))
}

func TestComputeEmptyInput(t *testing.T) {
	start, end := yearRange(2026)
	report := Compute(Input{Period: PeriodYear, RangeStart: start, RangeEnd: end})

	assert.Equal(t, 0.0, report.TotalRevenue)
	assert.Equal(t, 0, report.Bookings)
	assert.Equal(t, 0, report.OccupancyRate)
	assert.Equal(t, 0.0, report.ConversionRate)
	assert.Len(t, report.RevenueSeries, 12)
	assert.Empty(t, report.TopVehicles)
	dist := report.DurationDistribution
	assert.Equal(t, 0, dist.OneToThree+dist.FourToSeven+dist.SevenPlus)
}

func TestComputeSeriesLengths(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		period string
		want   int
	}{
		{PeriodWeek, 7},
		{PeriodMonth, 30},
		{PeriodYear, 12},
	} {
		start, end := ResolvePeriod(tc.period, now)
		report := Compute(Input{Period: tc.period, RangeStart: start, RangeEnd: end})
		assert.Len(t, report.RevenueSeries, tc.want, "period %s", tc.period)
	}
}

func TestComputeOccupancyBounded(t *testing.T) {
	start, end := ResolvePeriod(PeriodWeek, time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))

	// One vehicle occupied far beyond the range must clamp at 100.
	report := Compute(Input{
		Period:     PeriodWeek,
		RangeStart: start,
		RangeEnd:   end,
		Vehicles:   []VehicleRow{{ID: 1, Title: "Corolla"}},
		Reservations: []ReservationRow{{
			VehicleID: 1,
			StartDate: start.AddDate(0, 0, -30),
			EndDate:   end.AddDate(0, 0, 30),
			Status:    StatusConfirmed,
		}},
	})
	assert.Equal(t, 100, report.OccupancyRate)

	// No vehicles at all: denominator floors at 1, rate stays in range.
	report = Compute(Input{
		Period:     PeriodWeek,
		RangeStart: start,
		RangeEnd:   end,
		Reservations: []ReservationRow{{
			VehicleID: 9,
			StartDate: start,
			EndDate:   end,
			Status:    StatusConfirmed,
		}},
	})
	assert.GreaterOrEqual(t, report.OccupancyRate, 0)
	assert.LessOrEqual(t, report.OccupancyRate, 100)
}

func TestComputeDurationDistributionSumsToHundred(t *testing.T) {
	start, end := yearRange(2026)
	mk := func(days int) ReservationRow {
		s := start.AddDate(0, 1, 0)
		return ReservationRow{
			VehicleID: 1,
			StartDate: s,
			EndDate:   s.AddDate(0, 0, days),
			Days:      days,
			Status:    StatusCompleted,
			CreatedAt: s,
		}
	}

	report := Compute(Input{
		Period:       PeriodYear,
		RangeStart:   start,
		RangeEnd:     end,
		Vehicles:     []VehicleRow{{ID: 1, Title: "Corolla"}},
		Reservations: []ReservationRow{mk(1), mk(2), mk(5), mk(6), mk(10), mk(14), mk(3)},
	})

	dist := report.DurationDistribution
	assert.Equal(t, 100, dist.OneToThree+dist.FourToSeven+dist.SevenPlus)
	assert.Greater(t, report.AverageDuration, 0.0)
}

func TestComputeRevenueAndTopVehicles(t *testing.T) {
	start, end := yearRange(2026)
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	report := Compute(Input{
		Period:     PeriodYear,
		RangeStart: start,
		RangeEnd:   end,
		Vehicles: []VehicleRow{
			{ID: 1, Title: "Corolla", Views: 100},
			{ID: 2, Title: "Tucson", Views: 100},
		},
		Reservations: []ReservationRow{
			{
				VehicleID: 1, StartDate: feb, EndDate: feb.AddDate(0, 0, 3),
				Days: 3, Status: StatusCompleted, CreatedAt: feb,
				Transaction: &TransactionRow{NetAmount: 30000, PaidAt: feb},
			},
			{
				VehicleID: 2, StartDate: mar, EndDate: mar.AddDate(0, 0, 5),
				Days: 5, Status: StatusConfirmed, CreatedAt: mar,
				GrossAmount: 100000, CommissionFee: 15000,
			},
		},
		TopVehicles: 5,
	})

	assert.Equal(t, 115000.0, report.TotalRevenue)
	assert.Equal(t, 2, report.Bookings)
	assert.Equal(t, 2, report.ConfirmedBookings)

	require.Len(t, report.TopVehicles, 2)
	assert.Equal(t, uint(2), report.TopVehicles[0].VehicleID) // 85000 > 30000
	assert.Equal(t, 85000.0, report.TopVehicles[0].Revenue)

	// Revenue lands in the right monthly buckets
	assert.Equal(t, "Feb", report.RevenueSeries[1].Label)
	assert.Equal(t, 30000.0, report.RevenueSeries[1].Revenue)
	assert.Equal(t, 85000.0, report.RevenueSeries[2].Revenue)

	// 2 confirmed / 200 views = 1.0%
	assert.Equal(t, 1.0, report.ConversionRate)
}

func TestComputeConversionZeroWithoutViews(t *testing.T) {
	start, end := yearRange(2026)
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)

	report := Compute(Input{
		Period:     PeriodYear,
		RangeStart: start,
		RangeEnd:   end,
		Vehicles:   []VehicleRow{{ID: 1, Title: "Corolla", Views: 0}},
		Reservations: []ReservationRow{{
			VehicleID: 1, StartDate: feb, EndDate: feb.AddDate(0, 0, 2),
			Days: 2, Status: StatusConfirmed, CreatedAt: feb,
		}},
	})

	assert.Equal(t, 0.0, report.ConversionRate)
}

func TestComputeTopVehicleTiesBrokenByID(t *testing.T) {
	start, end := yearRange(2026)
	feb := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	mk := func(vehicleID uint) ReservationRow {
		return ReservationRow{
			VehicleID: vehicleID, StartDate: feb, EndDate: feb.AddDate(0, 0, 2),
			Days: 2, Status: StatusConfirmed, CreatedAt: feb,
			Transaction: &TransactionRow{NetAmount: 10000, PaidAt: feb},
		}
	}

	report := Compute(Input{
		Period:     PeriodYear,
		RangeStart: start,
		RangeEnd:   end,
		Vehicles: []VehicleRow{
			{ID: 3, Title: "C"}, {ID: 1, Title: "A"}, {ID: 2, Title: "B"},
		},
		Reservations: []ReservationRow{mk(3), mk(1), mk(2)},
	})

	require.Len(t, report.TopVehicles, 3)
	assert.Equal(t, uint(1), report.TopVehicles[0].VehicleID)
	assert.Equal(t, uint(2), report.TopVehicles[1].VehicleID)
	assert.Equal(t, uint(3), report.TopVehicles[2].VehicleID)
}

func TestComputeAverageRating(t *testing.T) {
	start, end := yearRange(2026)

	report := Compute(Input{
		Period:     PeriodYear,
		RangeStart: start,
		RangeEnd:   end,
		Reviews:    []ReviewRow{{Rating: 5}, {Rating: 4}, {Rating: 4}},
	})

	assert.Equal(t, 4.3, report.AverageRating)
}
