package analytics

import (
	"math"
	"sort"
	"time"
)

// TransactionRow is the settled payment considered for a reservation (the
// most recent one by PaidAt when several exist).
type TransactionRow struct {
	NetAmount     float64   `json:"montantNet"`
	CommissionFee float64   `json:"fraisCommission"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paidAt"`
}

// ReservationRow carries the reservation fields the aggregator reads.
type ReservationRow struct {
	ID            uint
	VehicleID     uint
	StartDate     time.Time
	EndDate       time.Time
	Days          int // explicit rental length; 0 means derive from the dates
	GrossAmount   float64
	CommissionFee float64
	Status        string
	CreatedAt     time.Time
	Transaction   *TransactionRow
}

// VehicleRow carries the listing fields the aggregator reads.
type VehicleRow struct {
	ID    uint
	Title string
	Views int64
}

// ReviewRow is one rating left on the owner.
type ReviewRow struct {
	Rating float64
}

// SeriesPoint is one bucket of the revenue time series.
type SeriesPoint struct {
	Label    string  `json:"label"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

// VehiclePerformance summarizes one listing over the period.
type VehiclePerformance struct {
	VehicleID uint    `json:"vehicleId"`
	Title     string  `json:"title"`
	Bookings  int     `json:"bookings"`
	Revenue   float64 `json:"revenue"`
	Occupancy int     `json:"occupancy"`
}

// DurationDistribution buckets rental lengths as percentages of all rentals.
type DurationDistribution struct {
	OneToThree  int `json:"1_3"`
	FourToSeven int `json:"4_7"`
	SevenPlus   int `json:"7_plus"`
}

// Report is the JSON-serializable aggregate returned to the dashboards.
type Report struct {
	Period               string               `json:"period"`
	RangeStart           time.Time            `json:"rangeStart"`
	RangeEnd             time.Time            `json:"rangeEnd"`
	TotalRevenue         float64              `json:"totalRevenue"`
	Bookings             int                  `json:"bookings"`
	ConfirmedBookings    int                  `json:"confirmedBookings"`
	OccupancyRate        int                  `json:"occupancyRate"`
	AverageRating        float64              `json:"averageRating"`
	AverageDuration      float64              `json:"averageDuration"`
	DurationDistribution DurationDistribution `json:"durationDistribution"`
	RevenueSeries        []SeriesPoint        `json:"revenueSeries"`
	TopVehicles          []VehiclePerformance `json:"topVehicles"`
	TotalViews           int64                `json:"totalViews"`
	ConversionRate       float64              `json:"conversionRate"`
}

// Input bundles the rows fetched for one (owner, period) report.
type Input struct {
	Period       string
	RangeStart   time.Time
	RangeEnd     time.Time
	Reservations []ReservationRow
	Vehicles     []VehicleRow
	Reviews      []ReviewRow
	TopVehicles  int // 5 on the analytics page, 3 on the overview
}

// Compute builds the aggregate report from fetched rows. It never fails:
// missing or invalid numeric inputs coalesce to zero and rates are clamped,
// which is the accepted tradeoff for a reporting dashboard.
func Compute(in Input) *Report {
	report := &Report{
		Period:     in.Period,
		RangeStart: in.RangeStart,
		RangeEnd:   in.RangeEnd,
	}

	daysInRange := DaysIn(in.RangeStart, in.RangeEnd)
	topN := in.TopVehicles
	if topN <= 0 {
		topN = 5
	}

	type vehicleAgg struct {
		title    string
		bookings int
		revenue  float64
		occupied int
	}
	perVehicle := map[uint]*vehicleAgg{}
	for _, v := range in.Vehicles {
		perVehicle[v.ID] = &vehicleAgg{title: v.Title}
		report.TotalViews += v.Views
	}

	var (
		totalRevenue float64
		occupiedDays int
		durations    []int
	)

	series := newSeries(in.Period, in.RangeStart, daysInRange)

	for _, r := range in.Reservations {
		net := NetRevenue(r)
		totalRevenue += net

		report.Bookings++
		if IsConfirmed(r.Status) {
			report.ConfirmedBookings++
		}

		overlap := OverlapDays(r.StartDate, r.EndDate, in.RangeStart, in.RangeEnd)
		occupiedDays += overlap

		durations = append(durations, durationDays(r))

		series.add(BasisDate(r), net)

		if agg, ok := perVehicle[r.VehicleID]; ok {
			agg.bookings++
			agg.revenue += net
			agg.occupied += overlap
		}
	}

	report.TotalRevenue = roundCurrency(totalRevenue)

	denom := len(in.Vehicles) * daysInRange
	if denom < 1 {
		denom = 1
	}
	report.OccupancyRate = clampPercent(ratio(float64(occupiedDays), float64(denom)) * 100)

	report.AverageRating = averageRating(in.Reviews)
	report.AverageDuration, report.DurationDistribution = durationStats(durations)
	report.RevenueSeries = series.points()

	// Top listings by revenue
	ranked := make([]VehiclePerformance, 0, len(perVehicle))
	for id, agg := range perVehicle {
		ranked = append(ranked, VehiclePerformance{
			VehicleID: id,
			Title:     agg.title,
			Bookings:  agg.bookings,
			Revenue:   roundCurrency(agg.revenue),
			Occupancy: clampPercent(ratio(float64(agg.occupied), float64(daysInRange)) * 100),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].VehicleID < ranked[j].VehicleID
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	report.TopVehicles = ranked

	if report.TotalViews > 0 {
		report.ConversionRate = round1(float64(report.ConfirmedBookings) / float64(report.TotalViews) * 100)
	}

	return report
}

// NetRevenue is the amount credited to the owner for one reservation: the
// settled transaction's net amount when one exists, otherwise gross minus
// commission floored at zero.
func NetRevenue(r ReservationRow) float64 {
	if r.Transaction != nil {
		return r.Transaction.NetAmount
	}
	net := r.GrossAmount - r.CommissionFee
	if net < 0 {
		return 0
	}
	return net
}

// BasisDate picks the date used to place a reservation into a time bucket:
// transaction date, else creation date, else start date.
func BasisDate(r ReservationRow) time.Time {
	if r.Transaction != nil && !r.Transaction.PaidAt.IsZero() {
		return r.Transaction.PaidAt
	}
	if !r.CreatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.StartDate
}

// OverlapDays counts the occupied days a rental span contributes inside
// [rangeStart, rangeEnd]. Spans are clipped to the range; any non-empty
// overlap counts at least one day.
func OverlapDays(start, end, rangeStart, rangeEnd time.Time) int {
	if start.After(end) {
		return 0
	}
	clipStart := start
	if clipStart.Before(rangeStart) {
		clipStart = rangeStart
	}
	clipEnd := end
	if clipEnd.After(rangeEnd) {
		clipEnd = rangeEnd
	}
	if !clipEnd.After(clipStart) {
		return 0
	}
	// Round partial days up so a span covering the whole range counts every
	// day of it (range ends sit at 23:59:59, not midnight).
	days := int(math.Ceil(clipEnd.Sub(clipStart).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

func durationDays(r ReservationRow) int {
	if r.Days > 0 {
		return r.Days
	}
	days := int(r.EndDate.Sub(r.StartDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

func averageRating(reviews []ReviewRow) float64 {
	var sum float64
	var count int
	for _, rv := range reviews {
		if rv.Rating > 0 {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return round1(sum / float64(count))
}

// durationStats returns the mean rental length and its bucket distribution.
// The last bucket absorbs the rounding remainder so the three percentages
// always sum to 100 when any rental exists.
func durationStats(durations []int) (float64, DurationDistribution) {
	var dist DurationDistribution
	if len(durations) == 0 {
		return 0, dist
	}

	var sum int
	var short, medium, long int
	for _, d := range durations {
		sum += d
		switch {
		case d <= 3:
			short++
		case d <= 7:
			medium++
		default:
			long++
		}
	}

	total := len(durations)
	dist.OneToThree = int(math.Round(float64(short) / float64(total) * 100))
	dist.FourToSeven = int(math.Round(float64(medium) / float64(total) * 100))
	dist.SevenPlus = 100 - dist.OneToThree - dist.FourToSeven

	return round1(float64(sum) / float64(total)), dist
}

// revenueSeries accumulates per-bucket revenue and booking counts.
type revenueSeries struct {
	byMonth bool
	start   time.Time
	revenue []float64
	count   []int
}

func newSeries(period string, rangeStart time.Time, daysInRange int) *revenueSeries {
	if period == PeriodWeek || period == PeriodMonth {
		return &revenueSeries{
			start:   rangeStart,
			revenue: make([]float64, daysInRange),
			count:   make([]int, daysInRange),
		}
	}
	// year (and fallback): one bucket per calendar month
	return &revenueSeries{
		byMonth: true,
		start:   rangeStart,
		revenue: make([]float64, 12),
		count:   make([]int, 12),
	}
}

func (s *revenueSeries) add(basis time.Time, amount float64) {
	var idx int
	if s.byMonth {
		if basis.Year() != s.start.Year() {
			return
		}
		idx = int(basis.Month()) - 1
	} else {
		idx = int(startOfDay(basis).Sub(startOfDay(s.start)).Hours() / 24)
	}
	if idx < 0 || idx >= len(s.revenue) {
		return
	}
	s.revenue[idx] += amount
	s.count[idx]++
}

func (s *revenueSeries) points() []SeriesPoint {
	points := make([]SeriesPoint, len(s.revenue))
	for i := range s.revenue {
		var label string
		if s.byMonth {
			label = time.Month(i + 1).String()[:3]
		} else {
			label = s.start.AddDate(0, 0, i).Format("2006-01-02")
		}
		points[i] = SeriesPoint{
			Label:    label,
			Revenue:  roundCurrency(s.revenue[i]),
			Bookings: s.count[i],
		}
	}
	return points
}

// ratio guards divisions so non-finite results never leak into the report.
func ratio(num, denom float64) float64 {
	if denom == 0 {
		return 0
	}
	v := num / denom
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func roundCurrency(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v)
}

func round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}

func clampPercent(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
