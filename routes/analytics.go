package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/analytics"
	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
)

// reportCache memoizes computed reports. Redis is preferred when configured
// so horizontally scaled instances share results; the in-process cache is the
// single-instance fallback.
var reportCache analytics.Cache

// InitAnalyticsCache selects the report cache backend. Called once from main
// after storage is connected.
func InitAnalyticsCache() {
	if os.Getenv("REDIS_URL") != "" && storage.Redis != nil {
		reportCache = analytics.NewRedisCache(storage.Redis)
		return
	}
	reportCache = analytics.NewMemoryCache()
}

// GetUserAnalytics serves the owner dashboard report (top 5 vehicles).
func GetUserAnalytics(ctx iris.Context) {
	serveReport(ctx, 5, false)
}

// GetUserOverview serves the condensed home-screen report (top 3 vehicles).
func GetUserOverview(ctx iris.Context) {
	serveReport(ctx, 3, false)
}

// GetUserPaymentsSummary serves the payout-oriented slice of the same report
// plus the settled transactions for the period. It shares the report's
// net-revenue rule so the two surfaces never diverge.
func GetUserPaymentsSummary(ctx iris.Context) {
	serveReport(ctx, 3, true)
}

func serveReport(ctx iris.Context, topN int, withTransactions bool) {
	id := ctx.Params().Get("id")
	userID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid ID", "User ID must be numeric.", ctx)
		return
	}

	period := ctx.URLParamDefault("period", analytics.PeriodYear)
	rangeStart, rangeEnd := analytics.ResolvePeriod(period, time.Now())

	// The payments summary reads the report fields but attaches fresh
	// transaction rows, so only the plain reports are cached.
	cacheable := !withTransactions && topN == 5
	if cacheable {
		if report, ok := reportCache.Get(uint(userID), period); ok {
			ctx.JSON(report)
			return
		}
	}

	input, err := fetchReportInput(uint(userID), period, rangeStart, rangeEnd, topN)
	if err != nil {
		log.Printf("analytics: failed to fetch rows for user %d: %v", userID, err)
		utils.CreateInternalServerError(ctx)
		return
	}

	report := analytics.Compute(*input)

	if cacheable {
		reportCache.Set(uint(userID), period, report)
	}

	if !withTransactions {
		ctx.JSON(report)
		return
	}

	var transactions []models.Transaction
	storage.DB.
		Joins("JOIN reservations ON reservations.id = transactions.reservation_id").
		Where("reservations.owner_id = ? AND transactions.status = ?", userID, "paid").
		Where("transactions.created_at >= ? AND transactions.created_at <= ?", rangeStart, rangeEnd).
		Order("transactions.created_at DESC").
		Find(&transactions)
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	var totalCommission float64
	for _, tx := range transactions {
		totalCommission += tx.CommissionFee
	}

	ctx.JSON(iris.Map{
		"period":          report.Period,
		"rangeStart":      report.RangeStart,
		"rangeEnd":        report.RangeEnd,
		"netRevenue":      report.TotalRevenue,
		"totalCommission": totalCommission,
		"bookings":        report.ConfirmedBookings,
		"revenueSeries":   report.RevenueSeries,
		"transactions":    transactions,
	})
}

// fetchReportInput loads the owner's rows for one period. Reservations are
// matched on the same basis-date candidates the aggregator uses so a rental
// paid inside the window is never dropped by the SQL prefilter.
func fetchReportInput(userID uint, period string, rangeStart, rangeEnd time.Time, topN int) (*analytics.Input, error) {
	var vehicles []models.Vehicle
	if err := storage.DB.Select("id", "title", "view_count").
		Where("owner_id = ?", userID).Find(&vehicles).Error; err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	if err := storage.DB.Preload("Transactions").
		Where("owner_id = ?", userID).
		Where("(created_at >= ? AND created_at <= ?) OR (start_date <= ? AND end_date >= ?)",
			rangeStart, rangeEnd, rangeEnd, rangeStart).
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := storage.DB.Select("rating").
		Where("target_user_id = ? AND status = ?", userID, models.ReviewStatusPublished).
		Find(&reviews).Error; err != nil {
		return nil, err
	}

	input := analytics.Input{
		Period:      period,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
		TopVehicles: topN,
	}

	for _, v := range vehicles {
		input.Vehicles = append(input.Vehicles, analytics.VehicleRow{
			ID:    v.ID,
			Title: v.Title,
			Views: v.ViewCount,
		})
	}

	for i := range reservations {
		r := reservations[i]
		status := r.Status
		if !analytics.IsCanonicalStatus(status) {
			status = analytics.NormalizeStatus(r.LegacyStatus)
		}
		if analytics.IsCancelled(status) {
			continue
		}

		row := analytics.ReservationRow{
			ID:            r.ID,
			VehicleID:     r.VehicleID,
			StartDate:     r.StartDate,
			EndDate:       r.EndDate,
			Days:          r.Days,
			GrossAmount:   r.GrossAmount,
			CommissionFee: r.CommissionFee,
			Status:        status,
			CreatedAt:     r.CreatedAt,
		}
		if tx := latestPaidTransaction(r.Transactions); tx != nil {
			row.Transaction = &analytics.TransactionRow{
				NetAmount:     tx.NetAmount,
				CommissionFee: tx.CommissionFee,
				Status:        tx.Status,
			}
			if tx.PaidAt != nil {
				row.Transaction.PaidAt = *tx.PaidAt
			}
		}

		// Keep only rows whose basis date lands in the window; the SQL
		// prefilter is intentionally wider.
		basis := analytics.BasisDate(row)
		if basis.Before(rangeStart) || basis.After(rangeEnd) {
			if analytics.OverlapDays(r.StartDate, r.EndDate, rangeStart, rangeEnd) == 0 {
				continue
			}
		}

		input.Reservations = append(input.Reservations, row)
	}

	for _, rv := range reviews {
		input.Reviews = append(input.Reviews, analytics.ReviewRow{Rating: float64(rv.Rating)})
	}

	return &input, nil
}

func latestPaidTransaction(transactions []models.Transaction) *models.Transaction {
	var latest *models.Transaction
	for i := range transactions {
		tx := &transactions[i]
		if tx.Status != "paid" {
			continue
		}
		if latest == nil {
			latest = tx
			continue
		}
		if tx.PaidAt != nil && (latest.PaidAt == nil || tx.PaidAt.After(*latest.PaidAt)) {
			latest = tx
		}
	}
	return latest
}
