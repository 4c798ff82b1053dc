package routes

import (
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"

	"github.com/kataras/iris/v12"
)

// GET /admin/stats
func AdminStats(ctx iris.Context) {
	var pendingVehicles int64
	storage.DB.Model(&models.Vehicle{}).Where("status = ?", "pending").Count(&pendingVehicles)
	var pendingVerifications int64
	storage.DB.Model(&models.DriverVerification{}).Where("status = ?", "pending").Count(&pendingVerifications)
	var flaggedVehicles int64
	storage.DB.Model(&models.Vehicle{}).Where("is_flagged = ?", true).Count(&flaggedVehicles)

	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newRes7, newRes30 int64
	storage.DB.Model(&models.Reservation{}).Where("created_at >= ?", since7).Count(&newRes7)
	storage.DB.Model(&models.Reservation{}).Where("created_at >= ?", since30).Count(&newRes30)

	var revenue30 float64
	storage.DB.Model(&models.Transaction{}).
		Where("status = ? AND created_at >= ?", "paid", since30).
		Select("COALESCE(SUM(net_amount), 0)").Scan(&revenue30)
	var commission30 float64
	storage.DB.Model(&models.Transaction{}).
		Where("status = ? AND created_at >= ?", "paid", since30).
		Select("COALESCE(SUM(commission_fee), 0)").Scan(&commission30)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"pending_vehicles":      pendingVehicles,
			"pending_verifications": pendingVerifications,
			"flagged_vehicles":      flaggedVehicles,
			"new_reservations_7d":   newRes7,
			"new_reservations_30d":  newRes30,
			"net_revenue_30d":       revenue30,
			"commission_30d":        commission30,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

// GET /admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"data": logs, "meta": iris.Map{}, "links": iris.Map{}})
}
