package routes

import (
	"strings"
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"

	"github.com/kataras/iris/v12"
)

// SearchVehicles handles vehicle search with multiple filters
func SearchVehicles(ctx iris.Context) {
	q := storage.DB.Model(&models.Vehicle{})

	// Location filters
	if city := strings.TrimSpace(ctx.URLParam("city")); city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}

	// Vehicle attributes
	if vType := strings.TrimSpace(ctx.URLParam("vehicleType")); vType != "" {
		q = q.Where("vehicle_type = ?", vType)
	}
	if makeName := strings.TrimSpace(ctx.URLParam("make")); makeName != "" {
		q = q.Where("LOWER(make) = LOWER(?)", makeName)
	}
	if transmission := strings.TrimSpace(ctx.URLParam("transmission")); transmission != "" {
		q = q.Where("transmission = ?", transmission)
	}
	if fuelType := strings.TrimSpace(ctx.URLParam("fuelType")); fuelType != "" {
		q = q.Where("fuel_type = ?", fuelType)
	}
	if categoryID, err := ctx.URLParamInt("categoryId"); err == nil && categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if minSeats, err := ctx.URLParamInt("minSeats"); err == nil && minSeats > 0 {
		q = q.Where("seats >= ?", minSeats)
	}
	if minYear, err := ctx.URLParamInt("minYear"); err == nil && minYear > 0 {
		q = q.Where("year >= ?", minYear)
	}
	if minPrice, err := ctx.URLParamInt("minPrice"); err == nil && minPrice > 0 {
		q = q.Where("daily_price >= ?", minPrice)
	}
	if maxPrice, err := ctx.URLParamInt("maxPrice"); err == nil && maxPrice > 0 {
		q = q.Where("daily_price <= ?", maxPrice)
	}
	if minRating, err := ctx.URLParamInt("minRating"); err == nil && minRating > 0 {
		q = q.Where("rating >= ?", minRating)
	}

	// Only approved, active listings are publicly searchable
	q = q.Where("status = ?", "approved")
	q = q.Where("COALESCE(is_active, ?) = ?", true, true)

	// Date-range availability: exclude vehicles with a confirmed overlapping
	// reservation or an explicitly blocked day in the range
	startDateStr := strings.TrimSpace(ctx.URLParam("startDate"))
	endDateStr := strings.TrimSpace(ctx.URLParam("endDate"))
	if startDateStr != "" && endDateStr != "" {
		startDate, startErr := time.Parse("2006-01-02", startDateStr)
		endDate, endErr := time.Parse("2006-01-02", endDateStr)
		if startErr != nil || endErr != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{"message": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		q = q.Where(
			"id NOT IN (?)",
			storage.DB.Model(&models.Reservation{}).Select("vehicle_id").
				Where("status = ? AND start_date < ? AND end_date > ?", "confirmed", endDate, startDate),
		)
		q = q.Where(
			"id NOT IN (?)",
			storage.DB.Model(&models.VehicleAvailability{}).Select("vehicle_id").
				Where("is_available = ? AND date >= ? AND date <= ?", false, startDate, endDate),
		)
	}

	// Sorting
	sort := strings.ToLower(strings.TrimSpace(ctx.URLParam("sort")))
	switch sort {
	case "price_low":
		q = q.Order("daily_price ASC").Order("id DESC")
	case "price_high":
		q = q.Order("daily_price DESC").Order("id DESC")
	case "rating":
		q = q.Order("rating DESC").Order("id DESC")
	case "popular":
		q = q.Order("view_count DESC").Order("id DESC")
	default:
		q = q.Order("created_at DESC")
	}

	limit := ctx.URLParamIntDefault("limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	q = q.Limit(limit)

	var vehicles []models.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to search vehicles"})
		return
	}

	ctx.JSON(vehicles)
}
