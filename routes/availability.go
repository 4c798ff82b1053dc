package routes

import (
	"strconv"
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
)

func GetVehicleAvailability(ctx iris.Context) {
	vehicleIDStr := ctx.Params().Get("id")
	vehicleID, err := strconv.ParseUint(vehicleIDStr, 10, 32)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid vehicle ID"})
		return
	}

	startDateStr := ctx.URLParam("startDate")
	endDateStr := ctx.URLParam("endDate")

	if startDateStr == "" || endDateStr == "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Start date and end date are required"})
		return
	}

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid start date format"})
		return
	}

	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid end date format"})
		return
	}

	var availability []models.VehicleAvailability
	result := storage.DB.Where("vehicle_id = ? AND date >= ? AND date <= ?",
		vehicleID, startDate, endDate).Order("date ASC").Find(&availability)

	if result.Error != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to fetch availability"})
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    availability,
	})
}

type AvailabilityInput struct {
	VehicleID   uint    `json:"vehicleID" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	IsAvailable *bool   `json:"isAvailable" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	MinDays     int     `json:"minDays" validate:"gte=0"`
	MaxDays     int     `json:"maxDays" validate:"gte=0"`
	Notes       string  `json:"notes" validate:"max=128"`
}

// SetVehicleAvailability sets one day's availability for an owned vehicle.
func SetVehicleAvailability(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	var input AvailabilityInput

	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var vehicle models.Vehicle
	if err := storage.DB.Where("id = ? AND owner_id = ?", input.VehicleID, userID).First(&vehicle).Error; err != nil {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Vehicle not found or access denied"})
		return
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid date format"})
		return
	}

	price := input.Price
	if price == 0 {
		price = vehicle.DailyPrice
	}
	minDays := input.MinDays
	if minDays == 0 {
		minDays = 1
	}

	var avail models.VehicleAvailability
	res := storage.DB.Where("vehicle_id = ? AND date = ?", input.VehicleID, date).Limit(1).Find(&avail)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	avail.VehicleID = input.VehicleID
	avail.Date = date
	avail.IsAvailable = *input.IsAvailable
	avail.Price = price
	avail.MinDays = minDays
	avail.MaxDays = input.MaxDays
	avail.Notes = input.Notes

	if err := storage.DB.Save(&avail).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": avail})
}

type BlockDatesInput struct {
	VehicleID uint   `json:"vehicleID" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Notes     string `json:"notes" validate:"max=128"`
}

// BlockVehicleDates marks a contiguous range as unavailable (maintenance,
// personal use).
func BlockVehicleDates(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	var input BlockDatesInput

	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var vehicle models.Vehicle
	if err := storage.DB.Where("id = ? AND owner_id = ?", input.VehicleID, userID).First(&vehicle).Error; err != nil {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"message": "Vehicle not found or access denied"})
		return
	}

	startDate, startErr := time.Parse("2006-01-02", input.StartDate)
	endDate, endErr := time.Parse("2006-01-02", input.EndDate)
	if startErr != nil || endErr != nil || endDate.Before(startDate) {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{"message": "Invalid date range"})
		return
	}

	notes := input.Notes
	if notes == "" {
		notes = "blocked"
	}

	blocked := 0
	for d := startDate; !d.After(endDate); d = d.Add(24 * time.Hour) {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		avail := models.VehicleAvailability{
			VehicleID:   input.VehicleID,
			Date:        day,
			IsAvailable: false,
			Price:       vehicle.DailyPrice,
			MinDays:     1,
			Notes:       notes,
		}
		res := storage.DB.Where("vehicle_id = ? AND date = ?", input.VehicleID, day).FirstOrCreate(&avail)
		if res.Error == nil {
			storage.DB.Model(&avail).Updates(map[string]interface{}{
				"is_available": false,
				"notes":        notes,
			})
			blocked++
		}
	}

	ctx.JSON(iris.Map{"success": true, "blockedDays": blocked})
}
