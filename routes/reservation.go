package routes

import (
	"strconv"
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/analytics"
	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/services"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/shopspring/decimal"
)

// Platform cut on every booking. Commission is computed at creation time so
// later rate changes never rewrite historical rows.
var commissionRate = decimal.NewFromFloat(0.15)

// Pending requests the owner never answers expire after this window.
const pendingExpiry = 24 * time.Hour

type CreateReservationInput struct {
	VehicleID uint   `json:"vehicleID" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Note      string `json:"note" validate:"max=512"`
}

func CreateReservation(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	startDate, startErr := time.Parse("2006-01-02", input.StartDate)
	endDate, endErr := time.Parse("2006-01-02", input.EndDate)
	if startErr != nil || endErr != nil || !endDate.After(startDate) {
		utils.CreateError(iris.StatusBadRequest, "Invalid Dates",
			"Start and end dates must be valid and end must be after start.", ctx)
		return
	}

	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, input.VehicleID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if vehicle.Status != "approved" || (vehicle.IsActive != nil && !*vehicle.IsActive) {
		utils.CreateError(iris.StatusBadRequest, "Vehicle Unavailable",
			"This vehicle is not open for bookings.", ctx)
		return
	}

	if vehicle.OwnerID == claims.ID {
		utils.CreateError(iris.StatusBadRequest, "Invalid Reservation",
			"You cannot book your own vehicle.", ctx)
		return
	}

	if hasBookingConflict(input.VehicleID, startDate, endDate) {
		utils.CreateError(iris.StatusConflict, "Dates Unavailable",
			"The vehicle is already booked or blocked for part of this period.", ctx)
		return
	}

	days := int(endDate.Sub(startDate).Hours() / 24)
	if days < 1 {
		days = 1
	}

	// decimal keeps the commission split exact; floats drift on MRU amounts
	daily := decimal.NewFromFloat(vehicle.DailyPrice)
	gross := daily.Mul(decimal.NewFromInt(int64(days))).
		Add(decimal.NewFromFloat(vehicle.CleaningFee)).
		Add(decimal.NewFromFloat(vehicle.ServiceFee))
	commission := gross.Mul(commissionRate).Round(2)

	grossF, _ := gross.Round(2).Float64()
	commissionF, _ := commission.Float64()

	reservation := models.Reservation{
		VehicleID:     vehicle.ID,
		OwnerID:       vehicle.OwnerID,
		RenterID:      claims.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		Days:          days,
		GrossAmount:   grossF,
		CommissionFee: commissionF,
		Status:        analytics.StatusPending,
		Note:          input.Note,
		ExpiresAt:     time.Now().Add(pendingExpiry),
	}

	if err := storage.DB.Create(&reservation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var renter models.User
	storage.DB.First(&renter, claims.ID)
	go services.NewNotificationService().SendReservationNotificationToOwner(
		reservation.ID, vehicle.ID, vehicle.OwnerID, claims.ID,
		renter.FirstName+" "+renter.LastName, vehicle.Title)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(reservation)
}

// GetReservationsByRenter lists the authenticated renter's bookings.
func GetReservationsByRenter(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var reservations []models.Reservation
	res := storage.DB.Preload("Vehicle").
		Where("renter_id = ?", claims.ID).
		Order("created_at DESC").Find(&reservations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservations)
}

// GetReservationsByOwner lists bookings across all of the owner's vehicles.
func GetReservationsByOwner(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var reservations []models.Reservation
	res := storage.DB.Preload("Vehicle").Preload("Renter").
		Where("owner_id = ?", claims.ID).
		Order("created_at DESC").Find(&reservations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservations)
}

type UpdateReservationStatusInput struct {
	Status string `json:"status" validate:"required,oneof=confirmed rejected cancelled completed"`
}

// UpdateReservationStatus moves a reservation through its lifecycle. The owner
// confirms, rejects or completes; the renter cancels through CancelReservation.
func UpdateReservationStatus(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var input UpdateReservationStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Vehicle").First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if reservation.OwnerID != claims.ID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if analytics.IsCancelled(reservation.Status) || reservation.Status == analytics.StatusCompleted {
		utils.CreateError(iris.StatusBadRequest, "Invalid Transition",
			"This reservation has already reached a final state.", ctx)
		return
	}

	if input.Status == analytics.StatusConfirmed {
		if reservation.Status != analytics.StatusPending {
			utils.CreateError(iris.StatusBadRequest, "Invalid Transition",
				"Only pending reservations can be confirmed.", ctx)
			return
		}
		if hasBookingConflict(reservation.VehicleID, reservation.StartDate, reservation.EndDate) {
			utils.CreateError(iris.StatusConflict, "Dates Unavailable",
				"Another confirmed booking now overlaps this period.", ctx)
			return
		}
	}

	if err := storage.DB.Model(&reservation).Update("status", input.Status).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	reservation.Status = input.Status

	switch input.Status {
	case analytics.StatusConfirmed:
		blockReservationDates(&reservation)
	case analytics.StatusRejected, analytics.StatusCancelled:
		releaseReservationDates(&reservation)
	}

	vehicleTitle := ""
	if reservation.Vehicle != nil {
		vehicleTitle = reservation.Vehicle.Title
	}
	var owner models.User
	storage.DB.First(&owner, reservation.OwnerID)
	go services.NewNotificationService().SendReservationStatusNotificationToRenter(
		reservation.ID, reservation.VehicleID, reservation.RenterID, reservation.OwnerID,
		input.Status, owner.FirstName+" "+owner.LastName, vehicleTitle)

	ctx.JSON(reservation)
}

// CancelReservation is the renter-side cancellation with the listing's refund
// policy applied. The refund percentage is advisory; money movement is out of
// band.
func CancelReservation(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var reservation models.Reservation
	if err := storage.DB.Preload("Vehicle").First(&reservation, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if reservation.RenterID != claims.ID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if analytics.IsCancelled(reservation.Status) || reservation.Status == analytics.StatusCompleted {
		utils.CreateError(iris.StatusBadRequest, "Invalid Transition",
			"This reservation can no longer be cancelled.", ctx)
		return
	}

	policy := "moderate"
	if reservation.Vehicle != nil && reservation.Vehicle.CancellationPolicy != "" {
		policy = reservation.Vehicle.CancellationPolicy
	}
	refundPercent := refundPercentFor(policy, time.Until(reservation.StartDate))

	if err := storage.DB.Model(&reservation).Update("status", analytics.StatusCancelled).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	reservation.Status = analytics.StatusCancelled
	releaseReservationDates(&reservation)

	vehicleTitle := ""
	if reservation.Vehicle != nil {
		vehicleTitle = reservation.Vehicle.Title
	}
	var renter models.User
	storage.DB.First(&renter, claims.ID)
	go services.NewNotificationService().SendReservationStatusNotificationToRenter(
		reservation.ID, reservation.VehicleID, reservation.RenterID, reservation.OwnerID,
		analytics.StatusCancelled, renter.FirstName+" "+renter.LastName, vehicleTitle)

	ctx.JSON(iris.Map{
		"reservation":   reservation,
		"refundPercent": refundPercent,
	})
}

// refundPercentFor maps a cancellation policy and lead time to a refund share.
func refundPercentFor(policy string, untilStart time.Duration) int {
	switch policy {
	case "flexible":
		if untilStart >= 24*time.Hour {
			return 100
		}
		return 50
	case "strict":
		if untilStart >= 7*24*time.Hour {
			return 50
		}
		return 0
	default: // moderate
		if untilStart >= 3*24*time.Hour {
			return 100
		}
		if untilStart >= 24*time.Hour {
			return 50
		}
		return 0
	}
}

// ValidateReservationAvailability lets the client pre-check a date range
// before submitting a request.
func ValidateReservationAvailability(ctx iris.Context) {
	vehicleID, err := strconv.ParseUint(ctx.URLParam("vehicleID"), 10, 32)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid Vehicle", "vehicleID is required.", ctx)
		return
	}

	startDate, startErr := time.Parse("2006-01-02", ctx.URLParam("startDate"))
	endDate, endErr := time.Parse("2006-01-02", ctx.URLParam("endDate"))
	if startErr != nil || endErr != nil || !endDate.After(startDate) {
		utils.CreateError(iris.StatusBadRequest, "Invalid Dates",
			"startDate and endDate must be valid and end must be after start.", ctx)
		return
	}

	available := !hasBookingConflict(uint(vehicleID), startDate, endDate)
	ctx.JSON(iris.Map{"available": available})
}

// ExpirePendingReservations sweeps pending requests past their 24h window.
// Wired as an admin endpoint so a cron hitting it keeps the queue honest.
func ExpirePendingReservations(ctx iris.Context) {
	res := storage.DB.Model(&models.Reservation{}).
		Where("status = ? AND expires_at < ?", analytics.StatusPending, time.Now()).
		Update("status", analytics.StatusExpired)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"expired": res.RowsAffected})
}

// hasBookingConflict reports whether a confirmed reservation or a blocked
// availability day overlaps the half-open range [startDate, endDate).
func hasBookingConflict(vehicleID uint, startDate, endDate time.Time) bool {
	var count int64
	storage.DB.Model(&models.Reservation{}).
		Where("vehicle_id = ? AND status = ? AND start_date < ? AND end_date > ?",
			vehicleID, analytics.StatusConfirmed, endDate, startDate).
		Count(&count)
	if count > 0 {
		return true
	}

	storage.DB.Model(&models.VehicleAvailability{}).
		Where("vehicle_id = ? AND is_available = ? AND date >= ? AND date < ?",
			vehicleID, false, startDate, endDate).
		Count(&count)
	return count > 0
}

func blockReservationDates(reservation *models.Reservation) {
	for d := reservation.StartDate; d.Before(reservation.EndDate); d = d.Add(24 * time.Hour) {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
		avail := models.VehicleAvailability{
			VehicleID:   reservation.VehicleID,
			Date:        day,
			IsAvailable: false,
			MinDays:     1,
			Notes:       "reserved",
		}
		res := storage.DB.Where("vehicle_id = ? AND date = ?", reservation.VehicleID, day).
			FirstOrCreate(&avail)
		if res.Error == nil {
			storage.DB.Model(&avail).Updates(map[string]interface{}{
				"is_available": false,
				"notes":        "reserved",
			})
		}
	}
}

func releaseReservationDates(reservation *models.Reservation) {
	storage.DB.Model(&models.VehicleAvailability{}).
		Where("vehicle_id = ? AND date >= ? AND date < ? AND notes = ?",
			reservation.VehicleID, reservation.StartDate, reservation.EndDate, "reserved").
		Update("is_available", true)
}
