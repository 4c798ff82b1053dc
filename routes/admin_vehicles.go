package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/services"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
)

// GET /admin/vehicles
func AdminListVehicles(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	status := ctx.URLParamDefault("status", "")
	search := strings.TrimSpace(ctx.URLParamDefault("search", ""))
	ownerID := ctx.URLParamDefault("owner_id", "")
	city := strings.TrimSpace(ctx.URLParamDefault("city", ""))
	flagged := ctx.URLParamDefault("flagged", "")
	createdFrom := ctx.URLParamDefault("created_from", "")
	createdTo := ctx.URLParamDefault("created_to", "")

	q := storage.DB.Model(&models.Vehicle{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(description) LIKE ? OR lower(make) LIKE ? OR lower(model_name) LIKE ?", like, like, like, like)
	}
	if city != "" {
		q = q.Where("lower(city) = ?", strings.ToLower(city))
	}
	if flagged == "true" {
		q = q.Where("is_flagged = ?", true)
	}
	if createdFrom != "" {
		if t, err := time.Parse(time.RFC3339, createdFrom); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if createdTo != "" {
		if t, err := time.Parse(time.RFC3339, createdTo); err == nil {
			q = q.Where("created_at <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var vehicles []models.Vehicle
	if err := q.Preload("Owner").Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&vehicles).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONPage(ctx, vehicles, page, perPage, total)
}

// GET /admin/vehicles/:id?include=owner,reservations,reviews
func AdminGetVehicle(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	include := strings.Split(strings.TrimSpace(ctx.URLParamDefault("include", "")), ",")

	var vehicle models.Vehicle
	q := storage.DB.Model(&models.Vehicle{})
	for _, inc := range include {
		switch strings.TrimSpace(inc) {
		case "owner":
			q = q.Preload("Owner")
		case "reservations":
			q = q.Preload("Reservations")
		case "reviews":
			q = q.Preload("Reviews")
		}
	}
	if err := q.First(&vehicle, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}
	ctx.JSON(iris.Map{"data": vehicle, "meta": iris.Map{}, "links": iris.Map{}})
}

// PATCH /admin/vehicles/:id/status {status, note}
func AdminUpdateVehicleStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var body struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := ctx.ReadJSON(&body); err != nil || (body.Status != "approved" && body.Status != "rejected" && body.Status != "pending") {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "status must be pending/approved/rejected")
		return
	}
	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}
	before := vehicle
	vehicle.Status = body.Status
	vehicle.ReviewNotes = body.Note
	if err := storage.DB.Save(&vehicle).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.Audit(ctx, "vehicle.status_update", "vehicle", vehicle.ID, before, vehicle)

	// Tell the owner about the moderation decision
	if before.Status != vehicle.Status && vehicle.Status != "pending" {
		notificationService := services.NewNotificationService()
		go notificationService.SendListingModeratedNotification(
			vehicle.ID,
			vehicle.OwnerID,
			vehicle.Status,
			vehicle.Title,
		)
	}

	ctx.JSON(iris.Map{"data": vehicle})
}

// POST /admin/vehicles/:id/flag { reason }
func AdminFlagVehicle(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.Reason == "" {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "reason required")
		return
	}
	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}
	before := vehicle
	vehicle.IsFlagged = true
	vehicle.FlagReason = body.Reason
	if err := storage.DB.Save(&vehicle).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.Audit(ctx, "vehicle.flag", "vehicle", vehicle.ID, before, vehicle)
	ctx.JSON(iris.Map{"data": vehicle})
}

// POST /admin/vehicles/:id/unflag
func AdminUnflagVehicle(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "vehicle not found")
		return
	}
	before := vehicle
	vehicle.IsFlagged = false
	vehicle.FlagReason = ""
	if err := storage.DB.Save(&vehicle).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.Audit(ctx, "vehicle.unflag", "vehicle", vehicle.ID, before, vehicle)
	ctx.JSON(iris.Map{"data": vehicle})
}
