package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
)

// ListUsers - GET /admin/users?role=&q=&page=&per_page=
func AdminListUsers(ctx iris.Context) {
	// Basic pagination
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	var users []models.User
	q := strings.TrimSpace(ctx.URLParamDefault("q", ""))
	role := strings.TrimSpace(ctx.URLParamDefault("role", ""))

	query := storage.DB.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(first_name) LIKE ? OR lower(last_name) LIKE ? OR lower(email) LIKE ? OR phone_number LIKE ?", like, like, like, like)
	}

	var total int64
	query.Count(&total)
	query = query.Offset((page - 1) * perPage).Limit(perPage)
	if err := query.Find(&users).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"error": "server_error", "message": err.Error()})
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

// GET /admin/users/:id — full user info + verification history + recent activity
func AdminGetUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	var verifs []models.DriverVerification
	storage.DB.Where("user_id = ?", id).Order("created_at DESC").Find(&verifs)

	var actions []models.AuditLog
	storage.DB.Where("admin_user_id = ?", id).Order("created_at DESC").Limit(50).Find(&actions)

	ctx.JSON(iris.Map{
		"data": iris.Map{
			"user":               user,
			"verifications":      verifs,
			"recentAdminActions": actions,
		},
		"meta":  iris.Map{},
		"links": iris.Map{},
	})
}

// Change role - PATCH /admin/users/:id/role
func AdminChangeUserRole(ctx iris.Context) {
	// Middleware enforces super admin. Here perform change.
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_id"})
		return
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := ctx.ReadJSON(&body); err != nil ||
		(body.Role != "user" && body.Role != "owner" && body.Role != "admin" && body.Role != "super_admin") {
		ctx.StopWithJSON(http.StatusBadRequest, iris.Map{"error": "invalid_role"})
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		ctx.StopWithJSON(http.StatusNotFound, iris.Map{"error": "not_found"})
		return
	}

	before := user
	user.Role = body.Role
	if err := storage.DB.Save(&user).Error; err != nil {
		ctx.StopWithJSON(http.StatusInternalServerError, iris.Map{"error": "server_error"})
		return
	}

	utils.Audit(ctx, "user.role_update", "user", user.ID, before, user)

	ctx.JSON(iris.Map{"data": user})
}

// PATCH /admin/users/:id/suspend { suspend, reason }
func AdminSuspendUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		Suspend bool   `json:"suspend"`
		Reason  string `json:"reason"`
	}
	if err := ctx.ReadJSON(&body); err != nil {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "suspend flag required")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	before := user
	user.IsSuspended = body.Suspend
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	action := "user.suspend"
	if !body.Suspend {
		action = "user.unsuspend"
	}
	utils.Audit(ctx, action, "user", user.ID, before, user)

	ctx.JSON(iris.Map{"data": user})
}

// POST /admin/verifications/:id/review { status, notes }
func AdminReviewDriverVerification(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var body struct {
		Status string `json:"status"` // verified/rejected
		Notes  string `json:"notes"`
	}
	if err := ctx.ReadJSON(&body); err != nil || (body.Status != "verified" && body.Status != "rejected") {
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "invalid_payload", "status must be verified/rejected")
		return
	}

	var verif models.DriverVerification
	if err := storage.DB.First(&verif, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "verification not found")
		return
	}

	adminID := ctx.Values().Get("userID").(uint)
	now := time.Now()
	before := verif
	verif.Status = body.Status
	verif.Notes = body.Notes
	verif.ReviewedBy = &adminID
	verif.ReviewedAt = &now
	if err := storage.DB.Save(&verif).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	// Reflect the decision on the renter profile
	userUpdates := map[string]interface{}{"verification_status": body.Status}
	if body.Status == "verified" {
		userUpdates["is_verified"] = true
	}
	storage.DB.Model(&models.User{}).Where("id = ?", verif.UserID).Updates(userUpdates)

	utils.Audit(ctx, "verification.review", "driver_verification", verif.ID, before, verif)
	ctx.JSON(iris.Map{"data": verif})
}

// GET /admin/verifications?status=
func AdminListDriverVerifications(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}
	status := ctx.URLParamDefault("status", "pending")

	q := storage.DB.Model(&models.DriverVerification{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var verifs []models.DriverVerification
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Order("created_at ASC").Find(&verifs).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	utils.JSONPage(ctx, verifs, page, perPage, total)
}
