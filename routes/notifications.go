package routes

import (
	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// GetNotifications returns the user's persisted notifications, newest first.
func GetNotifications(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var notifications []models.Notification
	res := storage.DB.Where("user_id = ?", claims.ID).
		Order("created_at DESC").Limit(100).Find(&notifications)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	var unread int64
	storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", claims.ID, false).Count(&unread)

	ctx.JSON(iris.Map{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	res := storage.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, claims.ID).
		Update("is_read", true)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

// MarkAllNotificationsRead clears the user's unread counter in one update.
func MarkAllNotificationsRead(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	res := storage.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", claims.ID, false).
		Update("is_read", true)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"marked": res.RowsAffected})
}
