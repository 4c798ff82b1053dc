package routes

import (
	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
)

// ListVehicleCategories returns the active vehicle classes in display order.
func ListVehicleCategories(ctx iris.Context) {
	var categories []models.VehicleCategory
	res := storage.DB.Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&categories)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"success": true, "categories": categories})
}

type UpsertCategoryInput struct {
	Slug        string               `json:"slug" validate:"required,max=64"`
	Name        models.CategoryNames `json:"name" validate:"required"`
	Icon        string               `json:"icon" validate:"max=64"`
	Description models.CategoryNames `json:"description"`
	IsActive    *bool                `json:"isActive"`
	SortOrder   int                  `json:"sortOrder"`
}

// UpsertVehicleCategory creates or updates a category by slug (admin only).
func UpsertVehicleCategory(ctx iris.Context) {
	var input UpsertCategoryInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var category models.VehicleCategory
	res := storage.DB.Where("slug = ?", input.Slug).Limit(1).Find(&category)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	category.Slug = input.Slug
	category.Name = input.Name
	category.Icon = input.Icon
	category.Description = input.Description
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	} else if res.RowsAffected == 0 {
		category.IsActive = true
	}

	if err := storage.DB.Save(&category).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "category_upsert", "vehicle_category", category.ID, nil, category)
	ctx.JSON(category)
}
