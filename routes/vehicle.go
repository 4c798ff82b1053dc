package routes

import (
	"encoding/json"
	"strings"

	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

func CreateVehicle(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateVehicleInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Ensure arrays are never null
	features := input.Features
	if features == nil {
		features = []string{}
	}
	featuresJSON, _ := json.Marshal(features)

	imagesArr := insertImages(InsertImages{images: input.Images})
	if imagesArr == nil {
		imagesArr = []string{}
	}
	imagesJSON, _ := json.Marshal(imagesArr)

	currency := input.Currency
	if currency == "" {
		currency = "MRU"
	}

	vehicle := models.Vehicle{
		OwnerID:            claims.ID,
		Title:              input.Title,
		Description:        input.Description,
		VehicleType:        input.VehicleType,
		Make:               input.Make,
		ModelName:          input.Model,
		Year:               input.Year,
		Transmission:       input.Transmission,
		FuelType:           input.FuelType,
		Seats:              input.Seats,
		Doors:              input.Doors,
		PlateNumber:        input.PlateNumber,
		City:               input.City,
		Lat:                input.Lat,
		Lng:                input.Lng,
		DailyPrice:         input.DailyPrice,
		CleaningFee:        input.CleaningFee,
		ServiceFee:         input.ServiceFee,
		Currency:           currency,
		Features:           string(featuresJSON),
		Images:             string(imagesJSON),
		CancellationPolicy: input.CancellationPolicy,
		IsActive:           input.IsActive,
		Status:             "pending", // every new listing goes through moderation
	}

	if input.CategoryID > 0 {
		categoryID := input.CategoryID
		vehicle.CategoryID = &categoryID
	}

	result := storage.DB.Create(&vehicle)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(vehicle)
}

func GetVehicle(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	vehicle := getVehicleAndAssociationsByID(id, ctx)
	if vehicle == nil {
		return
	}

	// Each public read counts as a view for the owner's conversion funnel
	storage.DB.Model(&models.Vehicle{}).Where("id = ?", vehicle.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	vehicle.ViewCount++

	ctx.JSON(vehicle)
}

func GetVehiclesByUserID(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var vehicles []models.Vehicle
	res := storage.DB.Where("owner_id = ?", id).Order("created_at DESC").Find(&vehicles)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(vehicles)
}

func UpdateVehicle(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	claims := jwt.Get(ctx).(*utils.AccessToken)

	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if vehicle.OwnerID != claims.ID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	var input UpdateVehicleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	updates := map[string]interface{}{}
	if input.Title != "" {
		updates["title"] = input.Title
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.DailyPrice > 0 {
		updates["daily_price"] = input.DailyPrice
	}
	if input.CleaningFee >= 0 {
		updates["cleaning_fee"] = input.CleaningFee
	}
	if input.City != "" {
		updates["city"] = input.City
	}
	if input.CancellationPolicy != "" {
		updates["cancellation_policy"] = input.CancellationPolicy
	}
	if input.IsActive != nil {
		updates["is_active"] = input.IsActive
	}
	if input.Features != nil {
		featuresJSON, _ := json.Marshal(input.Features)
		updates["features"] = string(featuresJSON)
	}
	if input.Images != nil {
		imagesArr := insertImages(InsertImages{images: input.Images})
		imagesJSON, _ := json.Marshal(imagesArr)
		updates["images"] = string(imagesJSON)
	}

	// Any edit returns the listing to the moderation queue
	updates["status"] = "pending"

	if err := storage.DB.Model(&vehicle).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(vehicle)
}

func DeleteVehicle(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	claims := jwt.Get(ctx).(*utils.AccessToken)

	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if vehicle.OwnerID != claims.ID && claims.Role != "admin" && claims.Role != "super_admin" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	// Remove media before the row so orphaned uploads don't accumulate
	if vehicle.Images != "" {
		var images []string
		if err := json.Unmarshal([]byte(vehicle.Images), &images); err == nil {
			for _, imageURL := range images {
				storage.DeleteImage(imageURL)
			}
		}
	}

	if err := storage.DB.Delete(&vehicle).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

func getVehicleAndAssociationsByID(id string, ctx iris.Context) *models.Vehicle {
	var vehicle models.Vehicle
	res := storage.DB.Preload("Owner").
		Preload("Reviews", "status = ?", models.ReviewStatusPublished).
		Preload("Reviews.Author").
		First(&vehicle, id)
	if res.Error != nil {
		if res.Error == gorm.ErrRecordNotFound {
			utils.CreateNotFound(ctx)
		} else {
			utils.CreateInternalServerError(ctx)
		}
		return nil
	}
	return &vehicle
}

type InsertImages struct {
	images []string
}

// insertImages uploads any base64 payloads and passes through existing URLs.
func insertImages(arg InsertImages) []string {
	var urls []string
	for _, image := range arg.images {
		if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
			urls = append(urls, image)
			continue
		}
		uploaded := storage.UploadBase64Image(image, utils.GenerateShortToken(8))
		if uploaded["url"] != "" {
			urls = append(urls, uploaded["url"])
		}
	}
	return urls
}

func DeleteVehicleImage(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	claims := jwt.Get(ctx).(*utils.AccessToken)

	var vehicle models.Vehicle
	if err := storage.DB.First(&vehicle, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if vehicle.OwnerID != claims.ID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	var input struct {
		ImageURL string `json:"imageURL" validate:"required"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var images []string
	if vehicle.Images != "" {
		json.Unmarshal([]byte(vehicle.Images), &images)
	}

	var remaining []string
	for _, imageURL := range images {
		if imageURL != input.ImageURL {
			remaining = append(remaining, imageURL)
		}
	}
	if remaining == nil {
		remaining = []string{}
	}

	storage.DeleteImage(input.ImageURL)

	imagesJSON, _ := json.Marshal(remaining)
	if err := storage.DB.Model(&vehicle).Update("images", string(imagesJSON)).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

type CreateVehicleInput struct {
	Title              string   `json:"title" validate:"required,max=256"`
	Description        string   `json:"description" validate:"required"`
	VehicleType        string   `json:"vehicleType" validate:"required,oneof=car suv van pickup moto"`
	Make               string   `json:"make" validate:"required,max=64"`
	Model              string   `json:"model" validate:"required,max=64"`
	Year               int      `json:"year" validate:"required,gte=1980,lte=2030"`
	Transmission       string   `json:"transmission" validate:"required,oneof=manual automatic"`
	FuelType           string   `json:"fuelType" validate:"required,oneof=petrol diesel hybrid electric"`
	Seats              int      `json:"seats" validate:"required,gte=1,lte=60"`
	Doors              int      `json:"doors" validate:"gte=0,lte=6"`
	PlateNumber        string   `json:"plateNumber" validate:"max=16"`
	City               string   `json:"city" validate:"required,max=128"`
	Lat                float32  `json:"lat"`
	Lng                float32  `json:"lng"`
	DailyPrice         float64  `json:"dailyPrice" validate:"required,gt=0"`
	CleaningFee        float64  `json:"cleaningFee" validate:"gte=0"`
	ServiceFee         float64  `json:"serviceFee" validate:"gte=0"`
	Currency           string   `json:"currency" validate:"max=8"`
	Features           []string `json:"features"`
	Images             []string `json:"images"`
	CancellationPolicy string   `json:"cancellationPolicy" validate:"omitempty,oneof=flexible moderate strict"`
	IsActive           *bool    `json:"isActive"`
	CategoryID         uint     `json:"categoryId"`
}

type UpdateVehicleInput struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	DailyPrice         float64  `json:"dailyPrice"`
	CleaningFee        float64  `json:"cleaningFee"`
	City               string   `json:"city"`
	CancellationPolicy string   `json:"cancellationPolicy"`
	IsActive           *bool    `json:"isActive"`
	Features           []string `json:"features"`
	Images             []string `json:"images"`
}
