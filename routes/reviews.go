package routes

import (
	"github.com/Eddie2908/AUTOLOCO-sub001/analytics"
	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type CreateReviewInput struct {
	ReservationID uint   `json:"reservationID" validate:"required"`
	Title         string `json:"title" validate:"max=128"`
	Body          string `json:"body" validate:"required,max=2048"`
	Rating        int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// CreateReview lets a renter rate a vehicle and its owner after a completed
// rental. One review per reservation.
func CreateReview(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.First(&reservation, input.ReservationID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if reservation.RenterID != claims.ID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if reservation.Status != analytics.StatusCompleted {
		utils.CreateError(iris.StatusBadRequest, "Rental Not Completed",
			"Reviews can only be left after the rental is completed.", ctx)
		return
	}

	var existing int64
	storage.DB.Model(&models.Review{}).
		Where("reservation_id = ? AND status <> ?", reservation.ID, models.ReviewStatusDeleted).
		Count(&existing)
	if existing > 0 {
		utils.CreateError(iris.StatusConflict, "Already Reviewed",
			"You have already reviewed this rental.", ctx)
		return
	}

	reservationID := reservation.ID
	review := models.Review{
		AuthorID:      claims.ID,
		TargetUserID:  reservation.OwnerID,
		VehicleID:     reservation.VehicleID,
		ReservationID: &reservationID,
		Title:         input.Title,
		Body:          input.Body,
		Rating:        input.Rating,
		IsVerified:    true,
		Status:        models.ReviewStatusPublished,
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	refreshVehicleRating(reservation.VehicleID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

// GetVehicleReviews lists published reviews for one vehicle with a rating
// summary.
func GetVehicleReviews(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var reviews []models.Review
	res := storage.DB.Preload("Author").
		Where("vehicle_id = ? AND status = ?", id, models.ReviewStatusPublished).
		Order("created_at DESC").Find(&reviews)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"reviews": reviews,
		"summary": ratingSummary(reviews),
	})
}

// GetUserReviews lists published reviews left on an owner across all of their
// vehicles.
func GetUserReviews(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var reviews []models.Review
	res := storage.DB.Preload("Author").Preload("Vehicle").
		Where("target_user_id = ? AND status = ?", id, models.ReviewStatusPublished).
		Order("created_at DESC").Find(&reviews)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"reviews": reviews,
		"summary": ratingSummary(reviews),
	})
}

type ModerateReviewInput struct {
	Status string `json:"status" validate:"required,oneof=published hidden deleted"`
	Reason string `json:"reason" validate:"max=512"`
}

// ModerateReview hides, restores or soft-deletes a review (admin only).
func ModerateReview(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input ModerateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var review models.Review
	if err := storage.DB.First(&review, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	before := review
	if err := storage.DB.Model(&review).Update("status", input.Status).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	review.Status = input.Status

	refreshVehicleRating(review.VehicleID)
	utils.Audit(ctx, "review_moderate", "review", review.ID, before, review)

	ctx.JSON(review)
}

func ratingSummary(reviews []models.Review) iris.Map {
	counts := map[int]int{}
	var sum int
	for _, r := range reviews {
		counts[r.Rating]++
		sum += r.Rating
	}
	average := 0.0
	if len(reviews) > 0 {
		average = float64(sum) / float64(len(reviews))
	}
	return iris.Map{
		"count":   len(reviews),
		"average": average,
		"byStars": counts,
	}
}

// refreshVehicleRating recomputes the denormalized rating column from
// published reviews.
func refreshVehicleRating(vehicleID uint) {
	storage.DB.Model(&models.Vehicle{}).Where("id = ?", vehicleID).
		Update("rating", storage.DB.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0)").
			Where("vehicle_id = ? AND status = ?", vehicleID, models.ReviewStatusPublished))
}
