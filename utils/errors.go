package utils

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{
		"error": iris.Map{
			"title":  title,
			"detail": detail,
		},
	})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(
		iris.StatusInternalServerError,
		"Internal Server Error",
		"An unexpected error occurred. Please try again later.",
		ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(
		iris.StatusNotFound,
		"Not Found",
		"Resource not found.",
		ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(
		iris.StatusConflict,
		"Conflict",
		"Email already registered.",
		ctx)
}

// HandleValidationErrors turns ReadJSON/validator failures into a 400 with
// per-field details when available.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		validationErrors := make([]iris.Map, 0, len(errs))
		for _, fieldErr := range errs {
			validationErrors = append(validationErrors, iris.Map{
				"field": fieldErr.Field(),
				"tag":   fieldErr.Tag(),
				"value": fieldErr.Param(),
			})
		}

		CreateValidationError(ctx, validationErrors)
		return
	}

	log.Printf("request body error: %v", err)
	CreateError(iris.StatusBadRequest, "Bad Request", "Malformed request body.", ctx)
}

func CreateValidationError(ctx iris.Context, errs []iris.Map) {
	ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
		"error": iris.Map{
			"title":  "Validation Error",
			"fields": errs,
		},
	})
}
