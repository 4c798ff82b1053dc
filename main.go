package main

import (
	"os"

	"github.com/Eddie2908/AUTOLOCO-sub001/routes"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeMedia()
	routes.InitAnalyticsCache()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the web dashboard (http://localhost:3000)
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/register-phone", routes.RegisterPhone)
		user.Post("/login-phone", routes.LoginPhone)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Get("/search", accessTokenVerifierMiddleware, routes.SearchUsers)
		user.Get("/{id}/vehicles/saved", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserSavedVehicles)
		user.Patch("/{id}/vehicles/saved", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterUserSavedVehicles)
		user.Patch("/{id}/pushtoken", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterPushToken)
		user.Patch("/{id}/settings/notifications", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AllowsNotifications)
		user.Patch("/{id}/profile", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.UpdateUserProfile)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUser)
		user.Post("/verification", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.SubmitDriverVerification)
		user.Get("/{id}/reviews", routes.GetUserReviews)
	}

	// Owner dashboards
	analyticsParty := app.Party("/api/users", accessTokenVerifierMiddleware, utils.UserIDMiddleware)
	{
		analyticsParty.Get("/{id}/analytics", routes.GetUserAnalytics)
		analyticsParty.Get("/{id}/overview", routes.GetUserOverview)
		analyticsParty.Get("/{id}/payments/summary", routes.GetUserPaymentsSummary)
	}

	vehicle := app.Party("/api/vehicle")
	{
		vehicle.Post("/", accessTokenVerifierMiddleware, routes.CreateVehicle)
		vehicle.Get("/search", routes.SearchVehicles)
		vehicle.Get("/{id}", routes.GetVehicle)
		vehicle.Get("/userid/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetVehiclesByUserID)
		vehicle.Patch("/update/{id}", accessTokenVerifierMiddleware, routes.UpdateVehicle)
		vehicle.Delete("/{id}", accessTokenVerifierMiddleware, routes.DeleteVehicle)
		vehicle.Post("/{id}/image/delete", accessTokenVerifierMiddleware, routes.DeleteVehicleImage)
		vehicle.Get("/{id}/reviews", routes.GetVehicleReviews)
	}

	availability := app.Party("/api/availability")
	{
		availability.Get("/vehicle/{id}", routes.GetVehicleAvailability)
		availability.Post("/vehicle", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.SetVehicleAvailability)
		availability.Post("/block", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.BlockVehicleDates)
	}

	categories := app.Party("/api/categories")
	{
		categories.Get("/", routes.ListVehicleCategories)
	}

	reservation := app.Party("/api/reservation")
	{
		reservation.Post("/", accessTokenVerifierMiddleware, routes.CreateReservation)
		reservation.Get("/renter", accessTokenVerifierMiddleware, routes.GetReservationsByRenter)
		reservation.Get("/owner", accessTokenVerifierMiddleware, routes.GetReservationsByOwner)
		reservation.Patch("/{id}/status", accessTokenVerifierMiddleware, routes.UpdateReservationStatus)
		reservation.Delete("/{id}", accessTokenVerifierMiddleware, routes.CancelReservation)
		reservation.Get("/validate", routes.ValidateReservationAvailability)
	}

	payment := app.Party("/api/payment")
	{
		payment.Post("/", accessTokenVerifierMiddleware, routes.RecordPayment)
		payment.Get("/payouts", accessTokenVerifierMiddleware, routes.GetOwnerPayouts)
		payment.Get("/history", accessTokenVerifierMiddleware, routes.GetRenterPayments)
	}

	review := app.Party("/api/review")
	{
		review.Post("/", accessTokenVerifierMiddleware, routes.CreateReview)
	}

	conversation := app.Party("/api/conversation")
	{
		conversation.Post("/", accessTokenVerifierMiddleware, routes.StartConversation)
		conversation.Get("/", accessTokenVerifierMiddleware, routes.GetConversations)
		conversation.Get("/{id}/messages", accessTokenVerifierMiddleware, routes.GetMessages)
		conversation.Post("/{id}/messages", accessTokenVerifierMiddleware, routes.SendMessage)
		conversation.Post("/{id}/seen", accessTokenVerifierMiddleware, routes.MarkConversationSeen)
	}

	notifications := app.Party("/api/notifications")
	{
		notifications.Get("/", accessTokenVerifierMiddleware, routes.GetNotifications)
		notifications.Patch("/{id}/read", accessTokenVerifierMiddleware, routes.MarkNotificationRead)
		notifications.Patch("/read-all", accessTokenVerifierMiddleware, routes.MarkAllNotificationsRead)
	}

	upload := app.Party("/api/upload")
	{
		upload.Post("/image", accessTokenVerifierMiddleware, routes.UploadImage)
	}

	// Admin routes
	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/users/{id:uint}", routes.AdminGetUser)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, routes.AdminChangeUserRole)
		admin.Patch("/users/{id:uint}/suspend", routes.AdminSuspendUser)
		admin.Get("/verifications", routes.AdminListDriverVerifications)
		admin.Post("/verifications/{id:uint}/review", routes.AdminReviewDriverVerification)
		admin.Get("/vehicles", routes.AdminListVehicles)
		admin.Get("/vehicles/{id:uint}", routes.AdminGetVehicle)
		admin.Patch("/vehicles/{id:uint}/status", routes.AdminUpdateVehicleStatus)
		admin.Post("/vehicles/{id:uint}/flag", routes.AdminFlagVehicle)
		admin.Post("/vehicles/{id:uint}/unflag", routes.AdminUnflagVehicle)
		admin.Get("/reservations", routes.AdminListReservations)
		admin.Get("/reservations/{id:uint}", routes.AdminGetReservation)
		admin.Post("/reservations/{id:uint}/cancel", routes.AdminCancelReservation)
		admin.Patch("/reservations/{id:uint}/status", routes.AdminUpdateReservationStatus)
		admin.Post("/reservations/expire-pending", routes.ExpirePendingReservations)
		admin.Patch("/reviews/{id:uint}/status", routes.ModerateReview)
		admin.Put("/categories", utils.SuperAdminOnlyMiddleware, routes.UpsertVehicleCategory)
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	app.Listen(":" + port)
}
