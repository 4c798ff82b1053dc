package routes

import (
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/analytics"
	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/services"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"
	"github.com/Eddie2908/AUTOLOCO-sub001/utils"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"github.com/shopspring/decimal"
)

type RecordPaymentInput struct {
	ReservationID uint    `json:"reservationID" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Method        string  `json:"method" validate:"required,oneof=bankily masrvi sedad cash"`
}

// RecordPayment settles a confirmed reservation. The gateway side happens out
// of band; we record the split and credit the owner.
func RecordPayment(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input RecordPaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Reservation
	if err := storage.DB.Preload("Vehicle").First(&reservation, input.ReservationID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if reservation.RenterID != claims.ID {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	if !analytics.IsConfirmed(reservation.Status) {
		utils.CreateError(iris.StatusBadRequest, "Reservation Not Confirmed",
			"Payments can only be recorded for confirmed reservations.", ctx)
		return
	}

	var existing int64
	storage.DB.Model(&models.Transaction{}).
		Where("reservation_id = ? AND status = ?", reservation.ID, "paid").
		Count(&existing)
	if existing > 0 {
		utils.CreateError(iris.StatusConflict, "Already Paid",
			"A settled payment already exists for this reservation.", ctx)
		return
	}

	gross := decimal.NewFromFloat(input.Amount)
	commission := gross.Mul(commissionRate).Round(2)
	net := gross.Sub(commission)

	grossF, _ := gross.Float64()
	commissionF, _ := commission.Float64()
	netF, _ := net.Float64()

	currency := "MRU"
	if reservation.Vehicle != nil && reservation.Vehicle.Currency != "" {
		currency = reservation.Vehicle.Currency
	}

	now := time.Now()
	transaction := models.Transaction{
		ReservationID: reservation.ID,
		Reference:     uuid.New().String(),
		GrossAmount:   grossF,
		NetAmount:     netF,
		CommissionFee: commissionF,
		Currency:      currency,
		Method:        input.Method,
		Status:        "paid",
		PaidAt:        &now,
	}

	if err := storage.DB.Create(&transaction).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	vehicleTitle := ""
	if reservation.Vehicle != nil {
		vehicleTitle = reservation.Vehicle.Title
	}
	go services.NewNotificationService().SendPaymentNotificationToOwner(
		transaction.ID, reservation.ID, reservation.OwnerID, netF, currency, vehicleTitle)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(transaction)
}

// GetOwnerPayouts lists settled transactions across the owner's vehicles with
// running totals. Net amounts come from the same rule the dashboards use so
// the two surfaces never disagree.
func GetOwnerPayouts(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var reservations []models.Reservation
	res := storage.DB.Preload("Vehicle").Preload("Transactions").
		Where("owner_id = ?", claims.ID).
		Order("created_at DESC").Find(&reservations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var (
		transactions    []models.Transaction
		totalNet        float64
		totalCommission float64
	)
	for i := range reservations {
		for _, tx := range reservations[i].Transactions {
			if tx.Status != "paid" {
				continue
			}
			row := analytics.ReservationRow{
				GrossAmount:   reservations[i].GrossAmount,
				CommissionFee: reservations[i].CommissionFee,
				Transaction: &analytics.TransactionRow{
					NetAmount:     tx.NetAmount,
					CommissionFee: tx.CommissionFee,
				},
			}
			totalNet += analytics.NetRevenue(row)
			totalCommission += tx.CommissionFee
			transactions = append(transactions, tx)
		}
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	ctx.JSON(iris.Map{
		"transactions":    transactions,
		"totalNet":        totalNet,
		"totalCommission": totalCommission,
		"count":           len(transactions),
	})
}

// GetRenterPayments returns the authenticated renter's payment history.
func GetRenterPayments(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var transactions []models.Transaction
	res := storage.DB.
		Joins("JOIN reservations ON reservations.id = transactions.reservation_id").
		Where("reservations.renter_id = ?", claims.ID).
		Order("transactions.created_at DESC").
		Preload("Reservation").Preload("Reservation.Vehicle").
		Find(&transactions)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	ctx.JSON(transactions)
}
