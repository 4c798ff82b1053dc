package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Eddie2908/AUTOLOCO-sub001/analytics"
	"github.com/Eddie2908/AUTOLOCO-sub001/models"
	"github.com/Eddie2908/AUTOLOCO-sub001/storage"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo owner with vehicles, bookings and payments so the dashboards
// have data on a fresh database. Safe to run more than once: rows are keyed
// by email/plate and skipped when present.
func main() {
	godotenv.Load()
	storage.InitializeDB()

	seedCategories()
	owner := seedUser("demo.owner@autoloco.mr", "Moussa", "Diallo", "owner", "22231234")
	renter := seedUser("demo.renter@autoloco.mr", "Fatima", "Ba", "user", "22245678")
	seedUser("admin@autoloco.mr", "Admin", "Autoloco", "super_admin", "22239999")

	vehicles := seedVehicles(owner.ID)
	seedBookings(vehicles, owner.ID, renter.ID)

	fmt.Println("Demo data seeded successfully!")
}

func seedCategories() {
	categories := []models.VehicleCategory{
		{Slug: "citadine", Name: models.CategoryNames{En: "City car", Fr: "Citadine", Ar: "سيارة مدينة"}, Icon: "car", SortOrder: 1, IsActive: true},
		{Slug: "suv", Name: models.CategoryNames{En: "SUV", Fr: "SUV", Ar: "دفع رباعي"}, Icon: "suv", SortOrder: 2, IsActive: true},
		{Slug: "pickup", Name: models.CategoryNames{En: "Pickup", Fr: "Pick-up", Ar: "بيك أب"}, Icon: "pickup", SortOrder: 3, IsActive: true},
		{Slug: "van", Name: models.CategoryNames{En: "Van", Fr: "Fourgonnette", Ar: "فان"}, Icon: "van", SortOrder: 4, IsActive: true},
	}
	for _, c := range categories {
		var existing models.VehicleCategory
		if storage.DB.Where("slug = ?", c.Slug).Limit(1).Find(&existing); existing.ID == 0 {
			if err := storage.DB.Create(&c).Error; err != nil {
				log.Fatalf("seed category %s: %v", c.Slug, err)
			}
		}
	}
}

func seedUser(email, firstName, lastName, role, phone string) *models.User {
	var user models.User
	storage.DB.Where("email = ?", email).Limit(1).Find(&user)
	if user.ID != 0 {
		return &user
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}

	allows := true
	user = models.User{
		FirstName:           firstName,
		LastName:            lastName,
		Email:               email,
		PhoneNumber:         "222" + phone,
		Password:            string(hash),
		Role:                role,
		AllowsNotifications: &allows,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}
	return &user
}

func seedVehicles(ownerID uint) []models.Vehicle {
	active := true
	specs := []models.Vehicle{
		{
			Title: "Toyota Corolla 2021 - Nouakchott", VehicleType: "car",
			Make: "Toyota", ModelName: "Corolla", Year: 2021,
			Transmission: "automatic", FuelType: "petrol", Seats: 5, Doors: 4,
			PlateNumber: "0001AA00", City: "Nouakchott",
			DailyPrice: 12000, CleaningFee: 1000, ServiceFee: 500,
		},
		{
			Title: "Hyundai Tucson 2022 - Nouakchott", VehicleType: "suv",
			Make: "Hyundai", ModelName: "Tucson", Year: 2022,
			Transmission: "automatic", FuelType: "diesel", Seats: 5, Doors: 4,
			PlateNumber: "0002AA00", City: "Nouakchott",
			DailyPrice: 20000, CleaningFee: 1500, ServiceFee: 800,
		},
		{
			Title: "Toyota Hilux 2020 - Nouadhibou", VehicleType: "pickup",
			Make: "Toyota", ModelName: "Hilux", Year: 2020,
			Transmission: "manual", FuelType: "diesel", Seats: 5, Doors: 4,
			PlateNumber: "0003AA00", City: "Nouadhibou",
			DailyPrice: 25000, CleaningFee: 2000, ServiceFee: 1000,
		},
	}

	features, _ := json.Marshal([]string{"climatisation", "bluetooth"})
	images, _ := json.Marshal([]string{})

	var vehicles []models.Vehicle
	for _, v := range specs {
		var existing models.Vehicle
		storage.DB.Where("plate_number = ?", v.PlateNumber).Limit(1).Find(&existing)
		if existing.ID != 0 {
			vehicles = append(vehicles, existing)
			continue
		}
		v.OwnerID = ownerID
		v.Currency = "MRU"
		v.Features = string(features)
		v.Images = string(images)
		v.CancellationPolicy = "moderate"
		v.IsActive = &active
		v.Status = "approved"
		v.ViewCount = int64(100 + len(vehicles)*40)
		if err := storage.DB.Create(&v).Error; err != nil {
			log.Fatalf("seed vehicle %s: %v", v.PlateNumber, err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles
}

func seedBookings(vehicles []models.Vehicle, ownerID, renterID uint) {
	var count int64
	storage.DB.Model(&models.Reservation{}).Where("owner_id = ?", ownerID).Count(&count)
	if count > 0 {
		return
	}

	now := time.Now()
	for i, v := range vehicles {
		for j := 0; j < 3; j++ {
			days := 2 + i + j*3
			start := now.AddDate(0, 0, -(10 + i*20 + j*30))
			end := start.AddDate(0, 0, days)
			gross := v.DailyPrice*float64(days) + v.CleaningFee + v.ServiceFee
			commission := gross * 0.15

			reservation := models.Reservation{
				VehicleID:     v.ID,
				OwnerID:       ownerID,
				RenterID:      renterID,
				StartDate:     start,
				EndDate:       end,
				Days:          days,
				GrossAmount:   gross,
				CommissionFee: commission,
				Status:        analytics.StatusCompleted,
				ExpiresAt:     start,
			}
			if err := storage.DB.Create(&reservation).Error; err != nil {
				log.Fatalf("seed reservation: %v", err)
			}

			paidAt := start.AddDate(0, 0, -1)
			transaction := models.Transaction{
				ReservationID: reservation.ID,
				Reference:     uuid.New().String(),
				GrossAmount:   gross,
				NetAmount:     gross - commission,
				CommissionFee: commission,
				Currency:      "MRU",
				Method:        "bankily",
				Status:        "paid",
				PaidAt:        &paidAt,
			}
			if err := storage.DB.Create(&transaction).Error; err != nil {
				log.Fatalf("seed transaction: %v", err)
			}
		}
	}
}
