package models

import (
	"time"

	"gorm.io/gorm"
)

// VehicleAvailability tracks per-day availability and pricing overrides for a
// vehicle. A missing row means the day is available at the listing price.
type VehicleAvailability struct {
	gorm.Model
	VehicleID   uint      `json:"vehicleID" gorm:"index:idx_vehicle_date,unique"`
	Date        time.Time `json:"date" gorm:"index:idx_vehicle_date,unique"`
	IsAvailable bool      `json:"isAvailable" gorm:"default:true"`
	Price       float64   `json:"price"`
	MinDays     int       `json:"minDays" gorm:"default:1"`
	MaxDays     int       `json:"maxDays" gorm:"default:0"` // 0 = no cap
	PickupTime  string    `json:"pickupTime" gorm:"type:varchar(10)"`
	ReturnTime  string    `json:"returnTime" gorm:"type:varchar(10)"`
	Notes       string    `json:"notes" gorm:"size:128"`
}
