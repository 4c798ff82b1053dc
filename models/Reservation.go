package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation models a rental booking for a Vehicle.
type Reservation struct {
	gorm.Model
	VehicleID     uint      `json:"vehicleID" gorm:"index"`
	OwnerID       uint      `json:"ownerID" gorm:"index"` // denormalized from Vehicle for owner queries
	RenterID      uint      `json:"renterID" gorm:"index"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Days          int       `json:"days"` // explicit rental length; 0 means derive from the date span
	GrossAmount   float64   `json:"grossAmount"`
	CommissionFee float64   `json:"commissionFee"`
	Status        string    `json:"status" gorm:"type:varchar(20);default:'pending';index"` // pending, confirmed, rejected, cancelled, completed, expired
	LegacyStatus  string    `json:"legacyStatus" gorm:"type:varchar(64)"`                   // free-text status from imported rows, kept for audit
	Note          string    `json:"note"`
	ExpiresAt     time.Time `json:"expiresAt"` // 24h window for pending requests

	// Relationships
	Vehicle      *Vehicle      `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Renter       *User         `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
	Transactions []Transaction `json:"transactions,omitempty" gorm:"foreignKey:ReservationID"`
}
