package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction records a payment settled against a reservation. Amount field
// names keep the French wire format used by the mobile clients and the
// historical data import (montantBrut / montantNet / fraisCommission).
type Transaction struct {
	gorm.Model
	ReservationID uint       `json:"reservationID" gorm:"index"`
	Reference     string     `json:"reference" gorm:"size:64;uniqueIndex"`
	GrossAmount   float64    `json:"montantBrut"`
	NetAmount     float64    `json:"montantNet"`
	CommissionFee float64    `json:"fraisCommission"`
	Currency      string     `json:"currency" gorm:"size:8;default:'MRU'"`
	Method        string     `json:"method" gorm:"size:32"` // bankily, masrvi, sedad, cash
	Status        string     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaidAt        *time.Time `json:"paidAt"`

	Reservation *Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
}
