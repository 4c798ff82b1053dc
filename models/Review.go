package models

import "gorm.io/gorm"

const (
	ReviewStatusPublished = "published"
	ReviewStatusHidden    = "hidden"
	ReviewStatusDeleted   = "deleted" // soft delete, excluded from listings and aggregates
)

type Review struct {
	gorm.Model
	AuthorID      uint         `json:"authorID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TargetUserID  uint         `json:"targetUserID" gorm:"not null;index"` // the owner being rated
	VehicleID     uint         `json:"vehicleID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ReservationID *uint        `json:"reservationID" gorm:"index;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Reservation   *Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
	Author        User         `json:"author" gorm:"foreignKey:AuthorID"`
	Vehicle       Vehicle      `json:"vehicle" gorm:"foreignKey:VehicleID"`
	Title         string       `json:"title"`
	Body          string       `json:"body" gorm:"type:text"`
	Rating        int          `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	IsVerified    bool         `json:"isVerified" gorm:"default:false"` // verified rental
	Status        string       `json:"status" gorm:"type:varchar(20);default:'published';index"`
}
