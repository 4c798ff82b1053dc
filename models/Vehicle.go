package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	OwnerID            uint          `json:"ownerID" gorm:"index"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	VehicleType        string        `json:"vehicleType"` // car, suv, van, pickup, moto
	Make               string        `json:"make"`
	ModelName          string        `json:"model" gorm:"column:model_name"`
	Year               int           `json:"year"`
	Transmission       string        `json:"transmission"` // manual, automatic
	FuelType           string        `json:"fuelType"`     // petrol, diesel, hybrid, electric
	Seats              int           `json:"seats"`
	Doors              int           `json:"doors"`
	PlateNumber        string        `json:"plateNumber"`
	City               string        `json:"city"`
	Lat                float32       `json:"lat"`
	Lng                float32       `json:"lng"`
	DailyPrice         float64       `json:"dailyPrice"`
	CleaningFee        float64       `json:"cleaningFee"`
	ServiceFee         float64       `json:"serviceFee"`
	Currency           string        `json:"currency"` // MRU for Mauritania
	Features           string        `json:"features"` // JSON array of strings
	Images             string        `json:"images"`   // JSON array of URLs
	CancellationPolicy string        `json:"cancellationPolicy"`
	IsActive           *bool         `json:"isActive"`
	Rating             float32       `json:"rating"`
	ViewCount          int64         `json:"viewCount" gorm:"default:0"`
	Reviews            []Review      `json:"reviews" gorm:"foreignKey:VehicleID"`
	Reservations       []Reservation `json:"reservations"`
	Owner              User          `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
	CategoryID         *uint         `json:"categoryId" gorm:"column:category_id"`

	// Admin moderation fields
	Status      string `json:"status" gorm:"type:varchar(20);default:'pending';index"` // pending, approved, rejected
	ReviewNotes string `json:"reviewNotes" gorm:"type:text"`
	IsFlagged   bool   `json:"isFlagged" gorm:"default:false;index"`
	FlagReason  string `json:"flagReason" gorm:"type:text"`
}

// Custom JSON marshaling to convert Images and Features strings to arrays
func (v *Vehicle) MarshalJSON() ([]byte, error) {
	type Alias Vehicle
	aux := &struct {
		Images   []string `json:"images"`
		Features []string `json:"features"`
		Owner    *User    `json:"owner,omitempty"`
		*Alias
	}{
		Images:   []string{},
		Features: []string{},
		Owner:    nil,
		Alias:    (*Alias)(v),
	}

	if v.Images != "" {
		var images []string
		if err := json.Unmarshal([]byte(v.Images), &images); err == nil {
			aux.Images = images
		}
	}

	if v.Features != "" {
		var features []string
		if err := json.Unmarshal([]byte(v.Features), &features); err == nil {
			aux.Features = features
		}
	}

	// Only include owner when loaded, and strip their vehicle list to avoid
	// a circular reference
	if v.Owner.ID > 0 {
		ownerCopy := v.Owner
		ownerCopy.Vehicles = nil
		aux.Owner = &ownerCopy
	}

	return json.Marshal(aux)
}
