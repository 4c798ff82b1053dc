package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// CategoryNames represents multilingual category names
type CategoryNames struct {
	En string `json:"en"`
	Fr string `json:"fr"`
	Ar string `json:"ar"`
}

// Value implements the driver.Valuer interface for database storage
func (cn CategoryNames) Value() (driver.Value, error) {
	return json.Marshal(cn)
}

// Scan implements the sql.Scanner interface for database retrieval
func (cn *CategoryNames) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, cn)
}

// VehicleCategory represents a rentable vehicle class (citadine, SUV, pickup,
// minibus, ...) shown as browse filters in the apps.
type VehicleCategory struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Slug        string        `json:"slug" gorm:"size:64;uniqueIndex"`
	Name        CategoryNames `json:"name" gorm:"type:jsonb"`
	Icon        string        `json:"icon" gorm:"size:64"` // Phosphor icon name
	Description CategoryNames `json:"description" gorm:"type:jsonb"`
	IsActive    bool          `json:"is_active" gorm:"default:true"`
	SortOrder   int           `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
