package models

import (
	"time"
)

// DriverVerification holds a renter's driving licence review request.
type DriverVerification struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UserID        uint       `json:"user_id" gorm:"not null;index"`
	DocumentType  string     `json:"document_type" gorm:"size:50;not null"` // licence, id_card, passport
	LicenseNumber string     `json:"license_number" gorm:"size:64"`
	DocumentURL   string     `json:"document_url" gorm:"size:512;not null"`
	Status        string     `json:"status" gorm:"size:20;default:'pending';index"` // pending, verified, rejected
	ReviewedBy    *uint      `json:"reviewed_by" gorm:"index"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	Notes         string     `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
