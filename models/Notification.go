package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model
	UserID  uint   `json:"userID" gorm:"index"`
	Title   string `json:"title"`
	Message string `json:"message" gorm:"type:text"`
	Type    string `json:"type" gorm:"size:48;index"` // reservation_request, reservation_status, payment_received, message_received, listing_moderated
	RefID   uint   `json:"refID"`
	RefType string `json:"refType" gorm:"size:32"` // reservation, transaction, vehicle, conversation
	IsRead  bool   `json:"isRead" gorm:"default:false;index"`
}
