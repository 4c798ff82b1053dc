package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation groups the messages exchanged between a renter and a vehicle
// owner about one listing. The preview fields are denormalized on every send
// so the inbox can render without loading messages.
type Conversation struct {
	gorm.Model
	VehicleID       uint      `json:"vehicleID" gorm:"index"`
	OwnerID         uint      `json:"ownerID" gorm:"index"`
	RenterID        uint      `json:"renterID" gorm:"index"`
	LastMessageText string    `json:"lastMessageText" gorm:"size:512"`
	LastSenderID    uint      `json:"lastSenderID"`
	LastMessageAt   time.Time `json:"lastMessageAt" gorm:"index"`
	OwnerUnread     int       `json:"ownerUnread" gorm:"default:0"`
	RenterUnread    int       `json:"renterUnread" gorm:"default:0"`

	Vehicle  *Vehicle  `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Owner    *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Renter   *User     `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ConversationID"`
}
