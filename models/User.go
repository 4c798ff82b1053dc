package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email"`
	PhoneNumber         string         `json:"phoneNumber" gorm:"uniqueIndex"`
	Password            string         `json:"password"`
	SocialLogin         bool           `json:"socialLogin"`
	SocialProvider      string         `json:"socialProvider"`
	AvatarURL           string         `json:"avatarURL"`
	DateOfBirth         string         `json:"dateOfBirth"`
	Bio                 string         `json:"bio"`
	Languages           datatypes.JSON `json:"languages"`
	Vehicles            []Vehicle      `json:"vehicles" gorm:"foreignKey:OwnerID;references:ID"`
	SavedVehicles       datatypes.JSON `json:"savedVehicles"`
	PushTokens          datatypes.JSON `json:"pushTokens"`
	AllowsNotifications *bool          `json:"allowsNotifications"`
	IsVerified          *bool          `json:"isVerified"`
	VerificationStatus  string         `json:"verificationStatus"` // pending, approved, rejected
	LicenseNumber       string         `json:"licenseNumber"`
	LicenseFrontImage   string         `json:"licenseFrontImage"`
	LicenseBackImage    string         `json:"licenseBackImage"`
	SelfieImage         string         `json:"selfieImage"`
	IsSuspended         bool           `json:"isSuspended" gorm:"default:false;index"`
	Role                string         `json:"role" gorm:"type:varchar(20);default:user;index"` // user, owner, admin, super_admin
}

// Custom JSON marshaling to expand the datatypes.JSON columns into arrays
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Languages     []string `json:"languages,omitempty"`
		SavedVehicles []int    `json:"savedVehicles,omitempty"`
		PushTokens    []string `json:"pushTokens,omitempty"`
		*Alias
	}{
		Languages:     []string{},
		SavedVehicles: []int{},
		PushTokens:    []string{},
		Alias:         (*Alias)(u),
	}

	if u.Languages != nil {
		var languages []string
		if err := json.Unmarshal(u.Languages, &languages); err == nil {
			aux.Languages = languages
		}
	}

	if u.SavedVehicles != nil {
		var savedVehicles []int
		if err := json.Unmarshal(u.SavedVehicles, &savedVehicles); err == nil {
			aux.SavedVehicles = savedVehicles
		}
	}

	if u.PushTokens != nil {
		var pushTokens []string
		if err := json.Unmarshal(u.PushTokens, &pushTokens); err == nil {
			aux.PushTokens = pushTokens
		}
	}

	// Vehicles are excluded to prevent circular references with Vehicle.Owner

	return json.Marshal(aux)
}
