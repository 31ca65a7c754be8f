package models

import (
	"tms/src/types"

	"github.com/google/uuid"
)

type Profile struct {
	ID           uuid.UUID      `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email        string         `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string         `json:"-"`
	Role         types.UserRole `gorm:"default:'traveler'" json:"role,omitempty"`
	FullName     string         `json:"full_name,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	AvatarURL    *string        `json:"avatar_url,omitempty"`
	Bio          *string        `json:"bio,omitempty"`
	KYCVerified  bool           `gorm:"column:kyc_verified" json:"kyc_verified"`

	Packages []Package `gorm:"foreignKey:HostID" json:"packages,omitempty"`
	Bookings []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`

	types.Timestamps
}
