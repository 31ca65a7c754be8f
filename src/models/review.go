package models

import (
	"tms/src/types"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	BookingID  uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"booking_id"`
	PackageID  uuid.UUID `gorm:"type:uuid" json:"package_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid" json:"reviewer_id"`
	RevieweeID uuid.UUID `gorm:"type:uuid" json:"reviewee_id"`
	Rating     uint8     `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`

	Reviewer *Profile `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Booking  *Booking `gorm:"foreignKey:BookingID" json:"-"`

	types.Timestamps
}
