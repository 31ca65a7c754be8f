package models

import (
	"time"
	"tms/src/types"

	"github.com/google/uuid"
)

type Booking struct {
	ID        uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	PackageID uuid.UUID `gorm:"type:uuid" json:"package_id"`
	UserID    uuid.UUID `gorm:"type:uuid" json:"user_id"`
	StartDate time.Time `gorm:"type:date" json:"start_date"`
	// EndDate is derived: start_date + duration_days - 1. Never set directly.
	EndDate       time.Time           `gorm:"type:date" json:"end_date"`
	NumPeople     uint                `json:"num_people"`
	TotalAmount   int64               `json:"total_amount"`
	Status        types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	PaymentStatus types.PaymentStatus `gorm:"default:'pending'" json:"payment_status,omitempty"`

	Package     *Package     `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	User        *Profile     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:BookingID" json:"transaction,omitempty"`

	types.Timestamps
}
