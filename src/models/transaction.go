package models

import (
	"tms/src/types"

	"github.com/google/uuid"
)

// Transaction is created atomically with its Booking, 1:1.
// Invariant: Amount = Commission + NetAmount + GatewayFee.
type Transaction struct {
	ID        uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"booking_id"`

	Amount        int64                   `json:"amount"`
	Commission    int64                   `json:"commission"`
	GatewayFee    int64                   `json:"gateway_fee"`
	NetAmount     int64                   `json:"net_amount"`
	PaymentMethod types.PaymentMethod     `json:"payment_method,omitempty"`
	Status        types.TransactionStatus `gorm:"default:'pending'" json:"status,omitempty"`

	Booking Booking `gorm:"foreignKey:BookingID" json:"-"`

	types.Timestamps
}
