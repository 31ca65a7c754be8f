package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type UserRole string

const (
	ROLE_TRAVELER UserRole = "traveler"
	ROLE_HOST     UserRole = "host"
	ROLE_ADMIN    UserRole = "admin"
)

type PackageStatus string

const (
	PACKAGE_DRAFT            PackageStatus = "draft"
	PACKAGE_PENDING_APPROVAL PackageStatus = "pending_approval"
	PACKAGE_PUBLISHED        PackageStatus = "published"
	PACKAGE_ARCHIVED         PackageStatus = "archived"
)

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELED  BookingStatus = "cancelled"
	BOOKING_COMPLETED BookingStatus = "completed"
)

type PaymentStatus string

const (
	PAYMENT_PENDING    PaymentStatus = "pending"
	PAYMENT_PROCESSING PaymentStatus = "processing"
	PAYMENT_PAID       PaymentStatus = "paid"
	PAYMENT_REFUNDED   PaymentStatus = "refunded"
)

type TransactionStatus string

const (
	TRANSACTION_PENDING   TransactionStatus = "pending"
	TRANSACTION_COMPLETED TransactionStatus = "completed"
	TRANSACTION_FAILED    TransactionStatus = "failed"
	TRANSACTION_CANCELED  TransactionStatus = "cancelled"
	TRANSACTION_REFUNDED  TransactionStatus = "refunded"
)

type PaymentMethod string

const (
	PAYMENT_METHOD_CREDIT_CARD PaymentMethod = "credit_card"
	PAYMENT_METHOD_PAYPAL      PaymentMethod = "paypal"
	PAYMENT_METHOD_BOLETO      PaymentMethod = "boleto"
)

type RegisterRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=traveler host"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ItineraryDayInput struct {
	Day        uint     `json:"day"`
	Activities []string `json:"activities"`
}

type AccommodationInput struct {
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	Nights    uint     `json:"nights"`
	Amenities []string `json:"amenities,omitempty"`
}

// PackageDocumentInput carries the raw editor fields. List-like fields arrive
// as free text: meals comma separated, the rest newline separated.
type PackageDocumentInput struct {
	Days           []ItineraryDayInput  `json:"days"`
	Accommodations []AccommodationInput `json:"accommodations"`
	Meals          string               `json:"meals,omitempty"`
	Transport      string               `json:"transport,omitempty"`
	Includes       string               `json:"includes,omitempty"`
	Excludes       string               `json:"excludes,omitempty"`
	WhatToBring    string               `json:"what_to_bring,omitempty"`
}

type CreatePackageRequestBody struct {
	Title              string               `json:"title" binding:"required"`
	ShortDescription   string               `json:"short_description" binding:"required"`
	PricePerPerson     int64                `json:"price_per_person" binding:"min=0"`
	CapacityMin        uint                 `json:"capacity_min" binding:"required,min=1"`
	CapacityMax        uint                 `json:"capacity_max" binding:"required,gtecsfield=CapacityMin"`
	DurationDays       uint                 `json:"duration_days" binding:"required,min=1"`
	Tags               []string             `json:"tags,omitempty"`
	Images             string               `json:"images,omitempty"`
	CancellationPolicy string               `json:"cancellation_policy,omitempty"`
	Publish            bool                 `json:"publish,omitempty"`
	Document           PackageDocumentInput `json:"long_document"`
}

type PackageSearchQuery struct {
	Q        string `form:"q"`
	Tag      string `form:"tag"`
	PriceMin *int64 `form:"price_min"`
	PriceMax *int64 `form:"price_max"`
	Limit    int    `form:"limit,default=50" binding:"omitempty,min=1,max=100"`
}

type CreateBookingRequestBody struct {
	PackageID     string `json:"package_id" binding:"required,uuid"`
	StartDate     string `json:"start_date" binding:"required,bookabledate"`
	NumPeople     uint   `json:"num_people" binding:"required,min=1"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=credit_card paypal boleto"`
}

type CreateReviewRequestBody struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Rating    uint8  `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment,omitempty"`
}

type UpdateProfileRequestBody struct {
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

type UUIDRequestParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}
