package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"tms/src/types"

	"github.com/google/uuid"
)

type ItineraryDay struct {
	Day        uint     `json:"day"`
	Activities []string `json:"activities"`
}

type Accommodation struct {
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	Nights    uint     `json:"nights"`
	Amenities []string `json:"amenities,omitempty"`
}

// PackageDocument is the structured itinerary content of a Package, stored as
// a single jsonb column. It is only ever written after passing through
// common.NormalizeDocument.
type PackageDocument struct {
	DurationDays   uint            `json:"duration_days"`
	Days           []ItineraryDay  `json:"days"`
	Accommodations []Accommodation `json:"accommodations"`
	Meals          []string        `json:"meals,omitempty"`
	Transport      string          `json:"transport,omitempty"`
	Includes       []string        `json:"includes,omitempty"`
	Excludes       []string        `json:"excludes,omitempty"`
	WhatToBring    []string        `json:"what_to_bring,omitempty"`
}

func (d PackageDocument) Value() (driver.Value, error) {
	valueString, err := json.Marshal(d)
	return string(valueString), err
}
func (d *PackageDocument) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, d)
}

type Package struct {
	ID               uuid.UUID       `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	HostID           uuid.UUID       `gorm:"type:uuid" json:"host_id"`
	Title            string          `json:"title,omitempty"`
	Slug             string          `gorm:"uniqueIndex" json:"slug,omitempty"`
	ShortDescription string          `json:"short_description,omitempty"`
	LongDocument     PackageDocument `gorm:"type:jsonb" json:"long_document"`
	// PricePerPerson is in minor currency units (centavos).
	PricePerPerson     int64               `json:"price_per_person"`
	CapacityMin        uint                `gorm:"default:1" json:"capacity_min"`
	CapacityMax        uint                `json:"capacity_max"`
	DurationDays       uint                `json:"duration_days"`
	Tags               types.JSONBArray    `gorm:"type:jsonb" json:"tags,omitempty"`
	Images             types.JSONBArray    `gorm:"type:jsonb" json:"images,omitempty"`
	CancellationPolicy *string             `json:"cancellation_policy,omitempty"`
	Status             types.PackageStatus `gorm:"default:'draft'" json:"status,omitempty"`

	Host     *Profile  `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Bookings []Booking `gorm:"foreignKey:PackageID" json:"bookings,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:PackageID" json:"reviews,omitempty"`

	types.Timestamps
}
