package common

import (
	"fmt"
	"strings"
	"tms/src/models"
	"tms/src/types"
)

// SplitList turns free editor text into a trimmed list, dropping empties.
func SplitList(raw string, sep string) []string {
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func normalizeStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// NormalizeDocument cleans a PackageDocument: itinerary days whose activities
// are all blank are dropped, accommodations with blank names are dropped, and
// every list entry is trimmed. Idempotent.
func NormalizeDocument(doc models.PackageDocument) models.PackageDocument {
	out := models.PackageDocument{
		DurationDays: doc.DurationDays,
		Transport:    strings.TrimSpace(doc.Transport),
		Meals:        normalizeStrings(doc.Meals),
		Includes:     normalizeStrings(doc.Includes),
		Excludes:     normalizeStrings(doc.Excludes),
		WhatToBring:  normalizeStrings(doc.WhatToBring),
	}
	out.Days = make([]models.ItineraryDay, 0, len(doc.Days))
	for _, day := range doc.Days {
		activities := normalizeStrings(day.Activities)
		if len(activities) == 0 {
			continue
		}
		out.Days = append(out.Days, models.ItineraryDay{Day: day.Day, Activities: activities})
	}
	out.Accommodations = make([]models.Accommodation, 0, len(doc.Accommodations))
	for _, acc := range doc.Accommodations {
		name := strings.TrimSpace(acc.Name)
		if name == "" {
			continue
		}
		out.Accommodations = append(out.Accommodations, models.Accommodation{
			Name:      name,
			Address:   strings.TrimSpace(acc.Address),
			Nights:    acc.Nights,
			Amenities: normalizeStrings(acc.Amenities),
		})
	}
	return out
}

// DocumentFromInput builds a normalized PackageDocument from raw editor
// fields. The package-level duration_days field is the source of truth and is
// stamped onto the document here.
func DocumentFromInput(in *types.PackageDocumentInput, durationDays uint) models.PackageDocument {
	doc := models.PackageDocument{
		DurationDays: durationDays,
		Transport:    in.Transport,
		Meals:        SplitList(in.Meals, ","),
		Includes:     SplitList(in.Includes, "\n"),
		Excludes:     SplitList(in.Excludes, "\n"),
		WhatToBring:  SplitList(in.WhatToBring, "\n"),
	}
	for _, day := range in.Days {
		doc.Days = append(doc.Days, models.ItineraryDay{Day: day.Day, Activities: day.Activities})
	}
	for _, acc := range in.Accommodations {
		doc.Accommodations = append(doc.Accommodations, models.Accommodation{
			Name:      acc.Name,
			Address:   acc.Address,
			Nights:    acc.Nights,
			Amenities: acc.Amenities,
		})
	}
	return NormalizeDocument(doc)
}

// ValidateDocument enforces the publishable shape: the itinerary covers
// exactly durationDays days numbered contiguously from 1, and every
// accommodation stay is at least one night.
func ValidateDocument(doc *models.PackageDocument, durationDays uint) error {
	if doc.DurationDays != durationDays {
		return fmt.Errorf("%w: document declares %d days, package has %d", types.ErrInvalidInput, doc.DurationDays, durationDays)
	}
	if uint(len(doc.Days)) != durationDays {
		return fmt.Errorf("%w: itinerary has %d days, expected %d", types.ErrInvalidInput, len(doc.Days), durationDays)
	}
	for i, day := range doc.Days {
		if day.Day != uint(i)+1 {
			return fmt.Errorf("%w: itinerary days must be numbered contiguously from 1", types.ErrInvalidInput)
		}
		if len(day.Activities) == 0 {
			return fmt.Errorf("%w: day %d has no activities", types.ErrInvalidInput, day.Day)
		}
	}
	for _, acc := range doc.Accommodations {
		if acc.Name == "" {
			return fmt.Errorf("%w: accommodation name is required", types.ErrInvalidInput)
		}
		if acc.Nights < 1 {
			return fmt.Errorf("%w: accommodation %q must cover at least one night", types.ErrInvalidInput, acc.Name)
		}
	}
	return nil
}
