package common

import (
	"errors"
	"testing"
	"tms/src/models"
	"tms/src/types"

	"github.com/stretchr/testify/assert"
)

func TestDocumentFromInput(t *testing.T) {
	in := &types.PackageDocumentInput{
		Days: []types.ItineraryDayInput{
			{Day: 1, Activities: []string{"  Mercado Ver-o-Peso ", ""}},
			{Day: 2, Activities: []string{"", "   "}},
			{Day: 3, Activities: []string{"Ilha do Combu"}},
		},
		Accommodations: []types.AccommodationInput{
			{Name: "  Pousada Rio ", Address: " Av. Beira Mar 12 ", Nights: 2},
			{Name: "   ", Address: "dropped", Nights: 1},
		},
		Meals:       "café da manhã, almoço , , jantar",
		Transport:   "  van + barco ",
		Includes:    "guia local\n\n ingressos \n",
		WhatToBring: "protetor solar\nrepelente",
	}
	doc := DocumentFromInput(in, 3)

	assert.Equal(t, uint(3), doc.DurationDays)
	// the all-blank day 2 is dropped
	assert.Len(t, doc.Days, 2)
	assert.Equal(t, []string{"Mercado Ver-o-Peso"}, doc.Days[0].Activities)
	assert.Equal(t, uint(3), doc.Days[1].Day)
	assert.Len(t, doc.Accommodations, 1)
	assert.Equal(t, "Pousada Rio", doc.Accommodations[0].Name)
	assert.Equal(t, "Av. Beira Mar 12", doc.Accommodations[0].Address)
	assert.Equal(t, []string{"café da manhã", "almoço", "jantar"}, doc.Meals)
	assert.Equal(t, "van + barco", doc.Transport)
	assert.Equal(t, []string{"guia local", "ingressos"}, doc.Includes)
	assert.Equal(t, []string{"protetor solar", "repelente"}, doc.WhatToBring)
}

func TestNormalizeDocumentIdempotent(t *testing.T) {
	doc := models.PackageDocument{
		DurationDays: 2,
		Days: []models.ItineraryDay{
			{Day: 1, Activities: []string{" trilha ", ""}},
			{Day: 2, Activities: []string{"   "}},
		},
		Accommodations: []models.Accommodation{
			{Name: " Chalé ", Nights: 1, Amenities: []string{" wifi ", ""}},
			{Name: "", Nights: 3},
		},
		Meals:     []string{" almoço ", ""},
		Transport: " ônibus ",
	}
	once := NormalizeDocument(doc)
	twice := NormalizeDocument(once)
	assert.Equal(t, once, twice)
}

func TestValidateDocument(t *testing.T) {
	valid := models.PackageDocument{
		DurationDays: 2,
		Days: []models.ItineraryDay{
			{Day: 1, Activities: []string{"chegada"}},
			{Day: 2, Activities: []string{"passeio"}},
		},
		Accommodations: []models.Accommodation{{Name: "Pousada", Nights: 1}},
	}
	assert.Nil(t, ValidateDocument(&valid, 2))

	short := valid
	short.Days = valid.Days[:1]
	err := ValidateDocument(&short, 2)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))

	gapped := valid
	gapped.Days = []models.ItineraryDay{
		{Day: 1, Activities: []string{"chegada"}},
		{Day: 3, Activities: []string{"passeio"}},
	}
	err = ValidateDocument(&gapped, 2)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))

	mismatch := valid
	mismatch.DurationDays = 5
	err = ValidateDocument(&mismatch, 2)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))

	zeroNights := valid
	zeroNights.Accommodations = []models.Accommodation{{Name: "Pousada", Nights: 0}}
	err = ValidateDocument(&zeroNights, 2)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a \n\n b ", "\n"))
	assert.Empty(t, SplitList("  ", ","))
}
