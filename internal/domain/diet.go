package domain

import "strings"

// Diet is the dietary category a recipe belongs to.
type Diet string

// Known diet categories. DietNormal is the fallback for any unrecognized label.
const (
	DietNormal     Diet = "normal"
	DietVegetarian Diet = "vegetarian"
	DietVegan      Diet = "vegan"
)

// ParseDiet maps a free-text label to a Diet. Matching is case-insensitive and
// exact; anything other than "vegetarian" or "vegan" yields DietNormal.
func ParseDiet(text string) Diet {
	switch strings.ToLower(text) {
	case string(DietVegetarian):
		return DietVegetarian
	case string(DietVegan):
		return DietVegan
	default:
		return DietNormal
	}
}

// String returns the diet tag.
func (d Diet) String() string {
	return string(d)
}

// IsValid reports whether d is one of the known categories.
func (d Diet) IsValid() bool {
	switch d {
	case DietNormal, DietVegetarian, DietVegan:
		return true
	default:
		return false
	}
}
