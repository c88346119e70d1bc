package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Recipe is a named set of ingredient requirements.
// Ingredients maps an ingredient name (case-sensitive) to the amount required.
// Amounts are assumed to already be in units comparable with pantry stock.
type Recipe struct {
	ID          string             `json:"_id,omitempty" mapstructure:"_id"`
	Name        string             `json:"name"          mapstructure:"name"`
	Diet        Diet               `json:"diet"          mapstructure:"diet"`
	Ingredients map[string]float64 `json:"ingredients"   mapstructure:"ingredients"`
}

// NewRecipe creates a Recipe, classifying dietText with ParseDiet.
// Returns an error if validation fails.
func NewRecipe(name, dietText string, ingredients map[string]float64) (*Recipe, error) {
	recipe := &Recipe{
		Name:        name,
		Diet:        ParseDiet(dietText),
		Ingredients: ingredients,
	}

	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	return recipe, nil
}

// Validate checks that the recipe has a name, a known diet, at least one
// ingredient, and no negative amounts.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: recipe %w", ErrValidation, ErrEmptyName)
	}
	if !r.Diet.IsValid() {
		return fmt.Errorf("%w: %w %q", ErrValidation, ErrInvalidDiet, r.Diet)
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrNoIngredients)
	}
	return ValidateAmounts(r.Ingredients)
}

// Document converts the recipe into a persistable document. The identifier is
// left out; stores assign it on create.
func (r *Recipe) Document() map[string]any {
	ingredients := make(map[string]any, len(r.Ingredients))
	for name, amount := range r.Ingredients {
		ingredients[name] = amount
	}
	return map[string]any{
		"kind":        KindRecipe,
		"name":        r.Name,
		"diet":        r.Diet.String(),
		"ingredients": ingredients,
	}
}

// RecipeFromDocument decodes a stored document into a Recipe. The diet field is
// free text and is classified with ParseDiet, so unknown labels become DietNormal.
func RecipeFromDocument(doc map[string]any) (*Recipe, error) {
	var raw struct {
		ID          string             `mapstructure:"_id"`
		Name        string             `mapstructure:"name"`
		Diet        string             `mapstructure:"diet"`
		Ingredients map[string]float64 `mapstructure:"ingredients"`
	}
	if err := decodeDocument(doc, &raw); err != nil {
		return nil, err
	}

	recipe := &Recipe{
		ID:          raw.ID,
		Name:        raw.Name,
		Diet:        ParseDiet(raw.Diet),
		Ingredients: raw.Ingredients,
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Document kinds distinguish recipes from pantries sharing one collection.
const (
	KindRecipe = "recipe"
	KindPantry = "pantry"
)

// ValidateAmounts checks that every key is a non-blank name and every amount
// is a finite, non-negative number.
func ValidateAmounts(amounts map[string]float64) error {
	for name, amount := range amounts {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: ingredient %w", ErrValidation, ErrEmptyName)
		}
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			return fmt.Errorf("%w: %q: %w", ErrValidation, name, ErrNonFiniteAmount)
		}
		if amount < 0 {
			return fmt.Errorf("%w: %q: %w", ErrValidation, name, ErrNegativeAmount)
		}
	}
	return nil
}

func decodeDocument(doc map[string]any, out any) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrInvalidFormat)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create document decoder: %w", err)
	}

	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return nil
}
