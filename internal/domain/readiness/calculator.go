package readiness

import (
	"fmt"

	"github.com/phrazzld/pantry-api/internal/domain"
)

// ErrEmptyRecipe is returned when a readiness score is requested for a recipe
// with no ingredient requirements.
var ErrEmptyRecipe = fmt.Errorf("%w: recipe has no ingredient requirements", domain.ErrInvalidInput)

// IngredientReadiness returns the availability ratio for a single ingredient.
//
// A zero requirement yields 0: such an ingredient is treated as not ready
// rather than trivially ready. The ratio is not capped at 1.
func IngredientReadiness(available, required float64) float64 {
	if required == 0 {
		return 0
	}
	return available / required
}

// RecipeReadiness returns the mean ingredient readiness of required against
// available. Ingredients missing from available count as 0 on hand; entries
// in available that the recipe does not need are ignored.
//
// Returns ErrEmptyRecipe if required is empty.
func RecipeReadiness(required, available map[string]float64) (float64, error) {
	if len(required) == 0 {
		return 0, ErrEmptyRecipe
	}

	var sum float64
	for name, amount := range required {
		sum += IngredientReadiness(available[name], amount)
	}

	return sum / float64(len(required)), nil
}
