package readiness

import "sort"

// IngredientScore is the readiness of one recipe ingredient.
type IngredientScore struct {
	Name      string  `json:"name"`
	Required  float64 `json:"required"`
	Available float64 `json:"available"`
	Ratio     float64 `json:"ratio"`
}

// Shortfall is the amount still needed to fully cover an ingredient.
func (s IngredientScore) Shortfall() float64 {
	if s.Available >= s.Required {
		return 0
	}
	return s.Required - s.Available
}

// Report is the full readiness breakdown of a recipe against a pantry.
type Report struct {
	// Score is the recipe readiness, identical to RecipeReadiness.
	Score float64 `json:"score"`

	// Ingredients holds every required ingredient, sorted by name.
	Ingredients []IngredientScore `json:"ingredients"`

	// Missing holds the ingredients whose available amount is below the
	// required amount, sorted by name.
	Missing []IngredientScore `json:"missing"`
}

// Ready reports whether every ingredient is fully covered, that is whether
// Missing is empty. It is a coverage check, not a threshold on Score: an
// ingredient required in amount zero is always covered, yet its ratio counts
// as 0 toward Score. A recipe of only zero requirements is Ready with Score 0.
func (r *Report) Ready() bool {
	return len(r.Missing) == 0
}

// Evaluate builds a Report for required against available.
// Returns ErrEmptyRecipe if required is empty.
func Evaluate(required, available map[string]float64) (*Report, error) {
	score, err := RecipeReadiness(required, available)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &Report{
		Score:       score,
		Ingredients: make([]IngredientScore, 0, len(names)),
		Missing:     []IngredientScore{},
	}

	for _, name := range names {
		entry := IngredientScore{
			Name:      name,
			Required:  required[name],
			Available: available[name],
			Ratio:     IngredientReadiness(available[name], required[name]),
		}
		report.Ingredients = append(report.Ingredients, entry)
		if entry.Shortfall() > 0 {
			report.Missing = append(report.Missing, entry)
		}
	}

	return report, nil
}
