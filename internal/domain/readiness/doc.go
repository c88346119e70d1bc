// Package readiness scores how much of a recipe can be cooked from a pantry.
//
// Scores are availability ratios. An ingredient's ratio is the available
// amount divided by the required amount; a recipe's score is the arithmetic
// mean of its ingredient ratios. Ratios are not capped, so over-supplied
// ingredients can push a recipe above 1.
//
// All functions are pure and safe for concurrent use.
package readiness
