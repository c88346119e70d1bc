package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/pantry-api/internal/domain"
)

var errBadAmount = errors.New("expected name=amount")

// parseAmounts turns repeated name=amount flag values into a map. The last
// '=' separates name from amount, so names may contain '='. Names are kept
// case-sensitive; a name given twice is an error.
func parseAmounts(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		i := strings.LastIndex(pair, "=")
		if i < 0 {
			return nil, fmt.Errorf("%q: %w", pair, errBadAmount)
		}
		name := strings.TrimSpace(pair[:i])
		if name == "" {
			return nil, fmt.Errorf("%q: %w", pair, errBadAmount)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(pair[i+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: invalid amount: %w", pair, err)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("%q: duplicate ingredient %q", pair, name)
		}
		out[name] = amount
	}
	return out, nil
}

// parseDietFilter is stricter than domain.ParseDiet: an unknown label is an
// error instead of silently meaning "normal".
func parseDietFilter(text string) (*domain.Diet, error) {
	if text == "" {
		return nil, nil
	}
	diet := domain.Diet(strings.ToLower(text))
	if !diet.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDiet, text)
	}
	return &diet, nil
}
