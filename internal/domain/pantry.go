package domain

import (
	"fmt"
	"strings"
)

// Pantry is a named stock of ingredients. Items maps an ingredient name to the
// amount on hand; ingredients not listed are treated as unavailable.
type Pantry struct {
	ID    string             `json:"_id,omitempty" mapstructure:"_id"`
	Name  string             `json:"name"          mapstructure:"name"`
	Items map[string]float64 `json:"items"         mapstructure:"items"`
}

// NewPantry creates a Pantry. A nil items map is replaced with an empty one.
// Returns an error if validation fails.
func NewPantry(name string, items map[string]float64) (*Pantry, error) {
	if items == nil {
		items = make(map[string]float64)
	}

	pantry := &Pantry{
		Name:  name,
		Items: items,
	}

	if err := pantry.Validate(); err != nil {
		return nil, err
	}

	return pantry, nil
}

// Validate checks that the pantry has a name and no negative amounts.
// An empty pantry is valid.
func (p *Pantry) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: pantry %w", ErrValidation, ErrEmptyName)
	}
	return ValidateAmounts(p.Items)
}

// Document converts the pantry into a persistable document.
func (p *Pantry) Document() map[string]any {
	items := make(map[string]any, len(p.Items))
	for name, amount := range p.Items {
		items[name] = amount
	}
	return map[string]any{
		"kind":  KindPantry,
		"name":  p.Name,
		"items": items,
	}
}

// PantryFromDocument decodes a stored document into a Pantry.
func PantryFromDocument(doc map[string]any) (*Pantry, error) {
	var pantry Pantry
	if err := decodeDocument(doc, &pantry); err != nil {
		return nil, err
	}
	if pantry.Items == nil {
		pantry.Items = make(map[string]float64)
	}
	if err := pantry.Validate(); err != nil {
		return nil, err
	}
	return &pantry, nil
}
