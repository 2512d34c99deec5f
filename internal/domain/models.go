package domain

import (
	"bytes"
	"encoding/json"
)

type DrinkID int64

type Drink struct {
	ID     DrinkID
	Title  string
	Recipe Recipe
}

type Ingredient struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
	Parts int    `json:"parts" validate:"min=1"`
}

// Recipe is the ordered ingredient list of a drink. Its JSON form is an
// array, but a single ingredient object is accepted on input.
type Recipe []Ingredient

func (r *Recipe) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("{")) {
		var one Ingredient
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*r = Recipe{one}
		return nil
	}

	var many []Ingredient
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = many
	return nil
}
