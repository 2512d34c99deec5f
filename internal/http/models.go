package http

import "github.com/Flarenzy/coffee-shop/internal/domain"

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Success     bool   `json:"success" example:"false"`
	Error       int    `json:"error" example:"401"`
	Message     string `json:"message" example:"token_expired"`
	Description string `json:"description,omitempty" example:"Token expired."`
}

// IngredientShort is the public view of an ingredient: proportions only.
type IngredientShort struct {
	Color string `json:"color" example:"brown"`
	Parts int    `json:"parts" example:"1"`
}

type Ingredient struct {
	Name  string `json:"name" example:"coffee"`
	Color string `json:"color" example:"brown"`
	Parts int    `json:"parts" example:"1"`
}

type DrinkShort struct {
	ID     int64             `json:"id" example:"1"`
	Title  string            `json:"title" example:"flat white"`
	Recipe []IngredientShort `json:"recipe"`
}

type DrinkLong struct {
	ID     int64        `json:"id" example:"1"`
	Title  string       `json:"title" example:"flat white"`
	Recipe []Ingredient `json:"recipe"`
}

type DrinksShortResponse struct {
	Success bool         `json:"success" example:"true"`
	Drinks  []DrinkShort `json:"drinks"`
}

type DrinksLongResponse struct {
	Success bool        `json:"success" example:"true"`
	Drinks  []DrinkLong `json:"drinks"`
}

type DeleteDrinkResponse struct {
	Success bool  `json:"success" example:"true"`
	Delete  int64 `json:"delete" example:"1"`
}

// CreateDrinkRequest is the payload accepted when creating a drink. Recipe
// may be a single ingredient object or an array.
type CreateDrinkRequest struct {
	Title  string        `json:"title" example:"flat white"`
	Recipe domain.Recipe `json:"recipe" swaggertype:"array,object"`
}

// UpdateDrinkRequest is the payload accepted when updating a drink. Omitted
// fields are left unchanged.
type UpdateDrinkRequest struct {
	Title  *string        `json:"title,omitempty" example:"cortado"`
	Recipe *domain.Recipe `json:"recipe,omitempty" swaggertype:"array,object"`
}

func (r CreateDrinkRequest) toInput() domain.CreateDrinkInput {
	return domain.CreateDrinkInput{
		Title:  r.Title,
		Recipe: r.Recipe,
	}
}

func (r UpdateDrinkRequest) toInput() domain.UpdateDrinkInput {
	return domain.UpdateDrinkInput{
		Title:  r.Title,
		Recipe: r.Recipe,
	}
}

func drinkToShort(d domain.Drink) DrinkShort {
	recipe := make([]IngredientShort, 0, len(d.Recipe))
	for _, ingredient := range d.Recipe {
		recipe = append(recipe, IngredientShort{Color: ingredient.Color, Parts: ingredient.Parts})
	}
	return DrinkShort{
		ID:     int64(d.ID),
		Title:  d.Title,
		Recipe: recipe,
	}
}

func drinkToLong(d domain.Drink) DrinkLong {
	recipe := make([]Ingredient, 0, len(d.Recipe))
	for _, ingredient := range d.Recipe {
		recipe = append(recipe, Ingredient(ingredient))
	}
	return DrinkLong{
		ID:     int64(d.ID),
		Title:  d.Title,
		Recipe: recipe,
	}
}

func drinksToShort(drinks []domain.Drink) []DrinkShort {
	out := make([]DrinkShort, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, drinkToShort(d))
	}
	return out
}

func drinksToLong(drinks []domain.Drink) []DrinkLong {
	out := make([]DrinkLong, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, drinkToLong(d))
	}
	return out
}
