package domain

import "context"

type DrinkService interface {
	ListDrinks(ctx context.Context) ([]Drink, error)
	GetDrink(ctx context.Context, id DrinkID) (Drink, error)
	CreateDrink(ctx context.Context, input CreateDrinkInput) (Drink, error)
	UpdateDrink(ctx context.Context, id DrinkID, input UpdateDrinkInput) (Drink, error)
	DeleteDrink(ctx context.Context, id DrinkID) error
}
