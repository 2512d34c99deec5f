package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxTitleLength = 80

// titleRules must agree with the title tag on CreateDrinkInput.
var titleRules = fmt.Sprintf("required,max=%d", maxTitleLength)

type drinkService struct {
	drinks   DrinkRepository
	validate *validator.Validate
}

func NewDrinkService(drinks DrinkRepository) DrinkService {
	return &drinkService{
		drinks:   drinks,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *drinkService) ListDrinks(ctx context.Context) ([]Drink, error) {
	return s.drinks.List(ctx)
}

func (s *drinkService) GetDrink(ctx context.Context, id DrinkID) (Drink, error) {
	return s.drinks.FindByID(ctx, id)
}

func (s *drinkService) CreateDrink(ctx context.Context, input CreateDrinkInput) (Drink, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := s.validate.StructCtx(ctx, input); err != nil {
		return Drink{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.drinks.Create(ctx, input)
}

func (s *drinkService) UpdateDrink(ctx context.Context, id DrinkID, input UpdateDrinkInput) (Drink, error) {
	drink, err := s.drinks.FindByID(ctx, id)
	if err != nil {
		return Drink{}, err
	}
	if input.Empty() {
		return drink, nil
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := s.validate.VarCtx(ctx, title, titleRules); err != nil {
			return Drink{}, fmt.Errorf("%w: title must be 1 to %d characters", ErrInvalidInput, maxTitleLength)
		}
		drink.Title = title
	}

	if input.Recipe != nil {
		if err := s.validateRecipe(ctx, *input.Recipe); err != nil {
			return Drink{}, err
		}
		drink.Recipe = *input.Recipe
	}

	return s.drinks.Update(ctx, drink)
}

func (s *drinkService) DeleteDrink(ctx context.Context, id DrinkID) error {
	deleted, err := s.drinks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *drinkService) validateRecipe(ctx context.Context, recipe Recipe) error {
	if len(recipe) == 0 {
		return fmt.Errorf("%w: recipe needs at least one ingredient", ErrInvalidInput)
	}
	for i, ingredient := range recipe {
		if err := s.validate.StructCtx(ctx, ingredient); err != nil {
			return fmt.Errorf("%w: ingredient %d: %v", ErrInvalidInput, i, err)
		}
	}
	return nil
}
