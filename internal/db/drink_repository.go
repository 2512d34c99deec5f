package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Flarenzy/coffee-shop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation       = "23505"
	uniqueTitleConstraint = "unique_drink_title"
)

type DrinkRepository struct {
	db DBTX
}

func NewDrinkRepository(db DBTX) *DrinkRepository {
	return &DrinkRepository{db: db}
}

func (r *DrinkRepository) List(ctx context.Context) ([]domain.Drink, error) {
	rows, err := r.db.Query(ctx, "SELECT id, title, recipe FROM drinks ORDER BY id")
	if err != nil {
		return nil, err
	}

	drinks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Drink, error) {
		return scanDrink(row)
	})
	if err != nil {
		return nil, err
	}
	return drinks, nil
}

func (r *DrinkRepository) FindByID(ctx context.Context, id domain.DrinkID) (domain.Drink, error) {
	row := r.db.QueryRow(ctx, "SELECT id, title, recipe FROM drinks WHERE id = $1", int64(id))
	drink, err := scanDrink(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Drink{}, domain.ErrNotFound
		}
		return domain.Drink{}, err
	}
	return drink, nil
}

func (r *DrinkRepository) Create(ctx context.Context, input domain.CreateDrinkInput) (domain.Drink, error) {
	recipe, err := encodeRecipe(input.Recipe)
	if err != nil {
		return domain.Drink{}, err
	}

	row := r.db.QueryRow(ctx,
		"INSERT INTO drinks (title, recipe) VALUES ($1, $2) RETURNING id, title, recipe",
		input.Title, recipe,
	)
	drink, err := scanDrink(row)
	if err != nil {
		if isUniqueTitleViolation(err) {
			return domain.Drink{}, fmt.Errorf("%w: drink %q already exists", domain.ErrConflict, input.Title)
		}
		return domain.Drink{}, err
	}
	return drink, nil
}

func (r *DrinkRepository) Update(ctx context.Context, drink domain.Drink) (domain.Drink, error) {
	recipe, err := encodeRecipe(drink.Recipe)
	if err != nil {
		return domain.Drink{}, err
	}

	row := r.db.QueryRow(ctx,
		"UPDATE drinks SET title = $2, recipe = $3 WHERE id = $1 RETURNING id, title, recipe",
		int64(drink.ID), drink.Title, recipe,
	)
	updated, err := scanDrink(row)
	if err != nil {
		switch {
		case isNoRows(err):
			return domain.Drink{}, domain.ErrNotFound
		case isUniqueTitleViolation(err):
			return domain.Drink{}, fmt.Errorf("%w: drink %q already exists", domain.ErrConflict, drink.Title)
		}
		return domain.Drink{}, err
	}
	return updated, nil
}

func (r *DrinkRepository) Delete(ctx context.Context, id domain.DrinkID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM drinks WHERE id = $1", int64(id))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanDrink(row pgx.Row) (domain.Drink, error) {
	var (
		id     int64
		title  string
		recipe string
	)
	if err := row.Scan(&id, &title, &recipe); err != nil {
		return domain.Drink{}, err
	}

	var parsed domain.Recipe
	if err := json.Unmarshal([]byte(recipe), &parsed); err != nil {
		return domain.Drink{}, fmt.Errorf("decode recipe of drink %d: %w", id, err)
	}

	return domain.Drink{
		ID:     domain.DrinkID(id),
		Title:  title,
		Recipe: parsed,
	}, nil
}

func encodeRecipe(recipe domain.Recipe) (string, error) {
	raw, err := json.Marshal(recipe)
	if err != nil {
		return "", fmt.Errorf("encode recipe: %w", err)
	}
	return string(raw), nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueTitleViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == uniqueTitleConstraint
}
