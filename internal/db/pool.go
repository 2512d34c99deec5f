package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Flarenzy/coffee-shop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// DBTX is the subset of pgx shared by pools, connections and transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Reset drops every table, recreates the schema and inserts the sample drink.
func Reset(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS drinks"); err != nil {
			return fmt.Errorf("drop drinks: %w", err)
		}
		if err := Migrate(ctx, tx); err != nil {
			return err
		}
		return Seed(ctx, tx)
	})
}

func Seed(ctx context.Context, db DBTX) error {
	recipe, err := json.Marshal(domain.Recipe{{Name: "water", Color: "blue", Parts: 1}})
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx,
		"INSERT INTO drinks (title, recipe) VALUES ($1, $2) ON CONFLICT (title) DO NOTHING",
		"water", string(recipe),
	)
	if err != nil {
		return fmt.Errorf("seed drinks: %w", err)
	}
	return nil
}
