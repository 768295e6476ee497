package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas y el índice único si no existen. No hay motor
// de migraciones: el esquema es estable y se materializa al arranque.
// El índice sobre LOWER(name) es el respaldo durable de la unicidad
// case-insensitive; el FK de inventory_logs no cascadea (no existe borrado).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id       BIGSERIAL PRIMARY KEY,
			name     TEXT NOT NULL,
			unit     TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			brand    TEXT NOT NULL DEFAULT '',
			stock    INTEGER NOT NULL CHECK (stock >= 0),
			status   TEXT NOT NULL DEFAULT '',
			image    TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS products_name_ci_idx ON products (LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS inventory_logs (
			id         BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL REFERENCES products(id),
			old_stock  INTEGER NOT NULL,
			new_stock  INTEGER NOT NULL,
			changed_by TEXT NOT NULL,
			timestamp  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS inventory_logs_product_idx ON inventory_logs (product_id, timestamp DESC)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
