package postgres

import (
	"context"
	"fmt"
)

// schemaStatements crea las tablas si no existen. items.stock se mantiene dentro de la
// misma transacción que inserta cada movimiento.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		sku         TEXT NOT NULL UNIQUE,
		unit        TEXT NOT NULL,
		stock       BIGINT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		inserted_at TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id            BIGSERIAL PRIMARY KEY,
		item_id       BIGINT NOT NULL REFERENCES items(id),
		quantity      BIGINT NOT NULL,
		movement_type TEXT NOT NULL CHECK (movement_type IN ('IN', 'OUT', 'ADJUSTMENT')),
		inserted_at   TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS movements_item_id_inserted_at_idx ON movements (item_id, inserted_at DESC)`,
}

// EnsureSchema aplica el esquema mínimo de forma idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	for _, stmt := range schemaStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return nil
}
