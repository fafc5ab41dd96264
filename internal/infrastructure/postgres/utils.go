package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que los repositorios traducen a errores de dominio.
const (
	codeUniqueViolation = "23505" // sku duplicado
	codeCheckViolation  = "23514" // items_stock_check: stock >= 0
)

// sqlState devuelve el código SQLSTATE de err, "" si no viene de Postgres.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return sqlState(err) == codeUniqueViolation }

func isCheckViolation(err error) bool { return sqlState(err) == codeCheckViolation }
