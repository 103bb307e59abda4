package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/period"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// isInvalidText detecta un valor que PostgreSQL no puede convertir al tipo de la columna (22P02),
// por ejemplo un id que no es UUID.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02"
	}
	return false
}

// appendRange agrega los filtros de fecha de r a query (que ya debe tener WHERE) y sus args.
func appendRange(query string, args []any, column string, r period.Range) (string, []any) {
	if r.From != nil {
		args = append(args, *r.From)
		query += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if r.To != nil {
		args = append(args, *r.To)
		query += fmt.Sprintf(" AND %s <= $%d", column, len(args))
	}
	return query, args
}
