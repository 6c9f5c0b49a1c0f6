package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"food-delivery/internal/models"
)

// PostgreSQL error codes translated into domain errors
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	numericOutOfRange   = "22003"
)

var tables = []string{"delivery_personnel", "order_table", "order_item", "menu_item", "restaurant", "customer"}

// TranslateError maps driver errors onto domain errors so callers can use
// errors.Is / errors.As without knowing about pgx. Other errors pass through.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation:
		return fmt.Errorf("%w: %s already exists", models.ErrConflict, columnFromConstraint(pgErr.ConstraintName, "_key"))
	case foreignKeyViolation:
		return models.ValidationError{
			Field:   columnFromConstraint(pgErr.ConstraintName, "_fkey"),
			Message: "referenced record does not exist",
		}
	case numericOutOfRange:
		field := pgErr.ColumnName
		if field == "" {
			field = "value"
		}
		return models.ValidationError{Field: field, Message: "value is out of range"}
	case checkViolation:
		return models.ValidationError{
			Field:   columnFromConstraint(pgErr.ConstraintName, "_check"),
			Message: "value is out of range",
		}
	}
	return err
}

// columnFromConstraint turns a default constraint name such as
// order_table_customer_id_fkey into the column name customer_id
func columnFromConstraint(name, suffix string) string {
	column := strings.TrimSuffix(name, suffix)
	for _, table := range tables {
		if strings.HasPrefix(column, table+"_") {
			return strings.TrimPrefix(column, table+"_")
		}
	}
	if column == "" {
		return "record"
	}
	return column
}
