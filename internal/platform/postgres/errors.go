package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tango-api/internal/store"
)

// SQLSTATE codes for integrity constraint violations.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// MapError wraps sql.ErrNoRows and constraint violations in store sentinels.
// Unrecognized errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		}
	}

	return err
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// Foreign keys on the answers table, named by PostgreSQL's default convention.
const (
	answersLearnerFK = "answers_learner_id_fkey"
	answersItemFK    = "answers_item_id_fkey"
)

// mapAnswerReferenceError turns a foreign key violation on answers into the
// not-found sentinel for the missing row. Other errors go through MapError.
func mapAnswerReferenceError(err error) error {
	var pgErr *pgconn.PgError
	if !IsForeignKeyViolation(err) || !errors.As(err, &pgErr) {
		return MapError(err)
	}
	switch pgErr.ConstraintName {
	case answersItemFK:
		return fmt.Errorf("%w: %v", store.ErrItemNotFound, err)
	case answersLearnerFK:
		return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
	}
	return MapError(err)
}

// CheckRowsAffected returns a not-found error naming entityName when an
// UPDATE matched no rows.
func CheckRowsAffected(result sql.Result, entityName string) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if entityName == "" {
			return store.ErrNotFound
		}
		return fmt.Errorf("%w: %s not found", store.ErrNotFound, entityName)
	}

	return nil
}

// mapEntityError maps err and replaces a generic not-found with the given
// entity-specific sentinel.
func mapEntityError(err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return MapError(err)
}
