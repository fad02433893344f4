package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/tu-usuario/caja-pro/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea.
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

// requireAffected traduce "cero filas afectadas" a ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// nullableString convierte cadena vacía a NULL (columnas opcionales con UNIQUE).
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableCategoryID convierte el puntero de ID a valor SQL o NULL.
func nullableCategoryID(id *domain.CategoryID) any {
	if id == nil {
		return nil
	}
	return int64(*id)
}

// nullableSupplierID convierte el puntero de ID a valor SQL o NULL.
func nullableSupplierID(id *domain.SupplierID) any {
	if id == nil {
		return nil
	}
	return int64(*id)
}
