// Package sqlite implementa la persistencia del motor sobre SQLite embebido
// (un solo proceso, un solo escritor, archivo local).
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open abre (o crea) la base en la ruta dada y aplica los pragmas requeridos:
// WAL para lecturas concurrentes durante escrituras, claves foráneas activas
// y espera ante SQLITE_BUSY. El pool queda limitado a UNA conexión: SQLite
// solo admite un escritor y así se evitan errores de bloqueo.
func Open(path string, busyTimeoutMS int) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir base: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping base: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMS),
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("aplicar %q: %w", pragma, err)
		}
	}
	return db, nil
}
