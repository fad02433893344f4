package sqlite

import (
	"database/sql"
	"fmt"
)

// Sentencias DDL del esquema. Todas idempotentes: seguras en cada arranque,
// nunca destruyen datos. Este paquete es el único dueño del DDL.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		category_id INTEGER REFERENCES categories(id),
		barcode     TEXT UNIQUE,
		price       NUMERIC NOT NULL DEFAULT 0,
		cost        NUMERIC NOT NULL DEFAULT 0,
		quantity    INTEGER NOT NULL DEFAULT 0,
		min_stock   INTEGER NOT NULL DEFAULT 0,
		supplier_id INTEGER REFERENCES suppliers(id),
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bulk_pricing (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id   INTEGER NOT NULL REFERENCES products(id),
		min_quantity INTEGER NOT NULL,
		bulk_price   NUMERIC NOT NULL,
		created_at   DATETIME NOT NULL,
		UNIQUE(product_id, min_quantity)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_movements (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id  INTEGER NOT NULL REFERENCES products(id),
		type        TEXT NOT NULL CHECK(type IN ('stock_in','stock_out','adjustment')),
		quantity    INTEGER NOT NULL,
		unit_cost   NUMERIC,
		note        TEXT NOT NULL DEFAULT '',
		supplier_id INTEGER REFERENCES suppliers(id),
		created_at  DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		phone       TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		address     TEXT NOT NULL DEFAULT '',
		total_spent NUMERIC NOT NULL DEFAULT 0,
		visit_count INTEGER NOT NULL DEFAULT 0,
		created_at  DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id             TEXT PRIMARY KEY,
		customer_id    TEXT REFERENCES customers(id),
		total          NUMERIC NOT NULL,
		payment_method TEXT NOT NULL DEFAULT '',
		note           TEXT NOT NULL DEFAULT '',
		created_at     DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sale_items (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		sale_id    TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
		product_id INTEGER NOT NULL REFERENCES products(id),
		quantity   INTEGER NOT NULL,
		price      NUMERIC NOT NULL,
		cost       NUMERIC NOT NULL,
		discount   NUMERIC NOT NULL DEFAULT 0,
		subtotal   NUMERIC NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_movements_product ON stock_movements(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(sale_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at)`,
}

// Columnas agregadas después de la primera versión del esquema: se rellenan
// en instalaciones viejas con ALTER TABLE aditivo.
var columnBackfills = []struct {
	table  string
	column string
	decl   string
}{
	{"products", "barcode", "TEXT"},
	{"products", "min_stock", "INTEGER NOT NULL DEFAULT 0"},
	{"products", "supplier_id", "INTEGER REFERENCES suppliers(id)"},
	{"stock_movements", "supplier_id", "INTEGER REFERENCES suppliers(id)"},
	{"sales", "note", "TEXT NOT NULL DEFAULT ''"},
}

// EnsureSchema crea las tablas que falten y rellena columnas nuevas. Debe
// correr antes de que cualquier otro componente toque el store.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	for _, b := range columnBackfills {
		if err := ensureColumn(db, b.table, b.column, b.decl); err != nil {
			return err
		}
	}
	return nil
}

// ensureColumn agrega la columna si la tabla aún no la tiene.
func ensureColumn(db *sql.DB, table, column, decl string) error {
	rows, err := db.Query(fmt.Sprintf(`PRAGMA table_info(%s)`, table))
	if err != nil {
		return fmt.Errorf("inspeccionar %s: %w", table, err)
	}
	defer rows.Close()

	exists := false
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("leer columnas de %s: %w", table, err)
		}
		if name == column {
			exists = true
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, decl))
	if err != nil {
		return fmt.Errorf("agregar %s.%s: %w", table, column, err)
	}
	return nil
}
