package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/application/migration"
)

// MigrationRepository implementa migration.Repository: las operaciones únicas
// de conversión de datos heredados (centavos → decimales, IDs numéricos → UUID).
type MigrationRepository struct {
	db *sql.DB
}

// NewMigrationRepository crea el repositorio sobre la conexión raíz; las
// conversiones abren sus propias transacciones.
func NewMigrationRepository(db *sql.DB) *MigrationRepository {
	return &MigrationRepository{db: db}
}

var _ migration.Repository = (*MigrationRepository)(nil)

// Columnas monetarias del store, en el orden en que se convierten.
var centsConversions = []string{
	`UPDATE products SET price = ROUND(price / 100.0, %d), cost = ROUND(cost / 100.0, %d)`,
	`UPDATE bulk_pricing SET bulk_price = ROUND(bulk_price / 100.0, %d)`,
	`UPDATE stock_movements SET unit_cost = ROUND(unit_cost / 100.0, %d) WHERE unit_cost IS NOT NULL`,
	`UPDATE sales SET total = ROUND(total / 100.0, %d)`,
	`UPDATE sale_items SET price = ROUND(price / 100.0, %d), cost = ROUND(cost / 100.0, %d),
		discount = ROUND(discount / 100.0, %d), subtotal = ROUND(subtotal / 100.0, %d)`,
	`UPDATE customers SET total_spent = ROUND(total_spent / 100.0, %d)`,
}

func (r *MigrationRepository) SampleMonetaryValues(ctx context.Context, limit int) ([]decimal.Decimal, error) {
	query := `
		SELECT v FROM (
			SELECT price AS v FROM products WHERE price > 0 LIMIT ?
		)
		UNION ALL
		SELECT v FROM (
			SELECT cost AS v FROM products WHERE cost > 0 LIMIT ?
		)
		UNION ALL
		SELECT v FROM (
			SELECT total AS v FROM sales WHERE total > 0 LIMIT ?
		)`

	rows, err := r.db.QueryContext(ctx, query, limit, limit, limit)
	if err != nil {
		return nil, fmt.Errorf("muestrear columnas monetarias: %w", err)
	}
	defer rows.Close()

	var values []decimal.Decimal
	for rows.Next() {
		var v decimal.Decimal
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("leer muestra: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("muestrear columnas monetarias: %w", err)
	}
	return values, nil
}

func (r *MigrationRepository) ConvertCents(ctx context.Context, precision int32, alreadyDone func() (bool, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("abrir transacción de conversión: %w", err)
	}
	defer tx.Rollback()

	// Re-verificación con la transacción abierta: si otro arranque ya
	// convirtió, abortar sin tocar nada.
	done, err := alreadyDone()
	if err != nil {
		return fmt.Errorf("re-verificar estado: %w", err)
	}
	if done {
		return nil
	}

	for _, stmt := range centsConversions {
		query := fmtWithPrecision(stmt, precision)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("convertir columna monetaria: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("confirmar conversión: %w", err)
	}
	return nil
}

func (r *MigrationRepository) ListNumericCustomerIDs(ctx context.Context) ([]string, error) {
	return r.listNumericIDs(ctx, "customers")
}

func (r *MigrationRepository) ListNumericSaleIDs(ctx context.Context) ([]string, error) {
	return r.listNumericIDs(ctx, "sales")
}

// listNumericIDs devuelve los IDs compuestos solo por dígitos (heredados de
// cuando la tabla usaba claves numéricas autogeneradas).
func (r *MigrationRepository) listNumericIDs(ctx context.Context, table string) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT id FROM %s WHERE id GLOB '[0-9]*' AND NOT id GLOB '*[^0-9]*'`, table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar IDs numéricos de %s: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("leer ID de %s: %w", table, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar IDs numéricos de %s: %w", table, err)
	}
	return ids, nil
}

func (r *MigrationRepository) RewriteIdentifiers(ctx context.Context, customers, sales map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("abrir transacción de reescritura: %w", err)
	}
	defer tx.Rollback()

	// Las FKs se verifican al COMMIT: entre el UPDATE del padre y el de las
	// referencias habría violaciones transitorias.
	if _, err := tx.ExecContext(ctx, `PRAGMA defer_foreign_keys = ON`); err != nil {
		return fmt.Errorf("diferir claves foráneas: %w", err)
	}

	for old, fresh := range customers {
		if _, err := tx.ExecContext(ctx,
			`UPDATE customers SET id = ? WHERE id = ?`, fresh, old); err != nil {
			return fmt.Errorf("reescribir cliente %s: %w", old, err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE sales SET customer_id = ? WHERE customer_id = ?`, fresh, old); err != nil {
			return fmt.Errorf("reescribir ventas del cliente %s: %w", old, err)
		}
	}
	for old, fresh := range sales {
		if _, err := tx.ExecContext(ctx,
			`UPDATE sales SET id = ? WHERE id = ?`, fresh, old); err != nil {
			return fmt.Errorf("reescribir venta %s: %w", old, err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE sale_items SET sale_id = ? WHERE sale_id = ?`, fresh, old); err != nil {
			return fmt.Errorf("reescribir líneas de la venta %s: %w", old, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("confirmar reescritura: %w", err)
	}
	return nil
}

// fmtWithPrecision reemplaza cada %d del statement por la precisión de redondeo.
func fmtWithPrecision(stmt string, precision int32) string {
	return strings.ReplaceAll(stmt, "%d", strconv.Itoa(int(precision)))
}
