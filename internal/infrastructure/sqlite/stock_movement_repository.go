package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// StockMovementRepository implementa el ledger append-only de inventario.
// No expone Update ni Delete: las correcciones son movimientos nuevos.
type StockMovementRepository struct {
	db Querier
}

// NewStockMovementRepository crea el repositorio con la conexión o transacción dada.
func NewStockMovementRepository(db Querier) *StockMovementRepository {
	return &StockMovementRepository{db: db}
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

func (r *StockMovementRepository) Create(movement *entity.StockMovement) (domain.MovementID, error) {
	createdAt := movement.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var unitCost any
	if movement.UnitCost != nil {
		unitCost = *movement.UnitCost
	}

	res, err := r.db.ExecContext(context.Background(),
		`INSERT INTO stock_movements (product_id, type, quantity, unit_cost, note, supplier_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		int64(movement.ProductID), movement.Type, movement.Quantity,
		unitCost, movement.Note, nullableSupplierID(movement.SupplierID), createdAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("registrar movimiento: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("registrar movimiento: %w", err)
	}
	movement.ID = domain.MovementID(id)
	movement.CreatedAt = createdAt
	return movement.ID, nil
}

func (r *StockMovementRepository) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.ProductID != nil {
		conditions = append(conditions, "product_id = ?")
		args = append(args, int64(*filter.ProductID))
	}
	if filter.Type != nil {
		conditions = append(conditions, "type = ?")
		args = append(args, *filter.Type)
	}
	if filter.SupplierID != nil {
		conditions = append(conditions, "supplier_id = ?")
		args = append(args, int64(*filter.SupplierID))
	}
	if filter.From != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, filter.To.UTC())
	}

	query := `SELECT id, product_id, type, quantity, unit_cost, note, supplier_id, created_at
		FROM stock_movements`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id DESC"

	return r.query(query, args...)
}

func (r *StockMovementRepository) ListStockIn(productID domain.ProductID) ([]*entity.StockMovement, error) {
	query := `SELECT id, product_id, type, quantity, unit_cost, note, supplier_id, created_at
		FROM stock_movements
		WHERE product_id = ? AND type = ?
		ORDER BY id`
	return r.query(query, int64(productID), entity.MovementTypeStockIn)
}

func (r *StockMovementRepository) CountByProduct(productID domain.ProductID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM stock_movements WHERE product_id = ?`, int64(productID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar movimientos: %w", err)
	}
	return count, nil
}

func (r *StockMovementRepository) query(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var (
			m          entity.StockMovement
			id         int64
			productID  int64
			unitCost   decimal.NullDecimal
			supplierID sql.NullInt64
		)
		err := rows.Scan(&id, &productID, &m.Type, &m.Quantity, &unitCost,
			&m.Note, &supplierID, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("leer movimiento: %w", err)
		}
		m.ID = domain.MovementID(id)
		m.ProductID = domain.ProductID(productID)
		if unitCost.Valid {
			cost := unitCost.Decimal
			m.UnitCost = &cost
		}
		if supplierID.Valid {
			sid := domain.SupplierID(supplierID.Int64)
			m.SupplierID = &sid
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	return movements, nil
}
