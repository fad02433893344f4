package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// SupplierRepository implementa repository.SupplierRepository sobre SQLite.
type SupplierRepository struct {
	db Querier
}

// NewSupplierRepository crea el repositorio con la conexión o transacción dada.
func NewSupplierRepository(db Querier) *SupplierRepository {
	return &SupplierRepository{db: db}
}

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

func (r *SupplierRepository) Create(supplier *entity.Supplier) (domain.SupplierID, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(context.Background(),
		`INSERT INTO suppliers (name, phone, email, address, created_at) VALUES (?, ?, ?, ?, ?)`,
		supplier.Name, supplier.Phone, supplier.Email, supplier.Address, now)
	if err != nil {
		return 0, fmt.Errorf("crear proveedor: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("crear proveedor: %w", err)
	}
	supplier.ID = domain.SupplierID(id)
	supplier.CreatedAt = now
	return supplier.ID, nil
}

func (r *SupplierRepository) GetByID(id domain.SupplierID) (*entity.Supplier, error) {
	var s entity.Supplier
	var rawID int64
	err := r.db.QueryRowContext(context.Background(),
		`SELECT id, name, phone, email, address, created_at FROM suppliers WHERE id = ?`,
		int64(id)).Scan(&rawID, &s.Name, &s.Phone, &s.Email, &s.Address, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer proveedor: %w", err)
	}
	s.ID = domain.SupplierID(rawID)
	return &s, nil
}

func (r *SupplierRepository) List() ([]*entity.Supplier, error) {
	rows, err := r.db.QueryContext(context.Background(),
		`SELECT id, name, phone, email, address, created_at FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		var rawID int64
		if err := rows.Scan(&rawID, &s.Name, &s.Phone, &s.Email, &s.Address, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("leer proveedor: %w", err)
		}
		s.ID = domain.SupplierID(rawID)
		suppliers = append(suppliers, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	return suppliers, nil
}

func (r *SupplierRepository) Update(supplier *entity.Supplier) error {
	res, err := r.db.ExecContext(context.Background(),
		`UPDATE suppliers SET name = ?, phone = ?, email = ?, address = ? WHERE id = ?`,
		supplier.Name, supplier.Phone, supplier.Email, supplier.Address, int64(supplier.ID))
	if err != nil {
		return fmt.Errorf("actualizar proveedor: %w", err)
	}
	return requireAffected(res, "actualizar proveedor")
}

func (r *SupplierRepository) Delete(id domain.SupplierID) error {
	res, err := r.db.ExecContext(context.Background(),
		`DELETE FROM suppliers WHERE id = ?`, int64(id))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("eliminar proveedor: %w", err)
	}
	return requireAffected(res, "eliminar proveedor")
}

func (r *SupplierRepository) CountReferences(id domain.SupplierID) (int64, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE supplier_id = ?) +
			(SELECT COUNT(*) FROM stock_movements WHERE supplier_id = ?)`
	var count int64
	err := r.db.QueryRowContext(context.Background(), query, int64(id), int64(id)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar referencias de proveedor: %w", err)
	}
	return count, nil
}
