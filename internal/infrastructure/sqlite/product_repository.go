package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// ProductRepository implementa repository.ProductRepository sobre SQLite.
type ProductRepository struct {
	db Querier
}

// NewProductRepository crea el repositorio con la conexión o transacción dada.
func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

const productColumns = `id, name, category_id, COALESCE(barcode, ''), price, cost,
	quantity, min_stock, supplier_id, created_at, updated_at`

func (r *ProductRepository) Create(product *entity.Product) (domain.ProductID, error) {
	query := `
		INSERT INTO products (name, category_id, barcode, price, cost, quantity, min_stock, supplier_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	res, err := r.db.ExecContext(context.Background(), query,
		product.Name,
		nullableCategoryID(product.CategoryID),
		nullableString(product.Barcode),
		product.Price,
		product.Cost,
		product.Quantity,
		product.MinStock,
		nullableSupplierID(product.SupplierID),
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("crear producto: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("crear producto: %w", err)
	}
	product.ID = domain.ProductID(id)
	product.CreatedAt = now
	product.UpdatedAt = now
	return product.ID, nil
}

func (r *ProductRepository) GetByID(id domain.ProductID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(context.Background(), query, int64(id)))
}

func (r *ProductRepository) GetByBarcode(barcode string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE barcode = ?`
	return r.scanOne(r.db.QueryRowContext(context.Background(), query, barcode))
}

func (r *ProductRepository) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = ?, category_id = ?, barcode = ?, price = ?, min_stock = ?, supplier_id = ?, updated_at = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(context.Background(), query,
		product.Name,
		nullableCategoryID(product.CategoryID),
		nullableString(product.Barcode),
		product.Price,
		product.MinStock,
		nullableSupplierID(product.SupplierID),
		time.Now().UTC(),
		int64(product.ID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("actualizar producto: %w", err)
	}
	return requireAffected(res, "actualizar producto")
}

func (r *ProductRepository) UpdateCost(id domain.ProductID, cost decimal.Decimal) error {
	query := `UPDATE products SET cost = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(context.Background(), query, cost, time.Now().UTC(), int64(id))
	if err != nil {
		return fmt.Errorf("actualizar costo: %w", err)
	}
	return requireAffected(res, "actualizar costo")
}

// AdjustQuantity aplica el delta solo si el resultado no queda negativo:
// la guarda va en el WHERE para que sea atómica en el propio UPDATE.
func (r *ProductRepository) AdjustQuantity(id domain.ProductID, delta int64) error {
	query := `
		UPDATE products
		SET quantity = quantity + ?, updated_at = ?
		WHERE id = ? AND quantity + ? >= 0`

	res, err := r.db.ExecContext(context.Background(), query, delta, time.Now().UTC(), int64(id), delta)
	if err != nil {
		return fmt.Errorf("ajustar cantidad: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ajustar cantidad: %w", err)
	}
	if affected == 0 {
		existing, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *ProductRepository) ListLowStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity <= min_stock ORDER BY quantity, name`
	rows, err := r.db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listar stock bajo: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *ProductRepository) Delete(id domain.ProductID) error {
	res, err := r.db.ExecContext(context.Background(), `DELETE FROM products WHERE id = ?`, int64(id))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("eliminar producto: %w", err)
	}
	return requireAffected(res, "eliminar producto")
}

func (r *ProductRepository) scanOne(row *sql.Row) (*entity.Product, error) {
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer producto: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) scanAll(rows *sql.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("leer producto: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leer productos: %w", err)
	}
	return products, nil
}

func scanProduct(scan func(dest ...any) error) (*entity.Product, error) {
	var (
		p          entity.Product
		id         int64
		categoryID sql.NullInt64
		supplierID sql.NullInt64
	)
	err := scan(&id, &p.Name, &categoryID, &p.Barcode, &p.Price, &p.Cost,
		&p.Quantity, &p.MinStock, &supplierID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.ID = domain.ProductID(id)
	if categoryID.Valid {
		cid := domain.CategoryID(categoryID.Int64)
		p.CategoryID = &cid
	}
	if supplierID.Valid {
		sid := domain.SupplierID(supplierID.Int64)
		p.SupplierID = &sid
	}
	return &p, nil
}
