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

// SaleRepository implementa repository.SaleRepository sobre SQLite.
// Las ventas son inmutables: solo INSERT y lecturas.
type SaleRepository struct {
	db Querier
}

// NewSaleRepository crea el repositorio con la conexión o transacción dada.
func NewSaleRepository(db Querier) *SaleRepository {
	return &SaleRepository{db: db}
}

var _ repository.SaleRepository = (*SaleRepository)(nil)

func (r *SaleRepository) Create(sale *entity.Sale) error {
	var customerID any
	if sale.CustomerID != nil {
		customerID = sale.CustomerID.String()
	}
	_, err := r.db.ExecContext(context.Background(),
		`INSERT INTO sales (id, customer_id, total, payment_method, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sale.ID.String(), customerID, sale.Total, sale.PaymentMethod, sale.Note, sale.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("crear venta: %w", err)
	}
	return nil
}

func (r *SaleRepository) CreateItem(item *entity.SaleItem) error {
	res, err := r.db.ExecContext(context.Background(),
		`INSERT INTO sale_items (sale_id, product_id, quantity, price, cost, discount, subtotal)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.SaleID.String(), int64(item.ProductID), item.Quantity,
		item.Price, item.Cost, item.Discount, item.Subtotal)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("crear línea de venta: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("crear línea de venta: %w", err)
	}
	item.ID = id
	return nil
}

func (r *SaleRepository) GetByID(id domain.SaleID) (*entity.Sale, []*entity.SaleItem, error) {
	row := r.db.QueryRowContext(context.Background(),
		`SELECT id, customer_id, total, payment_method, note, created_at FROM sales WHERE id = ?`,
		id.String())
	sale, err := scanSale(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("leer venta: %w", err)
	}

	rows, err := r.db.QueryContext(context.Background(),
		`SELECT id, sale_id, product_id, quantity, price, cost, discount, subtotal
		 FROM sale_items WHERE sale_id = ? ORDER BY id`,
		id.String())
	if err != nil {
		return nil, nil, fmt.Errorf("leer líneas de venta: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var (
			it        entity.SaleItem
			saleID    string
			productID int64
		)
		err := rows.Scan(&it.ID, &saleID, &productID, &it.Quantity,
			&it.Price, &it.Cost, &it.Discount, &it.Subtotal)
		if err != nil {
			return nil, nil, fmt.Errorf("leer línea de venta: %w", err)
		}
		it.SaleID = domain.SaleID(saleID)
		it.ProductID = domain.ProductID(productID)
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("leer líneas de venta: %w", err)
	}
	return sale, items, nil
}

func (r *SaleRepository) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT id, customer_id, total, payment_method, note, created_at FROM sales`
	var (
		conditions []string
		args       []any
	)
	if from != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, from.UTC())
	}
	if to != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, to.UTC())
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("leer venta: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	return sales, nil
}

func (r *SaleRepository) CountItemsByProduct(productID domain.ProductID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sale_items WHERE product_id = ?`, int64(productID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar líneas por producto: %w", err)
	}
	return count, nil
}

func (r *SaleRepository) CountByCustomer(customerID domain.CustomerID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sales WHERE customer_id = ?`, customerID.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar ventas por cliente: %w", err)
	}
	return count, nil
}

func scanSale(scan func(dest ...any) error) (*entity.Sale, error) {
	var (
		s          entity.Sale
		id         string
		customerID sql.NullString
	)
	err := scan(&id, &customerID, &s.Total, &s.PaymentMethod, &s.Note, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.ID = domain.SaleID(id)
	if customerID.Valid {
		cid := domain.CustomerID(customerID.String)
		s.CustomerID = &cid
	}
	return &s, nil
}
