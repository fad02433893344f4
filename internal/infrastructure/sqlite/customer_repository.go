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

// CustomerRepository implementa repository.CustomerRepository sobre SQLite.
type CustomerRepository struct {
	db Querier
}

// NewCustomerRepository crea el repositorio con la conexión o transacción dada.
func NewCustomerRepository(db Querier) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

const customerColumns = `id, name, phone, email, address, total_spent, visit_count, created_at`

func (r *CustomerRepository) Create(customer *entity.Customer) error {
	createdAt := customer.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(context.Background(),
		`INSERT INTO customers (id, name, phone, email, address, total_spent, visit_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID.String(), customer.Name, customer.Phone, customer.Email,
		customer.Address, customer.TotalSpent, customer.VisitCount, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("crear cliente: %w", err)
	}
	customer.CreatedAt = createdAt
	return nil
}

func (r *CustomerRepository) GetByID(id domain.CustomerID) (*entity.Customer, error) {
	row := r.db.QueryRowContext(context.Background(),
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`, id.String())
	c, err := scanCustomer(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer cliente: %w", err)
	}
	return c, nil
}

func (r *CustomerRepository) List(limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.db.QueryContext(context.Background(),
		`SELECT `+customerColumns+` FROM customers ORDER BY name LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("leer cliente: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) Update(customer *entity.Customer) error {
	res, err := r.db.ExecContext(context.Background(),
		`UPDATE customers SET name = ?, phone = ?, email = ?, address = ? WHERE id = ?`,
		customer.Name, customer.Phone, customer.Email, customer.Address, customer.ID.String())
	if err != nil {
		return fmt.Errorf("actualizar cliente: %w", err)
	}
	return requireAffected(res, "actualizar cliente")
}

func (r *CustomerRepository) Delete(id domain.CustomerID) error {
	res, err := r.db.ExecContext(context.Background(),
		`DELETE FROM customers WHERE id = ?`, id.String())
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	return requireAffected(res, "eliminar cliente")
}

// ApplySale acumula los agregados del cliente en el propio UPDATE para que
// sean consistentes dentro de la transacción de la venta.
func (r *CustomerRepository) ApplySale(id domain.CustomerID, total decimal.Decimal) error {
	res, err := r.db.ExecContext(context.Background(),
		`UPDATE customers SET total_spent = total_spent + ?, visit_count = visit_count + 1 WHERE id = ?`,
		total, id.String())
	if err != nil {
		return fmt.Errorf("acumular venta en cliente: %w", err)
	}
	return requireAffected(res, "acumular venta en cliente")
}

func scanCustomer(scan func(dest ...any) error) (*entity.Customer, error) {
	var (
		c  entity.Customer
		id string
	)
	err := scan(&id, &c.Name, &c.Phone, &c.Email, &c.Address,
		&c.TotalSpent, &c.VisitCount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ID = domain.CustomerID(id)
	return &c, nil
}
