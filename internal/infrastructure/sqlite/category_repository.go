package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// CategoryRepository implementa repository.CategoryRepository sobre SQLite.
type CategoryRepository struct {
	db Querier
}

// NewCategoryRepository crea el repositorio con la conexión o transacción dada.
func NewCategoryRepository(db Querier) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(category *entity.Category) (domain.CategoryID, error) {
	res, err := r.db.ExecContext(context.Background(),
		`INSERT INTO categories (name) VALUES (?)`, category.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("crear categoría: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("crear categoría: %w", err)
	}
	category.ID = domain.CategoryID(id)
	return category.ID, nil
}

func (r *CategoryRepository) GetByID(id domain.CategoryID) (*entity.Category, error) {
	var c entity.Category
	var rawID int64
	err := r.db.QueryRowContext(context.Background(),
		`SELECT id, name FROM categories WHERE id = ?`, int64(id)).Scan(&rawID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer categoría: %w", err)
	}
	c.ID = domain.CategoryID(rawID)
	return &c, nil
}

func (r *CategoryRepository) List() ([]*entity.Category, error) {
	rows, err := r.db.QueryContext(context.Background(),
		`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var c entity.Category
		var rawID int64
		if err := rows.Scan(&rawID, &c.Name); err != nil {
			return nil, fmt.Errorf("leer categoría: %w", err)
		}
		c.ID = domain.CategoryID(rawID)
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar categorías: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Update(category *entity.Category) error {
	res, err := r.db.ExecContext(context.Background(),
		`UPDATE categories SET name = ? WHERE id = ?`, category.Name, int64(category.ID))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("actualizar categoría: %w", err)
	}
	return requireAffected(res, "actualizar categoría")
}

func (r *CategoryRepository) Delete(id domain.CategoryID) error {
	res, err := r.db.ExecContext(context.Background(),
		`DELETE FROM categories WHERE id = ?`, int64(id))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("eliminar categoría: %w", err)
	}
	return requireAffected(res, "eliminar categoría")
}

func (r *CategoryRepository) CountProducts(id domain.CategoryID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM products WHERE category_id = ?`, int64(id)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar productos de categoría: %w", err)
	}
	return count, nil
}
