package repository

import (
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) (domain.CategoryID, error)
	GetByID(id domain.CategoryID) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id domain.CategoryID) error
	// CountProducts cuenta productos que usan la categoría (política de borrado).
	CountProducts(id domain.CategoryID) (int64, error)
}
