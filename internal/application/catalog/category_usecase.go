package catalog

import (
	"context"
	"fmt"

	validator "github.com/go-playground/validator/v10"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías. El borrado se rechaza mientras haya
// productos en la categoría (el caller ve el conflicto y reasigna primero).
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	validate     *validator.Validate
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, validate *validator.Validate) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, validate: validate}
}

// Create da de alta una categoría (nombre único).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (domain.CategoryID, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return uc.categoryRepo.Create(&entity.Category{Name: in.Name})
}

// List devuelve todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.List()
}

// Rename cambia el nombre de una categoría.
func (uc *CategoryUseCase) Rename(ctx context.Context, id int64, name string) error {
	if name == "" {
		return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
	}
	cid := domain.CategoryID(id)
	category, err := uc.categoryRepo.GetByID(cid)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	category.Name = name
	return uc.categoryRepo.Update(category)
}

// Delete elimina una categoría sin productos; en uso se rechaza.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	cid := domain.CategoryID(id)
	category, err := uc.categoryRepo.GetByID(cid)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: categoría %d", domain.ErrNotFound, id)
	}
	count, err := uc.categoryRepo.CountProducts(cid)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: la categoría tiene %d productos", domain.ErrConflict, count)
	}
	return uc.categoryRepo.Delete(cid)
}
