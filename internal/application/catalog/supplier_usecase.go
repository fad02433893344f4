package catalog

import (
	"context"
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	validate     *validator.Validate
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository, validate *validator.Validate) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, validate: validate}
}

// Create da de alta un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (domain.SupplierID, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return uc.supplierRepo.Create(&entity.Supplier{
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
	})
}

// List devuelve todos los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List()
}

// Delete elimina un proveedor sin referencias; con productos o movimientos
// que lo referencien se rechaza.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	sid := domain.SupplierID(id)
	supplier, err := uc.supplierRepo.GetByID(sid)
	if err != nil {
		return err
	}
	if supplier == nil {
		return fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, id)
	}
	refs, err := uc.supplierRepo.CountReferences(sid)
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%w: el proveedor tiene %d referencias", domain.ErrConflict, refs)
	}
	return uc.supplierRepo.Delete(sid)
}
