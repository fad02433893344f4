// Package customers implementa el mantenimiento de clientes. Los agregados
// de por vida (total_spent, visit_count) los muta solo el coordinador de
// ventas; aquí únicamente se leen.
package customers

import (
	"context"
	"fmt"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tu-usuario/caja-pro/internal/application/dto"
	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// UseCase CRUD de clientes.
type UseCase struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	validate     *validator.Validate
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	validate *validator.Validate,
) *UseCase {
	return &UseCase{customerRepo: customerRepo, saleRepo: saleRepo, validate: validate}
}

// Create da de alta un cliente. Si el caller no trae ID se genera un UUID.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (domain.CustomerID, error) {
	if err := uc.validate.Struct(in); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}
	customer := &entity.Customer{
		ID:        domain.CustomerID(id),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return "", err
	}
	return customer.ID, nil
}

// Get devuelve un cliente con sus agregados.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.CustomerDTO, error) {
	customer, err := uc.customerRepo.GetByID(domain.CustomerID(id))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	out := toDTO(customer)
	return &out, nil
}

// List lista clientes con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]dto.CustomerDTO, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.customerRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerDTO, 0, len(list))
	for _, c := range list {
		out = append(out, toDTO(c))
	}
	return out, nil
}

// Update modifica datos de contacto. Los campos nil no cambian.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) error {
	if err := uc.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	customer, err := uc.customerRepo.GetByID(domain.CustomerID(id))
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	return uc.customerRepo.Update(customer)
}

// Delete elimina un cliente sin historial. Con ventas registradas se rechaza:
// el historial de ventas referencia al cliente y debe conservarse.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	cid := domain.CustomerID(id)
	customer, err := uc.customerRepo.GetByID(cid)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, id)
	}
	count, err := uc.saleRepo.CountByCustomer(cid)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: el cliente tiene %d ventas registradas", domain.ErrConflict, count)
	}
	return uc.customerRepo.Delete(cid)
}

func toDTO(c *entity.Customer) dto.CustomerDTO {
	return dto.CustomerDTO{
		ID:         c.ID.String(),
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		TotalSpent: c.TotalSpent,
		VisitCount: c.VisitCount,
		CreatedAt:  c.CreatedAt,
	}
}
