package entity

import "github.com/tu-usuario/caja-pro/internal/domain"

// Category agrupa productos del catálogo. El nombre es único.
type Category struct {
	ID   domain.CategoryID
	Name string
}
