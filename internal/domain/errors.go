package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El caller clasifica con errors.Is para decidir entre reintento, toast o alerta.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrMigrationFailed   = errors.New("migración de datos fallida")
	ErrTransaction       = errors.New("transacción abortada")
)
