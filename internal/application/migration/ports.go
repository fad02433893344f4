package migration

import (
	"context"

	"github.com/shopspring/decimal"
)

// Status es el registro de estado de migración persistido FUERA del store
// relacional. Se lee una vez al arranque antes de permitir cualquier
// operación monetaria; se escribe al completar cada migración y nunca se
// resetea automáticamente.
type Status struct {
	UUIDMigrationComplete    bool   `json:"uuid_migration_complete"`
	DecimalMigrationComplete bool   `json:"decimal_migration_complete"`
	MigrationVersion         string `json:"migration_version"`
	LastMigrationAttempt     string `json:"last_migration_attempt,omitempty"` // ISO-8601
}

// DefaultStatus valores cuando el registro no existe todavía.
func DefaultStatus() Status {
	return Status{MigrationVersion: "1.0.0"}
}

// StatusStore persiste el registro de estado de migración.
type StatusStore interface {
	// Load devuelve DefaultStatus() cuando el registro no existe.
	Load() (Status, error)
	Save(Status) error
}

// Repository operaciones de migración sobre el store relacional.
type Repository interface {
	// SampleMonetaryValues muestrea columnas monetarias (precios de productos
	// y totales de ventas) para la heurística de detección de centavos.
	SampleMonetaryValues(ctx context.Context, limit int) ([]decimal.Decimal, error)
	// ConvertCents divide cada columna monetaria por 100, redondeada a
	// precision, dentro de UNA transacción: o migra todo o no migra nada.
	// alreadyDone se consulta de nuevo con la transacción abierta para
	// cortar una carrera con otro arranque concurrente.
	ConvertCents(ctx context.Context, precision int32, alreadyDone func() (bool, error)) error
	// ListNumericCustomerIDs devuelve los IDs de cliente heredados (numéricos).
	ListNumericCustomerIDs(ctx context.Context) ([]string, error)
	// ListNumericSaleIDs devuelve los IDs de venta heredados (numéricos).
	ListNumericSaleIDs(ctx context.Context) ([]string, error)
	// RewriteIdentifiers reescribe IDs y sus claves foráneas
	// (sales.customer_id, sale_items.sale_id) en UNA transacción.
	RewriteIdentifiers(ctx context.Context, customers, sales map[string]string) error
}
