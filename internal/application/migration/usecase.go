// Package migration implementa las migraciones únicas e irreversibles del
// store: centavos enteros → montos decimales, e IDs numéricos heredados →
// UUID. Un fallo aquí es fatal para el arranque: el motor no debe operar
// sobre un esquema monetario ambiguo.
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/pkg/logger"
)

const (
	sampleLimit    = 50
	decimalVersion = "2.0.0" // versión de esquema con montos decimales
)

// UseCase orquesta detección, conversión y marcado de estado.
type UseCase struct {
	repo      Repository
	status    StatusStore
	precision int32
	log       *logger.Logger
}

// NewUseCase construye el caso de uso. precision son los decimales de
// redondeo de la conversión (configuración de moneda).
func NewUseCase(repo Repository, status StatusStore, precision int32, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, status: status, precision: precision, log: log}
}

// Run es la puerta de arranque: ejecuta ambas migraciones exactamente una vez
// antes de que cualquier otro componente toque datos monetarios. En
// instalaciones nuevas solo deja escrito el marcador de versión para que la
// heurística no vuelva a correr.
func (uc *UseCase) Run(ctx context.Context) error {
	needs, err := uc.NeedsDecimalMigration(ctx)
	if err != nil {
		return err
	}
	if needs {
		if err := uc.MigrateDecimals(ctx); err != nil {
			return err
		}
	} else if err := uc.markDecimalCurrent(); err != nil {
		return err
	}
	return uc.MigrateIdentifiers(ctx)
}

// NeedsDecimalMigration decide si los datos persistidos siguen en centavos
// enteros. El registro de estado es autoritativo; la heurística de muestreo
// solo corre para stores anteriores al marcador: todos los valores muestreados
// son enteros y al menos uno tiene magnitud de escala ×100.
func (uc *UseCase) NeedsDecimalMigration(ctx context.Context) (bool, error) {
	st, err := uc.status.Load()
	if err != nil {
		return false, fmt.Errorf("%w: leer estado: %v", domain.ErrMigrationFailed, err)
	}
	if st.DecimalMigrationComplete {
		return false, nil
	}

	values, err := uc.repo.SampleMonetaryValues(ctx, sampleLimit)
	if err != nil {
		return false, fmt.Errorf("%w: muestrear columnas: %v", domain.ErrMigrationFailed, err)
	}
	if len(values) == 0 {
		return false, nil // instalación nueva, nada que convertir
	}

	centsScale := decimal.NewFromInt(100)
	sawScaled := false
	for _, v := range values {
		if !v.IsInteger() {
			return false, nil // ya hay decimales: formato nuevo
		}
		if v.Abs().GreaterThanOrEqual(centsScale) {
			sawScaled = true
		}
	}
	return sawScaled, nil
}

// MigrateDecimals convierte cada columna monetaria de centavos a decimales en
// una sola transacción. Idempotente: con el marcador escrito es un no-op, y el
// marcador se re-verifica con la transacción abierta.
func (uc *UseCase) MigrateDecimals(ctx context.Context) error {
	st, err := uc.status.Load()
	if err != nil {
		return fmt.Errorf("%w: leer estado: %v", domain.ErrMigrationFailed, err)
	}
	if st.DecimalMigrationComplete {
		return nil
	}

	// El intento queda registrado aunque la conversión falle.
	st.LastMigrationAttempt = time.Now().UTC().Format(time.RFC3339)
	if err := uc.status.Save(st); err != nil {
		return fmt.Errorf("%w: registrar intento: %v", domain.ErrMigrationFailed, err)
	}

	uc.log.Info().Int32("precision", uc.precision).Msg("migrando montos de centavos a decimales")

	alreadyDone := func() (bool, error) {
		current, err := uc.status.Load()
		if err != nil {
			return false, err
		}
		return current.DecimalMigrationComplete, nil
	}
	if err := uc.repo.ConvertCents(ctx, uc.precision, alreadyDone); err != nil {
		return fmt.Errorf("%w: convertir centavos: %v", domain.ErrMigrationFailed, err)
	}

	st.DecimalMigrationComplete = true
	st.MigrationVersion = decimalVersion
	if err := uc.status.Save(st); err != nil {
		return fmt.Errorf("%w: guardar estado: %v", domain.ErrMigrationFailed, err)
	}
	uc.log.Info().Msg("migración decimal completada")
	return nil
}

// MigrateIdentifiers reescribe IDs numéricos heredados de clientes y ventas a
// UUID, junto con sus claves foráneas, en una sola transacción.
func (uc *UseCase) MigrateIdentifiers(ctx context.Context) error {
	st, err := uc.status.Load()
	if err != nil {
		return fmt.Errorf("%w: leer estado: %v", domain.ErrMigrationFailed, err)
	}
	if st.UUIDMigrationComplete {
		return nil
	}

	customers, err := uc.repo.ListNumericCustomerIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: listar clientes heredados: %v", domain.ErrMigrationFailed, err)
	}
	sales, err := uc.repo.ListNumericSaleIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: listar ventas heredadas: %v", domain.ErrMigrationFailed, err)
	}

	if len(customers) > 0 || len(sales) > 0 {
		customerMap := make(map[string]string, len(customers))
		for _, id := range customers {
			customerMap[id] = uuid.New().String()
		}
		saleMap := make(map[string]string, len(sales))
		for _, id := range sales {
			saleMap[id] = uuid.New().String()
		}
		uc.log.Info().
			Int("clientes", len(customerMap)).
			Int("ventas", len(saleMap)).
			Msg("migrando identificadores numéricos a UUID")
		if err := uc.repo.RewriteIdentifiers(ctx, customerMap, saleMap); err != nil {
			return fmt.Errorf("%w: reescribir identificadores: %v", domain.ErrMigrationFailed, err)
		}
	}

	st.UUIDMigrationComplete = true
	if err := uc.status.Save(st); err != nil {
		return fmt.Errorf("%w: guardar estado: %v", domain.ErrMigrationFailed, err)
	}
	return nil
}

// markDecimalCurrent deja el marcador explícito de esquema decimal en
// instalaciones que nunca tuvieron datos en centavos.
func (uc *UseCase) markDecimalCurrent() error {
	st, err := uc.status.Load()
	if err != nil {
		return fmt.Errorf("%w: leer estado: %v", domain.ErrMigrationFailed, err)
	}
	if st.DecimalMigrationComplete {
		return nil
	}
	st.DecimalMigrationComplete = true
	st.MigrationVersion = decimalVersion
	if err := uc.status.Save(st); err != nil {
		return fmt.Errorf("%w: guardar estado: %v", domain.ErrMigrationFailed, err)
	}
	return nil
}
