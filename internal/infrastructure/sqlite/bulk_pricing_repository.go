package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tu-usuario/caja-pro/internal/domain"
	"github.com/tu-usuario/caja-pro/internal/domain/entity"
	"github.com/tu-usuario/caja-pro/internal/domain/repository"
)

// BulkPricingRepository implementa repository.BulkPricingRepository sobre SQLite.
// El UNIQUE(product_id, min_quantity) del esquema respalda la regla de
// min_quantity único por producto aun ante escrituras concurrentes.
type BulkPricingRepository struct {
	db Querier
}

// NewBulkPricingRepository crea el repositorio con la conexión o transacción dada.
func NewBulkPricingRepository(db Querier) *BulkPricingRepository {
	return &BulkPricingRepository{db: db}
}

var _ repository.BulkPricingRepository = (*BulkPricingRepository)(nil)

func (r *BulkPricingRepository) Create(tier *entity.BulkPricingTier) (domain.TierID, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(context.Background(),
		`INSERT INTO bulk_pricing (product_id, min_quantity, bulk_price, created_at) VALUES (?, ?, ?, ?)`,
		int64(tier.ProductID), tier.MinQuantity, tier.BulkPrice, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrInvalidInput
		}
		if isForeignKeyViolation(err) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("crear escalón de precio: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("crear escalón de precio: %w", err)
	}
	tier.ID = domain.TierID(id)
	tier.CreatedAt = now
	return tier.ID, nil
}

func (r *BulkPricingRepository) GetByID(id domain.TierID) (*entity.BulkPricingTier, error) {
	row := r.db.QueryRowContext(context.Background(),
		`SELECT id, product_id, min_quantity, bulk_price, created_at FROM bulk_pricing WHERE id = ?`,
		int64(id))
	t, err := scanTier(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer escalón de precio: %w", err)
	}
	return t, nil
}

func (r *BulkPricingRepository) ListByProduct(productID domain.ProductID) ([]*entity.BulkPricingTier, error) {
	rows, err := r.db.QueryContext(context.Background(),
		`SELECT id, product_id, min_quantity, bulk_price, created_at
		 FROM bulk_pricing WHERE product_id = ? ORDER BY min_quantity`,
		int64(productID))
	if err != nil {
		return nil, fmt.Errorf("listar escalones: %w", err)
	}
	defer rows.Close()

	var tiers []*entity.BulkPricingTier
	for rows.Next() {
		t, err := scanTier(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("leer escalón de precio: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar escalones: %w", err)
	}
	return tiers, nil
}

func (r *BulkPricingRepository) Update(tier *entity.BulkPricingTier) error {
	res, err := r.db.ExecContext(context.Background(),
		`UPDATE bulk_pricing SET min_quantity = ?, bulk_price = ? WHERE id = ?`,
		tier.MinQuantity, tier.BulkPrice, int64(tier.ID))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("actualizar escalón de precio: %w", err)
	}
	return requireAffected(res, "actualizar escalón de precio")
}

func (r *BulkPricingRepository) Delete(id domain.TierID) error {
	res, err := r.db.ExecContext(context.Background(),
		`DELETE FROM bulk_pricing WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("eliminar escalón de precio: %w", err)
	}
	return requireAffected(res, "eliminar escalón de precio")
}

func (r *BulkPricingRepository) CountByProduct(productID domain.ProductID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM bulk_pricing WHERE product_id = ?`, int64(productID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("contar escalones: %w", err)
	}
	return count, nil
}

func scanTier(scan func(dest ...any) error) (*entity.BulkPricingTier, error) {
	var (
		t         entity.BulkPricingTier
		id        int64
		productID int64
	)
	if err := scan(&id, &productID, &t.MinQuantity, &t.BulkPrice, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.ID = domain.TierID(id)
	t.ProductID = domain.ProductID(productID)
	return &t, nil
}
