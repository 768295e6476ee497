package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create persiste una entrada del kardex; el store asigna el id.
// No valida ProductID contra products: la historia es independiente del catálogo.
func (r *InventoryLogRepo) Create(log *entity.InventoryLog) error {
	query := `
		INSERT INTO inventory_logs (product_id, old_stock, new_stock, changed_by, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		log.ProductID, log.OldStock, log.NewStock, log.ChangedBy, log.Timestamp,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

// ListByProduct devuelve la historia del producto, más reciente primero.
// El desempate por id preserva el orden de inserción ante timestamps iguales.
func (r *InventoryLogRepo) ListByProduct(productID int64) ([]*entity.InventoryLog, error) {
	query := `
		SELECT id, product_id, old_stock, new_stock, changed_by, timestamp
		FROM inventory_logs
		WHERE product_id = $1
		ORDER BY timestamp DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLog
	for rows.Next() {
		var l entity.InventoryLog
		if err := rows.Scan(&l.ID, &l.ProductID, &l.OldStock, &l.NewStock, &l.ChangedBy, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
