package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// InventoryLogRepository define el puerto de persistencia para el kardex.
// No valida ProductID contra el catálogo: la historia se mantiene desacoplada.
type InventoryLogRepository interface {
	Create(log *entity.InventoryLog) error
	// ListByProduct devuelve la historia del producto, más reciente primero.
	ListByProduct(productID int64) ([]*entity.InventoryLog, error)
}
