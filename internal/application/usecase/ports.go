package usecase

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el par auditoría + escritura
// del catálogo sea atómico: o ambos quedan, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		logs repository.InventoryLogRepository,
	) error) error
}
