package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// LedgerUseCase orquesta catálogo + kardex: lecturas, búsqueda y la
// actualización auditada. Es el único componente con decisiones de negocio.
type LedgerUseCase struct {
	txRunner TxRunner
	products repository.ProductRepository
	logs     repository.InventoryLogRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	products repository.ProductRepository,
	logs repository.InventoryLogRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, products: products, logs: logs}
}

// List devuelve el catálogo completo en el orden nativo del store.
func (uc *LedgerUseCase) List() (*dto.ProductListResponse, error) {
	list, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	return toProductListResponse(list), nil
}

// Search busca productos por substring del nombre, case-insensitive.
// Query vacío es decisión del caller (la capa HTTP lo trata como "sin filtro").
func (uc *LedgerUseCase) Search(query string) (*dto.ProductListResponse, error) {
	list, err := uc.products.SearchByName(query)
	if err != nil {
		return nil, err
	}
	return toProductListResponse(list), nil
}

// Update actualiza un producto con registro completo y audita el cambio de
// stock en el kardex. Dentro de una sola transacción:
//  1. bloquea la fila del producto (SELECT FOR UPDATE)
//  2. rechaza ErrDuplicateName si el nuevo nombre colisiona (CI) con otro producto
//  3. si el stock cambió, escribe la entrada del kardex antes del UPDATE
//  4. aplica todos los campos al catálogo
//
// Un fallo en cualquier paso revierte la transacción completa: nunca queda
// entrada de kardex sin la fila actualizada, ni al revés.
func (uc *LedgerUseCase) Update(ctx context.Context, id int64, changedBy string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(
		products repository.ProductRepository,
		logs repository.InventoryLogRepository,
	) error {
		product, err := products.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		// Chequeo de nombre duplicado contra un producto distinto
		dup, err := products.FindByNameCI(in.Name)
		if err != nil {
			return err
		}
		if dup != nil && dup.ID != id {
			return domain.ErrDuplicateName
		}

		// Entrada de kardex solo si el stock cambió, antes del UPDATE
		if product.Stock != in.Stock {
			entry := &entity.InventoryLog{
				ProductID: id,
				OldStock:  product.Stock,
				NewStock:  in.Stock,
				ChangedBy: changedBy,
				Timestamp: time.Now(),
			}
			if err := logs.Create(entry); err != nil {
				return err
			}
		}

		product.Name = in.Name
		product.Unit = in.Unit
		product.Category = in.Category
		product.Brand = in.Brand
		product.Stock = in.Stock
		product.Status = in.Status
		product.Image = in.Image
		if err := products.Update(product); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// History devuelve el kardex del producto, más reciente primero. No exige que
// el producto exista en el catálogo: la historia es recuperable por sí sola.
func (uc *LedgerUseCase) History(productID int64) (*dto.HistoryResponse, error) {
	list, err := uc.logs.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.InventoryLogResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			OldStock:  l.OldStock,
			NewStock:  l.NewStock,
			ChangedBy: l.ChangedBy,
			Timestamp: l.Timestamp,
		})
	}
	return &dto.HistoryResponse{Results: len(items), History: items}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Unit:     p.Unit,
		Category: p.Category,
		Brand:    p.Brand,
		Stock:    p.Stock,
		Status:   p.Status,
		Image:    p.Image,
	}
}

func toProductListResponse(list []*entity.Product) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Results: len(items), Products: items}
}
