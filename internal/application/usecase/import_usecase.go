package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/pkg/logger"
)

// ImportUseCase importación masiva de productos. Procesa fila por fila:
// cada fila se evalúa y confirma de forma independiente, un fallo en una
// fila nunca aborta el lote. La importación solo inserta filas nuevas;
// nunca pasa por la actualización auditada (no escribe kardex).
type ImportUseCase struct {
	products repository.ProductRepository
	log      *logger.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(products repository.ProductRepository, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{products: products, log: log}
}

// Import aplica la política de deduplicación por nombre (case-insensitive)
// contra el catálogo vivo: una fila cuyo nombre ya existe se reporta como
// skipped con el id existente; si no existe se inserta como nueva. Como las
// filas se confirman una a una, la segunda fila de un lote con el mismo
// nombre ve a la primera ya insertada y queda como duplicada de ese id.
func (uc *ImportUseCase) Import(ctx context.Context, rows []dto.ImportRow) (*dto.ImportResult, error) {
	result := &dto.ImportResult{
		BatchID:    uuid.New().String(),
		Duplicates: []dto.DuplicateEntry{},
	}

	for _, row := range rows {
		existing, err := uc.products.FindByNameCI(row.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			result.Duplicates = append(result.Duplicates, dto.DuplicateEntry{
				Name:       row.Name,
				ExistingID: existing.ID,
			})
			continue
		}

		product := &entity.Product{
			Name:     row.Name,
			Unit:     row.Unit,
			Category: row.Category,
			Brand:    row.Brand,
			Stock:    row.Stock,
			Status:   row.Status,
			Image:    row.Image,
		}
		err = uc.products.Create(product)
		if errors.Is(err, domain.ErrDuplicateName) {
			// Carrera contra el índice único: otro writer insertó el nombre
			// entre el chequeo y el INSERT. Se clasifica como skipped.
			dup, lookupErr := uc.products.FindByNameCI(row.Name)
			if lookupErr != nil {
				return nil, lookupErr
			}
			result.Skipped++
			entry := dto.DuplicateEntry{Name: row.Name}
			if dup != nil {
				entry.ExistingID = dup.ID
			}
			result.Duplicates = append(result.Duplicates, entry)
			continue
		}
		if err != nil {
			return nil, err
		}
		result.Added++
	}

	uc.log.Info().
		Str("batch_id", result.BatchID).
		Int("added", result.Added).
		Int("skipped", result.Skipped).
		Msg("importación de productos completada")

	return result, nil
}
