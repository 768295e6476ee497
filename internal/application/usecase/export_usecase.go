package usecase

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Cabecera del CSV de exportación, en el orden del esquema.
var exportHeader = []string{"id", "name", "unit", "category", "brand", "stock", "status", "image"}

// ExportUseCase serializa el catálogo completo a CSV.
type ExportUseCase struct {
	products repository.ProductRepository
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(products repository.ProductRepository) *ExportUseCase {
	return &ExportUseCase{products: products}
}

// WriteCSV escribe la cabecera y una línea por producto en el orden de
// iteración del store. encoding/csv entrecomilla los campos con delimitadores
// embebidos, así que un nombre con comas no corrompe la fila.
func (uc *ExportUseCase) WriteCSV(w io.Writer) error {
	list, err := uc.products.List()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, p := range list {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Unit,
			p.Category,
			p.Brand,
			strconv.Itoa(p.Stock),
			p.Status,
			p.Image,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
