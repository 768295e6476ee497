package http

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
)

// Frontera de decodificación del CSV de importación: convierte el archivo en
// registros tipados y validados. El importador nunca ve filas malformadas;
// una fila inválida se reporta con su línea y no envenena el lote.
// Cabecera esperada: name,unit,category,brand,stock,status,image.

// DecodeImportRows lee el CSV completo. Devuelve error solo si el archivo es
// ilegible o la cabecera no trae las columnas requeridas (name, stock).
func DecodeImportRows(r io.Reader) ([]dto.ImportRow, []dto.InvalidRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leer cabecera CSV: %w", domain.ErrInvalidInput)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, nil, fmt.Errorf("columna name requerida: %w", domain.ErrInvalidInput)
	}
	if _, ok := col["stock"]; !ok {
		return nil, nil, fmt.Errorf("columna stock requerida: %w", domain.ErrInvalidInput)
	}

	var rows []dto.ImportRow
	var invalid []dto.InvalidRow
	line := 1 // la cabecera es la línea 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			invalid = append(invalid, dto.InvalidRow{Line: line, Reason: "fila CSV malformada"})
			continue
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		name := field("name")
		if name == "" {
			invalid = append(invalid, dto.InvalidRow{Line: line, Reason: "name es requerido"})
			continue
		}
		stock, err := strconv.Atoi(field("stock"))
		if err != nil || stock < 0 {
			invalid = append(invalid, dto.InvalidRow{Line: line, Reason: "stock debe ser un entero >= 0"})
			continue
		}

		rows = append(rows, dto.ImportRow{
			Name:     name,
			Unit:     field("unit"),
			Category: field("category"),
			Brand:    field("brand"),
			Stock:    stock,
			Status:   field("status"),
			Image:    field("image"),
		})
	}
	return rows, invalid, nil
}
