package http

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
	"github.com/jhoicas/Kardex-api/internal/domain"
)

// Etiqueta del actor para el kardex. No hay verificación de identidad en
// este diseño: la capa HTTP suministra la etiqueta tal cual.
const changedByLabel = "admin"

// ProductHandler maneja las peticiones HTTP del catálogo y el kardex.
type ProductHandler struct {
	ledger   *usecase.LedgerUseCase
	importer *usecase.ImportUseCase
	exporter *usecase.ExportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(ledger *usecase.LedgerUseCase, importUC *usecase.ImportUseCase, exportUC *usecase.ExportUseCase) *ProductHandler {
	return &ProductHandler{ledger: ledger, importer: importUC, exporter: exportUC}
}

// List godoc
// @Summary      Listar todos los productos
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.ledger.List()
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar productos por nombre
// @Description  Substring case-insensitive sobre name. Query vacío = sin filtro.
// @Tags         products
// @Produce      json
// @Param        name  query  string  false  "Substring a buscar"
// @Success      200   {object}  dto.ProductListResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	name := c.Query("name")
	var (
		out *dto.ProductListResponse
		err error
	)
	if name == "" {
		out, err = h.ledger.List()
	} else {
		out, err = h.ledger.Search(name)
	}
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (registro completo, auditado)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Todos los atributos editables"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser numérico"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	if in.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stock debe ser un entero >= 0"})
	}
	out, err := h.ledger.Update(c.Context(), id, changedByLabel, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historia de cambios de stock de un producto
// @Description  Más reciente primero. No exige que el producto exista en el catálogo.
// @Tags         products
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/history [get]
func (h *ProductHandler) History(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser numérico"})
	}
	out, err := h.ledger.History(id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importación masiva desde CSV
// @Description  Archivo multipart en el campo csvFile, cabecera name,unit,category,brand,stock,status,image. Fila a fila: duplicados por nombre (CI) se saltan, filas inválidas se reportan sin abortar el lote.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        csvFile  formData  file  true  "Archivo CSV"
// @Success      200  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("csvFile")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo csvFile requerido"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer file.Close()

	rows, invalid, err := DecodeImportRows(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CSV", Message: err.Error()})
	}
	result, err := h.importer.Import(c.Context(), rows)
	if err != nil {
		return mapDomainError(c, err)
	}
	result.Invalid = invalid
	return c.JSON(result)
}

// Export godoc
// @Summary      Exportar el catálogo completo a CSV
// @Tags         products
// @Produce      text/csv
// @Success      200  {string}  string  "CSV con cabecera id,name,unit,category,brand,stock,status,image"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/products/export [get]
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.exporter.WriteCSV(&buf); err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=products.csv`)
	return c.Send(buf.Bytes())
}

// mapDomainError traduce la taxonomía de errores del dominio a HTTP usando
// la severidad (client-fault vs server-fault).
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()})
	case errors.Is(err, domain.ErrDuplicateName):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_NAME", Message: domain.ErrDuplicateName.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: domain.ErrInvalidInput.Error()})
	case errors.Is(err, domain.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: domain.ErrStorageUnavailable.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
